// Package config defines the format-agnostic model of node manifests, along
// with the core interfaces (Loader, Converter) for loading manifests and
// binding invocation arguments to Go handler structs.
//
// The `config.Model` is the single source of truth for the `registry` and
// `app` packages. The HCL implementation of the interfaces lives in
// `internal/hcl`.
package config
