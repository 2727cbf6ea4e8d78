// Package registry provides the central "glue" for the node system.
//
// The Registry stores mappings between the entry names used in manifests
// (e.g., "OnRunWaveletDecompose") and the compiled Go functions and types
// that implement each node. It also holds the parsed, format-agnostic
// definitions from the manifests themselves.
//
// During application startup the registry is populated and then validated
// to ensure that the Go code and the manifests are in sync, preventing a
// wide class of runtime errors.
package registry
