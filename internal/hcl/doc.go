// Package hcl provides the concrete HCL implementation for the manifest
// loading and data conversion interfaces defined in the `config` package.
// It is responsible for manifest parsing, HCL-to-model translation, and
// CTY-to-Go data binding.
package hcl
