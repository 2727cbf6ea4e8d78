// Package app wires manifests, Go node modules and configuration into an
// App that can list its catalog and invoke a single node, independent of
// the CLI that drives it.
package app
