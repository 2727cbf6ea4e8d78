// Package modules bundles the node manifests compiled into the binary. Each
// subpackage implements one family of nodes and ships its manifest.hcl.
package modules

import "embed"

// Manifests holds every */manifest.hcl file of the node modules.
//
//go:embed */manifest.hcl
var Manifests embed.FS
