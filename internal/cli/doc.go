// Package cli turns command-line flags into an app config and a run
// request. It owns usage text and process exit codes.
package cli
