//go:build !libyang_bundled

package ffi

// Default linkage: dynamic link against the system-installed libyang3.
// Requires the libyang development package (headers plus libyang.pc)
// to be present on the build machine.

// #cgo pkg-config: libyang
import "C"
