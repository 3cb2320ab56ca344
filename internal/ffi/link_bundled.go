//go:build libyang_bundled

package ffi

// Bundled linkage: link the static libyang archive placed in the module
// cache by cmd/libyang-install. Removes the runtime dependency on a
// system libyang, at the cost of a fixed native library version.
//
// If the linker complains about a missing libyang.a, run:
//
//	go run github.com/holo-routing/yang-go/cmd/libyang-install@latest

/*
#cgo CFLAGS: -I${SRCDIR}/include
#cgo darwin,arm64 LDFLAGS: ${SRCDIR}/lib/darwin_arm64/libyang.a -lpcre2-8
#cgo darwin,amd64 LDFLAGS: ${SRCDIR}/lib/darwin_amd64/libyang.a -lpcre2-8
#cgo linux,arm64 LDFLAGS: ${SRCDIR}/lib/linux_arm64/libyang.a -lpcre2-8 -lm
#cgo linux,amd64 LDFLAGS: ${SRCDIR}/lib/linux_amd64/libyang.a -lpcre2-8 -lm
*/
import "C"
