// Package memzero wipes secret-bearing buffers.
package memzero

import "github.com/awnumar/memguard"

// Zero overwrites b with zeros. memguard's wipe is not elided by the compiler.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	memguard.WipeBytes(b)
}

// Zero32 wipes a fixed-size key array in place.
func Zero32(k *[32]byte) {
	if k == nil {
		return
	}
	memguard.WipeBytes(k[:])
}
