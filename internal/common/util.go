// Package common contains small helpers shared across client layers.
package common

// WipeByteArray overwrites b with zeros so secrets do not linger in memory
// after use. Safe to call with nil.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
