//go:build !goexperiment.simd || !amd64

package linescan

// No archsimd kernel on this platform; the scalar mask builder is used.
var useSIMDScan = false

func newlineSpaceMasksSIMD64(p []byte) (nl, sp uint64) {
	return newlineSpaceMasks64(p)
}

func newlineSpaceMasksSIMD32(p []byte) (nl, sp uint32) {
	return newlineSpaceMasks32(p)
}
