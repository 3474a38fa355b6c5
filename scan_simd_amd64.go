//go:build goexperiment.simd && amd64

package linescan

import (
	"simd/archsimd"

	"golang.org/x/sys/cpu"
)

// useSIMDScan indicates whether the archsimd mask kernel is available.
// archsimd 128-bit ops on AMD64 require AVX; archsimd provides no feature
// detection of its own, so gate on x/sys/cpu.
var useSIMDScan = cpu.X86.HasAVX

// newlineSpaceMasksSIMD64 builds both bitmaps for a 64-byte window using
// four 16-lane byte compares per class.
// Precondition: len(p) >= 64.
func newlineSpaceMasksSIMD64(p []byte) (nl, sp uint64) {
	vNL := archsimd.BroadcastUint8x16('\n')
	vSP := archsimd.BroadcastUint8x16(' ')

	for i := 0; i < chunkSize; i += 16 {
		v := archsimd.LoadUint8x16Slice(p[i:])
		nl |= uint64(v.Equal(vNL).ToBits()) << i
		sp |= uint64(v.Equal(vSP).ToBits()) << i
	}
	return
}

// newlineSpaceMasksSIMD32 builds both bitmaps for a 32-byte window.
// Precondition: len(p) >= 32.
func newlineSpaceMasksSIMD32(p []byte) (nl, sp uint32) {
	vNL := archsimd.BroadcastUint8x16('\n')
	vSP := archsimd.BroadcastUint8x16(' ')

	lo := archsimd.LoadUint8x16Slice(p)
	hi := archsimd.LoadUint8x16Slice(p[16:])
	nl = uint32(lo.Equal(vNL).ToBits()) | uint32(hi.Equal(vNL).ToBits())<<16
	sp = uint32(lo.Equal(vSP).ToBits()) | uint32(hi.Equal(vSP).ToBits())<<16
	return
}
