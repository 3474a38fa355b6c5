package linescan

// ScanKernel returns the name of the implementation used to build the
// per-chunk bitmaps.
func ScanKernel() string {
	if useSIMDScan {
		return "simd"
	}
	return "generic"
}
