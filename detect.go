package linescan

import "math/bits"

// detectBOS64 derives the begin-of-statement bitmap for one 64-byte chunk.
//
// wsMask marks space-or-newline bytes, nlMask marks newlines (nlMask is a
// subset of wsMask), and needBOS is the carry from the previous chunk: 1
// while the current line has not yet produced a BOS.
//
// A single add-with-carry does all the work. Each newline injects a +1 into
// the sum; the carry chain propagates it left through the run of whitespace
// bits that follows and it lands on the first non-space byte, where wsMask
// is 0, as a set bit in sum. needBOS injects the same +1 at bit 0 for a line
// continued from the previous chunk. Masking the sum with ^wsMask keeps only
// the landing bits. A whitespace run still open at bit 63 exits as the
// carry-out, which becomes the next chunk's needBOS.
func detectBOS64(nlMask, wsMask, needBOS uint64) (bosMask, carryOut uint64) {
	sum, carry := bits.Add64(wsMask, nlMask, needBOS)
	return sum &^ wsMask, carry
}

// detectBOS32 is detectBOS64 for a 32-byte chunk.
func detectBOS32(nlMask, wsMask, needBOS uint32) (bosMask, carryOut uint32) {
	sum, carry := bits.Add32(wsMask, nlMask, needBOS)
	return sum &^ wsMask, carry
}
