package linescan

import (
	"math/bits"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// refDetect is the bit-at-a-time reference for the detector.
func refDetect(nlMask, wsMask, needBOS uint64, width int) (bosMask, carryOut uint64) {
	need := needBOS
	for i := 0; i < width; i++ {
		bit := uint64(1) << i
		switch {
		case nlMask&bit != 0:
			need = 1
		case wsMask&bit != 0:
			// space, keep looking
		case need == 1:
			bosMask |= bit
			need = 0
		}
	}
	return bosMask, need
}

func windowMasks(t *testing.T, s string) (nl, ws uint64) {
	t.Helper()
	require.Len(t, s, chunkSize)
	nl, sp := newlineSpaceMasks64([]byte(s))
	return nl, sp | nl
}

func TestDetectBOS64(t *testing.T) {
	cases := []struct {
		name     string
		window   string
		needBOS  uint64
		wantBOS  uint64
		wantCout uint64
	}{
		{
			name:     "text at start with carry",
			window:   "hello" + strings.Repeat("x", 59),
			needBOS:  1,
			wantBOS:  1 << 0,
			wantCout: 0,
		},
		{
			name:     "text at start without carry",
			window:   "hello" + strings.Repeat("x", 59),
			needBOS:  0,
			wantBOS:  0,
			wantCout: 0,
		},
		{
			name:     "all spaces keep looking",
			window:   strings.Repeat(" ", 64),
			needBOS:  1,
			wantBOS:  0,
			wantCout: 1,
		},
		{
			name:     "all spaces not looking",
			window:   strings.Repeat(" ", 64),
			needBOS:  0,
			wantBOS:  0,
			wantCout: 0,
		},
		{
			name:     "all newlines emit nothing",
			window:   strings.Repeat("\n", 64),
			needBOS:  1,
			wantBOS:  0,
			wantCout: 1,
		},
		{
			name:     "indented line",
			window:   "  x" + strings.Repeat("x", 61),
			needBOS:  1,
			wantBOS:  1 << 2,
			wantCout: 0,
		},
		{
			name:     "blank lines then text",
			window:   "\n\n\nabc" + strings.Repeat(" ", 58),
			needBOS:  0,
			wantBOS:  1 << 3,
			wantCout: 0,
		},
		{
			name:     "newline at last byte hands carry on",
			window:   strings.Repeat("x", 63) + "\n",
			needBOS:  0,
			wantBOS:  0,
			wantCout: 1,
		},
		{
			name:     "two statements",
			window:   "a\nb" + strings.Repeat(" ", 61),
			needBOS:  1,
			wantBOS:  1<<0 | 1<<2,
			wantCout: 0,
		},
		{
			name:     "trailing spaces after newline keep looking",
			window:   "a\n" + strings.Repeat(" ", 62),
			needBOS:  1,
			wantBOS:  1 << 0,
			wantCout: 1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			nl, ws := windowMasks(t, tc.window)
			bos, carry := detectBOS64(nl, ws, tc.needBOS)
			require.Equal(t, tc.wantBOS, bos)
			require.Equal(t, tc.wantCout, carry)
		})
	}
}

func TestDetectBOS64MatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []byte{' ', ' ', '\n', 'a', 'b', '\r', '\t'}

	for i := 0; i < 10000; i++ {
		window := make([]byte, chunkSize)
		for j := range window {
			window[j] = alphabet[rng.Intn(len(alphabet))]
		}
		nl, sp := newlineSpaceMasks64(window)
		ws := sp | nl

		for _, need := range []uint64{0, 1} {
			bos, carry := detectBOS64(nl, ws, need)
			wantBOS, wantCarry := refDetect(nl, ws, need, chunkSize)
			require.Equal(t, wantBOS, bos, "window %q need %d", window, need)
			require.Equal(t, wantCarry, carry, "window %q need %d", window, need)

			// Mask invariants.
			require.Zero(t, bos&ws)
			require.LessOrEqual(t, bits.OnesCount64(bos), bits.OnesCount64(nl)+int(need))

			// If the chunk has a non-space byte, the carry can only survive
			// when some newline follows the last non-space byte.
			if carry == 1 && ws != ^uint64(0) {
				lastNS := chunkSize - 1 - bits.LeadingZeros64(^ws)
				require.NotZero(t, nl>>uint(lastNS), "carry survived without trailing newline in %q", window)
			}
		}
	}
}

func TestDetectBOS32MatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	alphabet := []byte{' ', ' ', '\n', 'a', 'z'}

	for i := 0; i < 10000; i++ {
		window := make([]byte, halfChunk)
		for j := range window {
			window[j] = alphabet[rng.Intn(len(alphabet))]
		}
		nl, sp := newlineSpaceMasks32(window)
		ws := sp | nl

		for _, need := range []uint32{0, 1} {
			bos, carry := detectBOS32(nl, ws, need)
			wantBOS, wantCarry := refDetect(uint64(nl), uint64(ws), uint64(need), halfChunk)
			require.Equal(t, uint32(wantBOS), bos)
			require.Equal(t, uint32(wantCarry), carry)
			require.Zero(t, bos&ws)
		}
	}
}
