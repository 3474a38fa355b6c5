// Command linescan-bench measures linescan throughput against a memory-read
// baseline and a plain newline scan, on a synthetic document built from a
// dictionary word list.
package main

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mnightingale/linescan"
)

func main() {
	sizeMB := flag.Int("size", 1024, "target document size in MiB")
	iterations := flag.Int("iterations", 5, "timed repetitions per measurement")
	dictPath := flag.String("dict", "/usr/share/dict/words", "newline-separated word list")
	flag.Parse()

	fmt.Println("=== linescan benchmark ===")
	fmt.Println()

	words, err := loadWords(*dictPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading dictionary %s: %v\n", *dictPath, err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d words from %s\n", len(words), *dictPath)

	targetSize := *sizeMB << 20
	fmt.Printf("Generating %d MiB document...\n", *sizeMB)
	doc := generateDocument(words, targetSize)
	fmt.Printf("Generated %d bytes (scan kernel: %s)\n\n", len(doc), linescan.ScanKernel())

	fmt.Printf("Running benchmarks (%d iterations each)...\n\n", *iterations)

	readTP := measure(doc, *iterations, func(data []byte) {
		sinkSum += sumBytes(data)
	})
	newlineTP := measure(doc, *iterations, func(data []byte) {
		sinkCount += bytes.Count(data, []byte{'\n'})
	})
	parserTP := measure(doc, *iterations, func(data []byte) {
		sinkCounts = linescan.Count(data)
	})

	fmt.Println("=== Results ===")
	fmt.Println()
	report("Memory read bandwidth", readTP, readTP)
	report("Newline scan", newlineTP, readTP)
	report("Parser", parserTP, readTP)

	counts := linescan.Count(doc)
	fmt.Printf("\nParser counts: eol=%d bos=%d\n", counts.EOL, counts.BOS)
}

// Global sinks keep the compiler from eliding the measured work.
var (
	sinkSum    uint64
	sinkCount  int
	sinkCounts linescan.Counts
)

func loadWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if w := sc.Text(); w != "" {
			words = append(words, w)
		}
	}
	return words, sc.Err()
}

// xorshift64 is a tiny deterministic PRNG; the generated document must be
// identical across runs for comparable numbers.
type xorshift64 struct {
	state uint64
}

func (r *xorshift64) next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	r.state = x
	return x
}

func (r *xorshift64) intn(n int) int {
	return int(r.next() % uint64(n))
}

// generateDocument synthesizes roughly targetSize bytes of indented word
// lines. Shards are generated concurrently on an errgroup, one per
// GOMAXPROCS (at most 8); each shard has a fixed seed, so the assembled
// document is identical across runs with the same GOMAXPROCS. A different
// GOMAXPROCS gives a different shard count and so a different document.
func generateDocument(words []string, targetSize int) []byte {
	shards := runtime.GOMAXPROCS(0)
	if shards > 8 {
		shards = 8
	}
	if shards < 1 {
		shards = 1
	}

	parts := make([][]byte, shards)
	per := targetSize / shards

	var g errgroup.Group
	for i := range parts {
		i := i
		g.Go(func() error {
			parts[i] = generateShard(words, per, 42+uint64(i))
			return nil
		})
	}
	// Shard generators never fail.
	_ = g.Wait()

	return bytes.Join(parts, nil)
}

func generateShard(words []string, size int, seed uint64) []byte {
	const (
		avgWordsPerLine = 8
		linesPerIndent  = 5
		maxIndent       = 10
	)

	rng := xorshift64{state: seed}
	doc := make([]byte, 0, size+1024)
	indent := 0
	linesAtIndent := 0

	for len(doc) < size {
		linesAtIndent++
		if linesAtIndent >= linesPerIndent {
			switch rng.intn(3) {
			case 0:
				if indent > 0 {
					indent--
				}
			case 1:
				if indent < maxIndent {
					indent++
				}
			}
			linesAtIndent = 0
		}

		for i := 0; i < indent*4; i++ {
			doc = append(doc, ' ')
		}

		n := 1 + rng.intn(avgWordsPerLine*2)
		for w := 0; w < n; w++ {
			if w > 0 {
				doc = append(doc, ' ')
			}
			doc = append(doc, words[rng.intn(len(words))]...)
		}
		doc = append(doc, '\n')
	}
	return doc
}

// sumBytes reads every byte of data, eight at a time, and is the read-only
// memory bandwidth baseline.
func sumBytes(data []byte) uint64 {
	var sum uint64
	i := 0
	for ; i+8 <= len(data); i += 8 {
		v := binary.LittleEndian.Uint64(data[i:])
		v = (v & 0x00FF00FF00FF00FF) + ((v >> 8) & 0x00FF00FF00FF00FF)
		v = (v & 0x0000FFFF0000FFFF) + ((v >> 16) & 0x0000FFFF0000FFFF)
		sum += (v & 0xFFFFFFFF) + (v >> 32)
	}
	for ; i < len(data); i++ {
		sum += uint64(data[i])
	}
	return sum
}

// measure returns fn's throughput over data in bytes per second.
func measure(data []byte, iterations int, fn func([]byte)) float64 {
	fn(data) // warmup

	start := time.Now()
	for i := 0; i < iterations; i++ {
		fn(data)
	}
	elapsed := time.Since(start).Seconds()
	return float64(len(data)) * float64(iterations) / elapsed
}

func report(name string, tp, baseline float64) {
	fmt.Printf("%-22s %6.2f GB/s (%5.1f%%)\n", name+":", tp/(1<<30), tp/baseline*100)
}
