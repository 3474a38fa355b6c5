package linescan

// Sink receives structural events from a Parser. Every sink observes the
// document boundaries; line-level events are delivered through whichever of
// PositionSink or BatchSink the sink also implements.
type Sink interface {
	OnBOD()
	OnEOD(pos int)
}

// PositionSink receives one callback per event, in ascending byte offset.
type PositionSink interface {
	Sink
	OnEOL(pos int)
	OnBOS(pos int)
}

// BatchSink receives per-chunk event counts instead of positions. The parser
// prefers this path when a sink implements both, since it never has to walk
// individual mask bits.
type BatchSink interface {
	Sink
	OnEOLBatch(count int)
	OnBOSBatch(count int)
}

// CountingSink accumulates event totals. It implements BatchSink.
type CountingSink struct {
	counts Counts
}

func (s *CountingSink) OnBOD()               { s.counts.BOD++ }
func (s *CountingSink) OnEOD(int)            { s.counts.EOD++ }
func (s *CountingSink) OnEOLBatch(count int) { s.counts.EOL += uint64(count) }
func (s *CountingSink) OnBOSBatch(count int) { s.counts.BOS += uint64(count) }

// Counts returns the totals accumulated so far.
func (s *CountingSink) Counts() Counts { return s.counts }

// Reset zeroes the accumulated totals.
func (s *CountingSink) Reset() { s.counts = Counts{} }

// SinkFuncs adapts plain functions to a PositionSink. Nil fields are skipped.
type SinkFuncs struct {
	BOD func()
	EOD func(pos int)
	EOL func(pos int)
	BOS func(pos int)
}

func (s *SinkFuncs) OnBOD() {
	if s.BOD != nil {
		s.BOD()
	}
}

func (s *SinkFuncs) OnEOD(pos int) {
	if s.EOD != nil {
		s.EOD(pos)
	}
}

func (s *SinkFuncs) OnEOL(pos int) {
	if s.EOL != nil {
		s.EOL(pos)
	}
}

func (s *SinkFuncs) OnBOS(pos int) {
	if s.BOS != nil {
		s.BOS(pos)
	}
}
