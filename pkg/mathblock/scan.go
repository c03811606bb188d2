package mathblock

import "strings"

// Result describes one recognized math block.
type Result struct {
	// Fence is the opening fence.
	Fence Fence

	// Consumed is the number of input bytes the block spans: the opening
	// line, the content and, when present, the closing line without its
	// line break.
	Consumed int

	// Content is the text between the fences as it appears in the input.
	Content string

	// Value is Content with each line de-indented by the fence indent and
	// leading and trailing blank lines removed.
	Value string

	// Closed reports whether a closing fence was found.
	Closed bool
}

// Scanner recognizes math blocks at the start of a text. A Scanner holds no
// mutable state and is safe for concurrent use.
type Scanner struct {
	marker   byte
	minFence int
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithMarker sets the fence byte. Line breaks, spaces and tabs are ignored.
func WithMarker(marker byte) Option {
	return func(s *Scanner) {
		if marker == '\n' || isIndentByte(marker) {
			return
		}
		s.marker = marker
	}
}

// WithMinFence sets the shortest marker run that opens a block. Values
// below one are ignored.
func WithMinFence(n int) Option {
	return func(s *Scanner) {
		if n >= 1 {
			s.minFence = n
		}
	}
}

// NewScanner returns a scanner for '$$' fences unless configured otherwise.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{marker: DefaultMarker, minFence: DefaultMinFence}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Marker returns the configured fence byte.
func (s *Scanner) Marker() byte { return s.marker }

// MinFence returns the configured minimum opening run.
func (s *Scanner) MinFence() int { return s.minFence }

// Scan tries to recognize a math block at the start of text.
//
// The second result is false when text does not start with an opening fence.
// In probe mode Scan only checks the opening line and returns a Result with
// just the Fence set; it never reads past the first line break.
func (s *Scanner) Scan(text string, probe bool) (Result, bool) {
	fence, opening, ok := Open(text, s.marker, s.minFence)
	if !ok {
		return Result{}, false
	}
	if probe {
		return Result{Fence: fence}, true
	}

	sc := newScanContext(text, fence, opening)
	sc.run()
	return sc.result(), true
}

type scanState int

const (
	// stateContent flushes the pending line and copies content up to the
	// next line break.
	stateContent scanState = iota
	// stateLineBreak handles a line break inside the block.
	stateLineBreak
	// stateIndentRun reads the leading spaces of a line.
	stateIndentRun
	// stateMarkerRun reads a possible closing marker run.
	stateMarkerRun
	// stateTrailer consumes the rest of a closing line.
	stateTrailer
	stateDone
)

// scanContext is shared by all states of one Scan call.
//
// Text that might belong to a closing line is held in the pending buffers
// until the line proves to be content, at which point it is flushed.
// Everything read is accounted for in exactly one of opening, content or
// pending, so their lengths always add up to pos.
type scanContext struct {
	text  string
	pos   int
	fence Fence

	// opening is the length of the opening line plus any line breaks read
	// before the first content byte.
	opening int

	content  strings.Builder
	dedented strings.Builder

	pending         strings.Builder
	pendingDedented strings.Builder

	closed bool
}

func newScanContext(text string, fence Fence, opening int) *scanContext {
	return &scanContext{
		text:    text,
		pos:     opening,
		fence:   fence,
		opening: opening,
	}
}

func (sc *scanContext) run() {
	state := stateContent
	for state != stateDone {
		state = sc.step(state)
	}
}

func (sc *scanContext) step(state scanState) scanState {
	switch state {
	case stateContent:
		return sc.readContent()
	case stateLineBreak:
		return sc.readLineBreak()
	case stateIndentRun:
		return sc.readIndentRun()
	case stateMarkerRun:
		return sc.readMarkerRun()
	case stateTrailer:
		return sc.readTrailer()
	default:
		return stateDone
	}
}

func (sc *scanContext) readContent() scanState {
	sc.flush()

	if sc.pos >= len(sc.text) {
		return stateDone
	}
	if sc.text[sc.pos] == '\n' {
		return stateLineBreak
	}

	end := lineEnd(sc.text, sc.pos)
	chunk := sc.text[sc.pos:end]
	sc.content.WriteString(chunk)
	sc.dedented.WriteString(chunk)
	sc.pos = end

	return stateContent
}

func (sc *scanContext) readLineBreak() scanState {
	if sc.content.Len() == 0 {
		sc.opening++
	} else {
		sc.pending.WriteByte('\n')
		sc.pendingDedented.WriteByte('\n')
	}
	sc.pos++

	return stateIndentRun
}

func (sc *scanContext) readIndentRun() scanState {
	n := spaceRun(sc.text, sc.pos)
	run := sc.text[sc.pos : sc.pos+n]
	sc.pos += n

	sc.pending.WriteString(run)
	sc.pendingDedented.WriteString(sc.fence.Dedent(run))

	if n >= codeIndent {
		return stateContent
	}
	return stateMarkerRun
}

func (sc *scanContext) readMarkerRun() scanState {
	n := markerRun(sc.text, sc.pos, sc.fence.Marker)
	run := sc.text[sc.pos : sc.pos+n]
	sc.pos += n

	sc.pending.WriteString(run)
	sc.pendingDedented.WriteString(run)

	if n < sc.fence.Count {
		return stateContent
	}
	return stateTrailer
}

func (sc *scanContext) readTrailer() scanState {
	end := lineEnd(sc.text, sc.pos)
	sc.pending.WriteString(sc.text[sc.pos:end])
	sc.pos = end
	sc.closed = true

	return stateDone
}

// flush moves the pending line into the content.
func (sc *scanContext) flush() {
	if sc.pending.Len() == 0 {
		return
	}
	sc.content.WriteString(sc.pending.String())
	sc.dedented.WriteString(sc.pendingDedented.String())
	sc.pending.Reset()
	sc.pendingDedented.Reset()
}

func (sc *scanContext) result() Result {
	return Result{
		Fence:    sc.fence,
		Consumed: sc.opening + sc.content.Len() + sc.pending.Len(),
		Content:  sc.content.String(),
		Value:    TrimBlankLines(sc.dedented.String()),
		Closed:   sc.closed,
	}
}
