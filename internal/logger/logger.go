// Package logger reports the two error modes the down-leveling transform
// can hit (see spec §7): a fatal diagnostic for an AST kind the dispatcher
// doesn't know how to lower, and internal assertion failures for invariant
// breaks upstream of the transform. The format and plumbing are modeled on
// the surrounding compiler's diagnostic reporting so the transform's errors
// look and feel like every other compiler phase's errors.
package logger

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

type MsgKind uint8

const (
	Error MsgKind = iota
	Warning
	Note
)

func (kind MsgKind) String() string {
	switch kind {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		panic("internal error")
	}
}

type Msg struct {
	Kind  MsgKind
	Data  MsgData
	Notes []MsgData
}

type MsgData struct {
	Text     string
	Location *MsgLocation
}

type MsgLocation struct {
	File     string
	Line     int // 1-based
	Column   int // 0-based, in bytes
	Length   int // in bytes
	LineText string
}

// Loc is a 0-based byte offset from the start of a file. Synthesized nodes
// use SynthesizedLoc (a negative value) so nodeIsSynthesized can tell them
// apart from anything that came from source text.
type Loc struct {
	Start int32
}

type Range struct {
	Loc Loc
	Len int32
}

func (r Range) End() int32 { return r.Loc.Start + r.Len }

type sortableMsgs []Msg

func (a sortableMsgs) Len() int      { return len(a) }
func (a sortableMsgs) Swap(i, j int) { a[i], a[j] = a[j], a[i] }
func (a sortableMsgs) Less(i, j int) bool {
	ai, aj := a[i].Data.Location, a[j].Data.Location
	if ai == nil || aj == nil {
		return ai == nil && aj != nil
	}
	if ai.Line != aj.Line {
		return ai.Line < aj.Line
	}
	return ai.Column < aj.Column
}

// Source is the single file under transform. currentSourceFile in spec §3
// is a *Source: it's what lets tagged-template lowering (spec §4.8) slice
// out the raw text of each literal chunk.
type Source struct {
	AbsPath  string
	Contents string
}

func (s *Source) TextForRange(r Range) string {
	return s.Contents[r.Loc.Start : r.Loc.Start+r.Len]
}

// LineColumnTracker converts byte offsets into 1-based lines and 0-based
// columns on demand. It's intentionally simple (a linear scan) since
// diagnostics are rare on the hot path this transform is optimized for.
type LineColumnTracker struct {
	source *Source
}

func NewLineColumnTracker(source *Source) LineColumnTracker {
	return LineColumnTracker{source: source}
}

func (t *LineColumnTracker) MsgData(r Range, text string) MsgData {
	if t.source == nil {
		return MsgData{Text: text}
	}
	line, column, lineText := t.locate(r.Loc)
	return MsgData{
		Text: text,
		Location: &MsgLocation{
			File:     t.source.AbsPath,
			Line:     line,
			Column:   column,
			Length:   int(r.Len),
			LineText: lineText,
		},
	}
}

func (t *LineColumnTracker) locate(loc Loc) (line int, column int, lineText string) {
	contents := t.source.Contents
	offset := int(loc.Start)
	if offset < 0 {
		offset = 0
	}
	if offset > len(contents) {
		offset = len(contents)
	}

	line = 1
	lineStart := 0
	for i := 0; i < offset; i++ {
		if contents[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	lineEnd := strings.IndexByte(contents[lineStart:], '\n')
	if lineEnd == -1 {
		lineText = contents[lineStart:]
	} else {
		lineText = contents[lineStart : lineStart+lineEnd]
	}
	column = offset - lineStart
	return
}

// Log is the sink the transform writes diagnostics into. It's deliberately
// small: AddMsg appends, HasErrors reports whether any Error-kind message
// was recorded, and Done flushes a sorted copy for a caller to print.
type Log struct {
	AddMsg    func(Msg)
	HasErrors func() bool
	Done      func() []Msg
}

func NewDeferLog() Log {
	var mutex sync.Mutex
	var msgs sortableMsgs
	hasErrors := false

	return Log{
		AddMsg: func(msg Msg) {
			mutex.Lock()
			defer mutex.Unlock()
			if msg.Kind == Error {
				hasErrors = true
			}
			msgs = append(msgs, msg)
		},
		HasErrors: func() bool {
			mutex.Lock()
			defer mutex.Unlock()
			return hasErrors
		},
		Done: func() []Msg {
			mutex.Lock()
			defer mutex.Unlock()
			sort.Stable(msgs)
			out := make([]Msg, len(msgs))
			copy(out, msgs)
			return out
		},
	}
}

func AddError(log *Log, tracker *LineColumnTracker, r Range, text string) {
	log.AddMsg(Msg{Kind: Error, Data: tracker.MsgData(r, text)})
}

func AddErrorWithNotes(log *Log, tracker *LineColumnTracker, r Range, text string, notes ...MsgData) {
	log.AddMsg(Msg{Kind: Error, Data: tracker.MsgData(r, text), Notes: notes})
}

func RangeData(tracker *LineColumnTracker, r Range, text string) MsgData {
	return tracker.MsgData(r, text)
}

// TerminalInfo is filled in by the platform-specific GetTerminalInfo so
// PrintMessageToStderr knows whether it's safe to use ANSI colors and how
// wide the terminal is, matching evanw-esbuild's cross-platform approach
// (darwin/linux use golang.org/x/sys, windows uses syscall, everything
// else gets a conservative TerminalInfo{}).
type TerminalInfo struct {
	IsTTY           bool
	UseColorEscapes bool
	Width           int
	Height          int
}

func hasNoColorEnvironmentVariable() bool {
	return os.Getenv("NO_COLOR") != ""
}

// PrintMessageToStderr renders one message roughly the way a CLI host
// would, for use by ambient tooling (tests, examples). The real emitter
// that a production pipeline uses is out of scope for this module.
func PrintMessageToStderr(msg Msg) {
	info := GetTerminalInfo(os.Stderr)
	text := formatMsg(msg, info)
	writeStringWithColor(os.Stderr, text)
}

func formatMsg(msg Msg, info TerminalInfo) string {
	var sb strings.Builder
	loc := msg.Data.Location
	if loc != nil {
		sb.WriteString(fmt.Sprintf("%s:%d:%d: ", loc.File, loc.Line, loc.Column))
	}
	sb.WriteString(msg.Kind.String())
	sb.WriteString(": ")
	sb.WriteString(msg.Data.Text)
	sb.WriteByte('\n')
	if loc != nil && loc.LineText != "" {
		sb.WriteString("  ")
		sb.WriteString(loc.LineText)
		sb.WriteByte('\n')
	}
	for _, note := range msg.Notes {
		sb.WriteString("  note: ")
		sb.WriteString(note.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}
