// Package display renders engine snapshots as five short text rows, either
// onto a pixel display with tinyfont or as plain text.
package display

import (
	"funcgen-go/editor"
	"funcgen-go/engine"
	"funcgen-go/x/conv"
)

const NumRows = 5

const (
	rowHeader = iota
	rowFreq
	rowAmp
	rowOffset
	rowSamples
)

// Mark is the byte range [From,To) of Row being edited.
type Mark struct {
	Row, From, To int
}

// Frame is the composed text of one snapshot.
type Frame struct {
	Rows [NumRows]string
	Mark Mark // Row is -1 outside configuring
}

func modeTag(m engine.Mode) string {
	switch m {
	case engine.Running:
		return "RUN "
	case engine.Configuring:
		return "EDIT"
	case engine.Calculating:
		return "CALC"
	default:
		return "????"
	}
}

// Compose lays out s. Values are shown as stored, so callers saturate first.
func Compose(s engine.Snapshot) Frame {
	var f Frame
	var buf [24]byte

	kind := s.Kind.String()
	f.Rows[rowHeader] = modeTag(s.Mode) + " " + kind

	freq := padInt(buf[:], conv.Fixed(buf[:], s.Params.Frequency, 1), 2)
	f.Rows[rowFreq] = "F " + string(freq) + " Hz"
	f.Rows[rowAmp] = "A " + string(conv.Fixed(buf[:], s.Params.Amplitude, 2)) + " V"
	f.Rows[rowOffset] = "O " + string(conv.Fixed(buf[:], s.Params.Offset, 2)) + " V"

	n := string(conv.Utoa(buf[:], uint64(s.Params.Samples)))
	row := "N " + n
	if s.Interval > 0 {
		row += "  " + string(conv.Utoa(buf[:], uint64(s.Interval))) + "us"
	}
	f.Rows[rowSamples] = row

	f.Mark = Mark{Row: -1}
	if s.Mode != engine.Configuring {
		return f
	}
	const prefix = 2 // "F ", "A ", ...
	switch s.Cursor {
	case editor.FieldKind:
		from := len(f.Rows[rowHeader]) - len(kind)
		f.Mark = Mark{rowHeader, from, from + len(kind)}
	case editor.FieldFreqTens:
		f.Mark = digit(rowFreq, dot(f.Rows[rowFreq])-2)
	case editor.FieldFreqUnits:
		f.Mark = digit(rowFreq, dot(f.Rows[rowFreq])-1)
	case editor.FieldAmpWhole:
		f.Mark = digit(rowAmp, dot(f.Rows[rowAmp])-1)
	case editor.FieldAmpTenths:
		f.Mark = digit(rowAmp, dot(f.Rows[rowAmp])+1)
	case editor.FieldAmpHundredths:
		f.Mark = digit(rowAmp, dot(f.Rows[rowAmp])+2)
	case editor.FieldOffsetWhole:
		f.Mark = digit(rowOffset, dot(f.Rows[rowOffset])-1)
	case editor.FieldOffsetTenths:
		f.Mark = digit(rowOffset, dot(f.Rows[rowOffset])+1)
	case editor.FieldOffsetHundredths:
		f.Mark = digit(rowOffset, dot(f.Rows[rowOffset])+2)
	case editor.FieldSamples:
		f.Mark = Mark{rowSamples, prefix, prefix + len(n)}
	}
	return f
}

func digit(row, at int) Mark { return Mark{row, at, at + 1} }

func dot(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return i
		}
	}
	return len(s)
}

// padInt zero-pads the integer part of s, which must be a tail of buf, to
// at least width digits.
func padInt(buf, s []byte, width int) []byte {
	digits := dot(string(s))
	start := len(buf) - len(s)
	for ; digits < width && start > 0; digits++ {
		start--
		buf[start] = '0'
	}
	return buf[start:]
}
