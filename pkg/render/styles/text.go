package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	titleSizeRatio = 0.085
	dateSizeRatio  = 0.06
	fontSizeMin    = 9.0
	fontSizeMax    = 18.0
	fontCharWidth  = 0.55
	textPadding    = 0.08
)

// TitleSize returns the title font size for a card of width w.
func TitleSize(w float64) float64 { return clampFont(w * titleSizeRatio) }

// DateSize returns the date font size for a card of width w.
func DateSize(w float64) float64 { return clampFont(w * dateSizeRatio) }

// Padding returns the inner text padding for a card of width w.
func Padding(w float64) float64 { return w * textPadding }

func clampFont(s float64) float64 {
	return max(fontSizeMin, min(fontSizeMax, s))
}

// WrapTitle breaks title into at most maxLines lines that fit a card of
// width w at the title font size. The last line is truncated with "..".
func WrapTitle(title string, w float64, maxLines int) []string {
	avail := w - 2*Padding(w)
	perLine := max(3, int(avail/(TitleSize(w)*fontCharWidth)))
	return Wrap(title, perLine, maxLines)
}

// Wrap greedily breaks s into lines of at most width runes, splitting on
// spaces where possible. Output is capped at maxLines lines; zero means no
// cap.
func Wrap(s string, width, maxLines int) []string {
	var (
		lines []string
		cur   []rune
	)
	flush := func() {
		if len(cur) > 0 {
			lines = append(lines, string(cur))
			cur = nil
		}
	}
	for _, w := range strings.Fields(s) {
		word := []rune(w)
		for len(word) > width {
			flush()
			lines = append(lines, string(word[:width]))
			word = word[width:]
		}
		switch {
		case len(word) == 0:
		case len(cur) == 0:
			cur = word
		case len(cur)+1+len(word) <= width:
			cur = append(append(cur, ' '), word...)
		default:
			flush()
			cur = word
		}
	}
	flush()

	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] = Truncate(lines[maxLines-1]+"...", width)
	}
	return lines
}

// Truncate shortens s to at most n runes, ending in ".." when cut.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	if n < 3 {
		return string(r[:n])
	}
	return string(r[:n-2]) + ".."
}

func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func WrapURL(buf *bytes.Buffer, url string, fn func()) {
	if url != "" {
		fmt.Fprintf(buf, `  <a href="%s" target="_blank">`, EscapeXML(url))
	}
	fn()
	if url != "" {
		buf.WriteString("</a>\n")
	}
}
