// Package textdiff renders line diffs between two texts.
package textdiff

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Options controls rendering.
type Options struct {
	FromName string
	ToName   string
	// Context is the number of unchanged lines around each change.
	Context int
	Color   bool
}

type line struct {
	op   diffpatch.Operation
	text string
	// 1-based line numbers in the old and new text
	from, to int
}

// lines aligns the lines of from and to as a sequence of equal, deleted
// and inserted lines.
func lines(from, to string) []line {
	dmp := diffpatch.New()
	a, b, lineArray := dmp.DiffLinesToRunes(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(a, b, false), lineArray)
	var res []line
	fi, ti := 1, 1
	for _, d := range diffs {
		for _, text := range splitLines(d.Text) {
			l := line{op: d.Type, text: text, from: fi, to: ti}
			switch d.Type {
			case diffpatch.DiffEqual:
				fi++
				ti++
			case diffpatch.DiffDelete:
				fi++
			case diffpatch.DiffInsert:
				ti++
			}
			res = append(res, l)
		}
	}
	return res
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// Diff renders the differences between from and to in unified format.
// It returns the empty string when the texts are equal.
func Diff(from, to string, opts Options) string {
	if from == to {
		return ""
	}
	ls := lines(from, to)
	p := newPalette(opts.Color)
	buf := &strings.Builder{}
	if opts.FromName != "" || opts.ToName != "" {
		buf.WriteString(p.header(fmt.Sprintf("--- %s\n+++ %s\n", opts.FromName, opts.ToName)))
	}
	for _, h := range hunks(ls, opts.Context) {
		writeHunk(buf, p, ls[h[0]:h[1]])
	}
	return buf.String()
}

// hunks returns the [start, end) ranges of ls to print, each change
// extended by context lines and overlapping ranges merged.
func hunks(ls []line, context int) [][2]int {
	var res [][2]int
	for i, l := range ls {
		if l.op == diffpatch.DiffEqual {
			continue
		}
		start := max(0, i-context)
		end := min(len(ls), i+context+1)
		if n := len(res); n > 0 && start <= res[n-1][1] {
			res[n-1][1] = max(res[n-1][1], end)
			continue
		}
		res = append(res, [2]int{start, end})
	}
	return res
}

func writeHunk(buf *strings.Builder, p *palette, ls []line) {
	fromStart, toStart := ls[0].from, ls[0].to
	fromCount, toCount := 0, 0
	for _, l := range ls {
		if l.op != diffpatch.DiffInsert {
			fromCount++
		}
		if l.op != diffpatch.DiffDelete {
			toCount++
		}
	}
	buf.WriteString(p.hunk(fmt.Sprintf("@@ -%d,%d +%d,%d @@", fromStart, fromCount, toStart, toCount)))
	buf.WriteByte('\n')
	for _, l := range ls {
		switch l.op {
		case diffpatch.DiffEqual:
			buf.WriteString(" " + l.text)
		case diffpatch.DiffDelete:
			buf.WriteString(p.del("-" + l.text))
		case diffpatch.DiffInsert:
			buf.WriteString(p.ins("+" + l.text))
		}
		buf.WriteByte('\n')
	}
}

type palette struct {
	header, hunk, del, ins func(a ...any) string
}

func newPalette(enabled bool) *palette {
	if !enabled {
		plain := fmt.Sprint
		return &palette{header: plain, hunk: plain, del: plain, ins: plain}
	}
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		c.EnableColor()
		return c.SprintFunc()
	}
	return &palette{
		header: mk(color.Bold),
		hunk:   mk(color.FgCyan),
		del:    mk(color.FgRed),
		ins:    mk(color.FgGreen),
	}
}
