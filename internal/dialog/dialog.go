// Package dialog turns raw corpus lines into valid contiguous runs of
// utterances and expands them into training fragments.
package dialog

import (
	"strings"
	"unicode/utf8"
)

// Sep separates utterances inside one raw corpus line.
const Sep = "\t\t"

// Split breaks one raw line into its utterances.
func Split(line string) []string {
	return strings.Split(line, Sep)
}

// Breaks reports whether the cleaned utterance terminates the current run:
// over-long, emptied out by cleaning, or carrying a link.
func Breaks(seq string, maxLength int) bool {
	n := utf8.RuneCountInString(seq)
	return n > maxLength || n < 1 || strings.Contains(seq, "http")
}

// Segment walks the cleaned utterances of one dialog and collects the
// contiguous runs between breaking utterances. Runs shorter than two
// utterances are discarded.
func Segment(seqs []string, maxLength int) [][]string {
	var runs [][]string
	var run []string
	for _, seq := range seqs {
		if Breaks(seq, maxLength) {
			if len(run) > 1 {
				runs = append(runs, run)
			}
			run = nil
			continue
		}
		run = append(run, seq)
	}
	if len(run) > 1 {
		runs = append(runs, run)
	}
	return runs
}

// Expand emits every usable prefix of each run: a prefix ending at position
// j (j >= 1) is kept when its final utterance has at least minLength runes.
func Expand(runs [][]string, minLength int) []string {
	var out []string
	for _, x := range runs {
		for j := 1; j < len(x); j++ {
			if utf8.RuneCountInString(x[j]) >= minLength {
				out = append(out, strings.Join(x[:j+1], Sep))
			}
		}
	}
	return out
}
