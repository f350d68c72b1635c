package dialog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	assert.Equal(t, []string{"你好", "你好呀", "吃了吗"}, Split("你好\t\t你好呀\t\t吃了吗"))
	assert.Equal(t, []string{"单句"}, Split("单句"))
}

func TestBreaks(t *testing.T) {
	tests := []struct {
		name     string
		seq      string
		expected bool
	}{
		{name: "empty breaks", seq: "", expected: true},
		{name: "link breaks", seq: "看这个http://t.cn/abc", expected: true},
		{name: "over long breaks", seq: strings.Repeat("长", 201), expected: true},
		{name: "exactly max length passes", seq: strings.Repeat("长", 200), expected: false},
		{name: "normal passes", seq: "明天见", expected: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Breaks(tt.seq, 200))
		})
	}
}

func TestSegment(t *testing.T) {
	tests := []struct {
		name     string
		seqs     []string
		expected [][]string
	}{
		{
			name:     "clean dialog is one run",
			seqs:     []string{"你好", "你好呀", "吃了吗"},
			expected: [][]string{{"你好", "你好呀", "吃了吗"}},
		},
		{
			name:     "break splits into two runs",
			seqs:     []string{"你好", "你好呀", "", "在吗", "在的"},
			expected: [][]string{{"你好", "你好呀"}, {"在吗", "在的"}},
		},
		{
			name:     "single utterance run is dropped",
			seqs:     []string{"你好", "", "在吗", "在的"},
			expected: [][]string{{"在吗", "在的"}},
		},
		{
			name:     "link breaks the run",
			seqs:     []string{"你好", "http://t.cn/x", "在吗"},
			expected: nil,
		},
		{
			name:     "all breaking yields nothing",
			seqs:     []string{"", ""},
			expected: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Segment(tt.seqs, 200))
		})
	}
}

func TestExpand(t *testing.T) {
	runs := [][]string{{"你好", "你好呀你好", "短", "今天有空吗朋友"}}
	// j=1 kept (5 runes), j=2 dropped (1 rune), j=3 kept (7 runes)
	expected := []string{
		"你好\t\t你好呀你好",
		"你好\t\t你好呀你好\t\t短\t\t今天有空吗朋友",
	}
	assert.Equal(t, expected, Expand(runs, 5))

	assert.Nil(t, Expand(nil, 5))
	// a pair whose reply is too short produces nothing
	assert.Nil(t, Expand([][]string{{"你好", "嗯"}}, 5))
}
