// Package cleaner holds the per-utterance cleaning rules for raw chat
// corpora (zhihu / weibo dumps and friends).
package cleaner

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// 语料来源类型
const (
	TypeNone      = "none"
	TypeZhihu     = "zhihu"
	TypeWeiboTang = "weibo_tang"
)

// mention tails longer than this are treated as normal text
const mentionTailLength = 30

var (
	tmRegex        = regexp.MustCompile(`(?i)([^a-zA-Z])(tm)([^a-zA-Z])`)
	bracketsRegex  = regexp.MustCompile(`\[.*?\] *`)
	bracketsRegex2 = regexp.MustCompile(`［.*?］ *`)
	// RE2's \s is ASCII-only; the classes also need U+3000, NBSP and
	// friends, which show up a lot in scraped Chinese text
	colonRegex     = regexp.MustCompile(`[:\s\p{Z}\v\x{85}]{4,}`)
	zhihuTailRegex = regexp.MustCompile(`…* *显示全部[\s\p{Z}\v\x{85}]*`)
	mentionRegex   = regexp.MustCompile(`(@+)\S{0,30} `)
)

// DataTypeOf infers the corpus source from the file path.
func DataTypeOf(path string) string {
	if strings.Contains(path, "zhihu") {
		return TypeZhihu
	}
	if strings.Contains(path, "weibo_tang") || strings.Contains(path, "weibo_sunhao") {
		return TypeWeiboTang
	}
	return TypeNone
}

// Clean applies the rule chain to one utterance. Rule order matters: the
// source-specific strips run first, then whole-utterance drops, then the
// in-place removals.
func Clean(seq, dataType string) string {
	switch dataType {
	case TypeZhihu:
		// 去掉知乎折叠尾巴
		seq = zhihuTailRegex.ReplaceAllString(seq, "")
	case TypeWeiboTang:
		seq = bracketsRegex.ReplaceAllString(seq, "")
		seq = bracketsRegex2.ReplaceAllString(seq, "")
	}
	if ContainsMention(seq) {
		seq = ""
	}
	if strings.Contains(seq, "尼玛") {
		seq = ""
	}
	seq = colonRegex.ReplaceAllString(seq, "")
	seq = strings.ReplaceAll(seq, "[图片]", "")
	seq = strings.ReplaceAll(seq, "［图片］", "")
	seq = strings.ReplaceAll(seq, "我擦", "")
	seq = tmRegex.ReplaceAllString(seq, "${1}${3}")
	return seq
}

// ContainsMention reports whether the utterance carries an @user mention,
// either inline (followed by a space) or as a short trailing handle.
func ContainsMention(seq string) bool {
	if mentionRegex.MatchString(seq) {
		return true
	}
	idx := strings.LastIndex(seq, "@")
	if idx > -1 && utf8.RuneCountInString(seq[idx:]) < mentionTailLength {
		return true
	}
	return false
}

// StripMentions removes inline @user mentions and a short trailing handle,
// keeping the rest of the utterance.
func StripMentions(seq string) string {
	seq = mentionRegex.ReplaceAllString(seq, "")
	idx := strings.LastIndex(seq, "@")
	if idx > -1 && utf8.RuneCountInString(seq[idx:]) < mentionTailLength {
		seq = seq[:idx]
	}
	return seq
}

// FoldNFKC applies NFKC normalization, folding full-width forms into their
// half-width equivalents.
func FoldNFKC(seq string) string {
	return norm.NFKC.String(seq)
}
