package cleaner

// IsChineseChar checks whether the rune is a codepoint in the CJK Unified
// Ideographs blocks. The CJK block is not all Japanese and Korean: Hangul,
// Hiragana and Katakana live elsewhere and write space-separated words, so
// they are not treated specially here.
func IsChineseChar(cp rune) bool {
	if (cp >= 0x4E00 && cp <= 0x9FFF) ||
		(cp >= 0x3400 && cp <= 0x4DBF) ||
		(cp >= 0x20000 && cp <= 0x2A6DF) ||
		(cp >= 0x2A700 && cp <= 0x2B73F) ||
		(cp >= 0x2B740 && cp <= 0x2B81F) ||
		(cp >= 0x2B820 && cp <= 0x2CEAF) ||
		(cp >= 0xF900 && cp <= 0xFAFF) ||
		(cp >= 0x2F800 && cp <= 0x2FA1F) {
		return true
	}
	return false
}

// ContainsChinese reports whether the utterance has at least one CJK rune.
func ContainsChinese(seq string) bool {
	for _, cp := range seq {
		if IsChineseChar(cp) {
			return true
		}
	}
	return false
}
