package domain

import "fmt"

// ThemeName derives the display title of a session from its activating event.
func ThemeName(abc ABCRecord, lang Language) string {
	switch lang {
	case LangChinese:
		return fmt.Sprintf("关于“%s...”的小风波", prefix(abc.A, 5))
	case LangJapanese:
		return fmt.Sprintf("「%s...」の一件", prefix(abc.A, 5))
	default:
		return fmt.Sprintf("The \"%s...\" Incident", prefix(abc.A, 10))
	}
}

// prefix returns at most n runes of s.
func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
