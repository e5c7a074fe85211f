package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxInputSize caps a single chat answer or journal sentence, in bytes.
const MaxInputSize = 4096

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// CleanInput trims text, rejects oversized or malformed input and strips
// control characters other than newline, tab and carriage return.
// Empty results are reported as ErrEmptyInput.
func CleanInput(text string) (string, error) {
	if len(text) > MaxInputSize {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(text), MaxInputSize)
	}
	if !utf8.ValidString(text) {
		return "", ErrInvalidUTF8
	}
	if strings.IndexFunc(text, unsafeControl) >= 0 {
		var b strings.Builder
		b.Grow(len(text))
		for _, r := range text {
			if !unsafeControl(r) {
				b.WriteRune(r)
			}
		}
		text = b.String()
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyInput
	}
	return text, nil
}

func unsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r'
}
