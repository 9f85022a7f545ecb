// Package kana converts between the Hiragana and Katakana syllabaries.
//
// The two Unicode blocks are parallel and offset by a constant 0x60, so each
// conversion is a bounded code-point shift. Runes outside the converted range
// are passed through untouched, as are bytes that are not valid UTF-8.
package kana

import (
	"strings"
	"unicode/utf8"
)

const (
	hiraganaFirst = 0x3041
	hiraganaLast  = 0x3096
	katakanaFirst = 0x30A1
	katakanaLast  = 0x30F6

	blockOffset = 0x60
)

// shift maps every rune in [first, last] by delta.
type shift struct {
	first, last rune
	delta       rune
}

var (
	toKatakana = shift{first: hiraganaFirst, last: hiraganaLast, delta: blockOffset}
	toHiragana = shift{first: katakanaFirst, last: katakanaLast, delta: -blockOffset}
)

func (s shift) covers(r rune) bool {
	return r >= s.first && r <= s.last
}

func (s shift) apply(text string) string {
	// Fast path: nothing to convert, return the input as is.
	i := s.index(text)
	if i < 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	b.WriteString(text[:i])
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if s.covers(r) {
			b.WriteRune(r + s.delta)
		} else {
			// Raw bytes, so invalid UTF-8 survives byte for byte.
			b.WriteString(text[i : i+size])
		}
		i += size
	}
	return b.String()
}

// index returns the byte offset of the first convertible rune, or -1.
func (s shift) index(text string) int {
	for i, r := range text {
		if s.covers(r) {
			return i
		}
	}
	return -1
}

// ToKatakana returns text with every Hiragana rune in U+3041..U+3096 replaced
// by its Katakana counterpart. All other runes are left as they are.
func ToKatakana(text string) string {
	return toKatakana.apply(text)
}

// ToHiragana returns text with every Katakana rune in U+30A1..U+30F6 replaced
// by its Hiragana counterpart. All other runes are left as they are.
func ToHiragana(text string) string {
	return toHiragana.apply(text)
}
