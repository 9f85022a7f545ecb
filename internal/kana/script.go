package kana

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownScript = errors.New("unknown script")

// Script names a conversion target.
type Script string

const (
	Hiragana Script = "hiragana"
	Katakana Script = "katakana"
)

func (s Script) String() string {
	return string(s)
}

func ParseScript(name string) (Script, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "hiragana", "hira":
		return Hiragana, nil
	case "katakana", "kata":
		return Katakana, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownScript, name)
	}
}

// Other returns the opposite syllabary.
func (s Script) Other() Script {
	if s == Katakana {
		return Hiragana
	}
	return Katakana
}

// Convert converts text to the given script. An unknown target leaves text
// unchanged.
func Convert(text string, to Script) string {
	switch to {
	case Katakana:
		return ToKatakana(text)
	case Hiragana:
		return ToHiragana(text)
	default:
		return text
	}
}

// Counts holds the number of runes that fall in each converter range.
type Counts struct {
	Hiragana int `json:"hiragana"`
	Katakana int `json:"katakana"`
}

func Detect(text string) Counts {
	var c Counts
	for _, r := range text {
		switch {
		case toKatakana.covers(r):
			c.Hiragana++
		case toHiragana.covers(r):
			c.Katakana++
		}
	}
	return c
}
