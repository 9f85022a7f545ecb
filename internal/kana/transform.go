package kana

import (
	"unicode/utf8"

	"golang.org/x/text/transform"
)

type transformer struct {
	transform.NopResetter
	shift shift
}

// NewTransformer returns a transform.Transformer that converts a UTF-8 byte
// stream to the given script, with the same pass-through rules as Convert.
// An unknown target yields transform.Nop.
func NewTransformer(to Script) transform.Transformer {
	switch to {
	case Katakana:
		return transformer{shift: toKatakana}
	case Hiragana:
		return transformer{shift: toHiragana}
	default:
		return transform.Nop
	}
}

func (t transformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		if c := src[nSrc]; c < utf8.RuneSelf {
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = c
			nDst++
			nSrc++
			continue
		}

		r, size := utf8.DecodeRune(src[nSrc:])
		if size == 1 && !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		// Both ranges encode to three bytes, so size holds for the output too.
		if nDst+size > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		if t.shift.covers(r) {
			utf8.EncodeRune(dst[nDst:], r+t.shift.delta)
		} else {
			copy(dst[nDst:], src[nSrc:nSrc+size])
		}
		nDst += size
		nSrc += size
	}
	return nDst, nSrc, nil
}
