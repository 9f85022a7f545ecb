package kana

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/transform"
)

func TestTransformerMatchesConvert(t *testing.T) {
	inputs := []string{"", "あいう", "カタカナ", "abc123", "あA", "東京タワーへいく", "bad\xffbyte あ"}
	for _, in := range inputs {
		for _, to := range []Script{Katakana, Hiragana} {
			got, _, err := transform.String(NewTransformer(to), in)
			require.NoError(t, err)
			assert.Equal(t, Convert(in, to), got, "%s(%q)", to, in)
		}
	}
}

func TestTransformerSplitRunes(t *testing.T) {
	in := "ひらがな and カタカナ"
	want := ToKatakana(in)

	// OneByteReader forces every multi-byte rune across read boundaries.
	r := transform.NewReader(iotest.OneByteReader(strings.NewReader(in)), NewTransformer(Katakana))
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, want, string(got))
}

func TestTransformerEverySplitPoint(t *testing.T) {
	in := "あいうえお"
	tr := NewTransformer(Katakana)
	for i := 0; i <= len(in); i++ {
		dst := make([]byte, len(in))
		nDst, nSrc, err := tr.Transform(dst, []byte(in[:i]), false)
		if i%3 != 0 {
			assert.ErrorIs(t, err, transform.ErrShortSrc, "split at %d", i)
		} else {
			assert.NoError(t, err, "split at %d", i)
		}
		assert.Equal(t, nDst, nSrc)
		assert.Equal(t, ToKatakana(in[:nSrc]), string(dst[:nDst]))
	}
}

func TestTransformerShortDst(t *testing.T) {
	tr := NewTransformer(Hiragana)
	dst := make([]byte, 4)
	nDst, nSrc, err := tr.Transform(dst, []byte("アイ"), true)
	assert.ErrorIs(t, err, transform.ErrShortDst)
	assert.Equal(t, 3, nDst)
	assert.Equal(t, 3, nSrc)
	assert.Equal(t, "あ", string(dst[:nDst]))
}

func TestTransformerTruncatedAtEOF(t *testing.T) {
	got, _, err := transform.String(NewTransformer(Katakana), "あ\xe3\x81")
	require.NoError(t, err)
	assert.Equal(t, "ア\xe3\x81", got)
}

func TestTransformerWriter(t *testing.T) {
	var buf bytes.Buffer
	w := transform.NewWriter(&buf, NewTransformer(Hiragana))
	_, err := io.WriteString(w, "カタ")
	require.NoError(t, err)
	_, err = w.Write([]byte("カナ"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Equal(t, "かたかな", buf.String())
}

func TestTransformerUnknownScript(t *testing.T) {
	got, _, err := transform.String(NewTransformer(Script("x")), "あ")
	require.NoError(t, err)
	assert.Equal(t, "あ", got)
}
