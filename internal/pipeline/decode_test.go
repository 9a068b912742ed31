package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const koreanCSV = "State,FestivalName\n서울,한강 봄 축제\n"

func TestDecode(t *testing.T) {
	t.Run("cp949", func(t *testing.T) {
		data, err := EncodeCP949(koreanCSV)
		require.NoError(t, err)

		text, enc, err := Decode(data)
		require.NoError(t, err)
		assert.Equal(t, EncodingCP949, enc)
		assert.Equal(t, koreanCSV, text)
	})

	t.Run("utf-8 falls through cp949", func(t *testing.T) {
		text, enc, err := Decode([]byte(koreanCSV))
		require.NoError(t, err)
		assert.Equal(t, EncodingUTF8, enc)
		assert.Equal(t, koreanCSV, text)
	})

	t.Run("utf-8 with byte order mark", func(t *testing.T) {
		data := append([]byte{0xEF, 0xBB, 0xBF}, koreanCSV...)
		text, enc, err := Decode(data)
		require.NoError(t, err)
		assert.Equal(t, EncodingUTF8, enc)
		assert.Equal(t, koreanCSV, text)
	})

	t.Run("ascii is accepted by the primary encoding", func(t *testing.T) {
		text, enc, err := Decode([]byte("a,b\n1,2\n"))
		require.NoError(t, err)
		assert.Equal(t, EncodingCP949, enc)
		assert.Equal(t, "a,b\n1,2\n", text)
	})

	// Hangul-only UTF-8 can also be valid CP949, and CP949 is tried first.
	t.Run("short utf-8 hangul reads as cp949", func(t *testing.T) {
		text, enc, err := Decode([]byte("축제\n"))
		require.NoError(t, err)
		assert.Equal(t, EncodingCP949, enc)
		assert.NotEqual(t, "축제\n", text)
	})

	t.Run("byte order mark keeps short utf-8 intact", func(t *testing.T) {
		text, enc, err := Decode(append([]byte{0xEF, 0xBB, 0xBF}, "축제\n"...))
		require.NoError(t, err)
		assert.Equal(t, EncodingUTF8, enc)
		assert.Equal(t, "축제\n", text)
	})

	t.Run("neither encoding", func(t *testing.T) {
		_, _, err := Decode([]byte{0x41, 0xFF, 0xFE, 0x80, 0x42})
		assert.ErrorIs(t, err, ErrDecode)
	})

	t.Run("byte order mark before invalid utf-8", func(t *testing.T) {
		_, _, err := Decode([]byte{0xEF, 0xBB, 0xBF, 0xFF})
		assert.ErrorIs(t, err, ErrDecode)
	})

	t.Run("empty", func(t *testing.T) {
		text, _, err := Decode(nil)
		require.NoError(t, err)
		assert.Empty(t, text)
	})
}
