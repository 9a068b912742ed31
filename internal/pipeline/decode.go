package pipeline

import (
	"bytes"
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// Encodings the decoder reports.
const (
	EncodingCP949 = "cp949"
	EncodingUTF8  = "utf-8"
)

// ErrDecode means no supported encoding accepted the source bytes.
var ErrDecode = errors.New("source is neither cp949 nor utf-8")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode converts source bytes to text. CP949 is tried first, then UTF-8.
// A UTF-8 byte order mark skips the CP949 attempt.
func Decode(data []byte) (string, string, error) {
	if rest, ok := bytes.CutPrefix(data, utf8BOM); ok {
		if utf8.Valid(rest) {
			return string(rest), EncodingUTF8, nil
		}
		return "", "", ErrDecode
	}
	if text, ok := decodeCP949(data); ok {
		return text, EncodingCP949, nil
	}
	if utf8.Valid(data) {
		return string(data), EncodingUTF8, nil
	}
	return "", "", ErrDecode
}

// decodeCP949 decodes strictly: the x/text decoder substitutes U+FFFD for
// invalid sequences instead of failing, and CP949 text can never contain
// U+FFFD, so any replacement rune means the bytes are not CP949.
func decodeCP949(data []byte) (string, bool) {
	out, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), data)
	if err != nil || bytes.ContainsRune(out, utf8.RuneError) {
		return "", false
	}
	return string(out), true
}

// EncodeCP949 converts UTF-8 text to CP949 bytes.
func EncodeCP949(text string) ([]byte, error) {
	out, _, err := transform.Bytes(korean.EUCKR.NewEncoder(), []byte(text))
	return out, err
}
