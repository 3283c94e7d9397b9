// Package charsetutil guesses and decodes the text encodings found in
// municipal open-data CSV exports.
package charsetutil

import (
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// number of leading bytes fed to the detector
const SampleSize = 2000

// Detect guesses the charset of a byte sample. An empty or inconclusive
// sample defaults to utf-8.
//
// A sample with no high bytes is the narrow-ascii case and is widened to
// windows-1252: a high-byte-free leading sample says nothing about the
// rest of the file, and these exports regularly carry accented
// characters further down. The check is on the bytes themselves rather
// than the detector's verdict, since this detector labels such samples
// ISO-8859-1.
//
// A sample that is valid utf-8 with multibyte sequences is utf-8, the
// detector is only consulted for samples that are neither.
func Detect(sample []byte) string {
	if len(sample) > SampleSize {
		sample = sample[:SampleSize]
	}
	if len(sample) == 0 {
		return "utf-8"
	}

	if !hasHighBytes(sample) {
		return "windows-1252"
	}
	if validUtf8Prefix(sample) {
		return "utf-8"
	}

	result, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil || result.Charset == "" {
		return "utf-8"
	}
	return result.Charset
}

func hasHighBytes(sample []byte) bool {
	for _, b := range sample {
		if b >= 0x80 {
			return true
		}
	}
	return false
}

// reports whether the sample is valid utf-8, allowing for a multibyte
// sequence cut short by the sample boundary
func validUtf8Prefix(sample []byte) bool {
	for i := 0; i < utf8.UTFMax-1 && len(sample) > 0; i++ {
		if utf8.Valid(sample) {
			return true
		}
		sample = sample[:len(sample)-1]
	}
	return utf8.Valid(sample)
}

// DecodeReader wraps r so that reads yield utf-8 text decoded from the
// given charset. A charset name the index doesn't know falls back to
// passing the bytes through untouched.
func DecodeReader(r io.Reader, charset string) io.Reader {
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return r
	}
	return transform.NewReader(r, enc.NewDecoder())
}

// Decode converts raw bytes in the given charset to utf-8.
func Decode(raw []byte, charset string) ([]byte, error) {
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return raw, nil
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		return nil, err
	}
	return out, nil
}
