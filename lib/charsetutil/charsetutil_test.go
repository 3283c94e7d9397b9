package charsetutil

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestDetectAsciiWidened(t *testing.T) {
	// the detector labels high-byte-free samples ISO-8859-1, the
	// widening must fire regardless of what name it picks
	sample := []byte("trip_id,start_station,end_station\n1,Union,King\n")
	require.Equal(t, "windows-1252", Detect(sample))
}

func TestDetectEmptyDefaultsUtf8(t *testing.T) {
	require.Equal(t, "utf-8", Detect(nil))
	require.Equal(t, "utf-8", Detect([]byte{}))
}

func TestDetectUtf8PassedThrough(t *testing.T) {
	// short accented utf-8 samples are exactly what single-byte-charset
	// statistics mistake for windows-1252, they must not reach the
	// detector at all
	sample := []byte("station,rue\nMétro Côte-des-Neiges,Rue de l'Église\n")
	charset := Detect(sample)
	require.Equal(t, "utf-8", charset)

	decoded, err := Decode(sample, charset)
	require.NoError(t, err)
	require.Equal(t, string(sample), string(decoded))
}

func TestDetectUtf8CutMidRune(t *testing.T) {
	row := "Côte-des-Neiges,"
	sample := []byte(strings.Repeat(row, SampleSize/len(row)+1))[:SampleSize]
	// make sure the boundary really does split a multibyte sequence
	for utf8.Valid(sample) {
		sample = append(sample[:len(sample)-1], []byte("é")[0])
	}
	require.Equal(t, "utf-8", Detect(sample))
}

func TestWindows1252RoundTrip(t *testing.T) {
	text := "station\nCôte-Sainte-Catherine / Décarie\n"

	raw, err := charmap.Windows1252.NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)
	// the encoded form is not valid utf-8, otherwise the test proves nothing
	require.NotEqual(t, text, string(raw))

	charset := Detect(raw)
	decoded, err := Decode(raw, charset)
	require.NoError(t, err)
	require.Equal(t, text, string(decoded))
}

func TestDecodeReaderUnknownCharset(t *testing.T) {
	raw := []byte("plain text")
	r := DecodeReader(bytes.NewReader(raw), "not-a-charset")

	var buf bytes.Buffer
	_, err := buf.ReadFrom(r)
	require.NoError(t, err)
	require.Equal(t, raw, buf.Bytes())
}
