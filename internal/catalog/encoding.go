package catalog

import (
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/cxready/internal/domain"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Supported source encodings.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
	EncodingLatin1      = "iso-8859-1"
)

// Decoder wraps r so it yields UTF-8. For UTF-8 input a leading byte order
// mark, as written by spreadsheet exports, is stripped.
func Decoder(r io.Reader, name string) (io.Reader, error) {
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EncodingUTF8, "utf8":
		return unicode.UTF8BOM, nil
	case EncodingWindows1252, "cp1252":
		return charmap.Windows1252, nil
	case EncodingLatin1, "latin1", "latin-1":
		return charmap.ISO8859_1, nil
	default:
		return nil, fmt.Errorf("%w: unsupported encoding %q", domain.ErrDataLoad, name)
	}
}

// ValidEncoding reports whether name is a supported source encoding.
func ValidEncoding(name string) bool {
	_, err := lookupEncoding(name)
	return err == nil
}
