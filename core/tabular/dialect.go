package tabular

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// Dialect describes how a delimited file is laid out.
type Dialect struct {
	Delimiter rune
	// Quote is the quote character; zero means '"'.
	Quote rune
	// Escape precedes a quote (or itself) inside a field; zero disables escaping.
	Escape    rune
	Encoding  string
	Header    bool
	Columns   []string
	MultiLine bool
}

// Validate checks the dialect for combinations the reader cannot honour.
func (d Dialect) Validate() error {
	if d.Delimiter == 0 {
		return errors.New("delimiter is required")
	}
	if d.Delimiter == '"' || d.Delimiter == '\r' || d.Delimiter == '\n' {
		return fmt.Errorf("invalid delimiter %q", d.Delimiter)
	}
	if d.Quote != 0 && d.Quote != '"' {
		return fmt.Errorf("unsupported quote character %q", d.Quote)
	}
	if d.Escape != 0 && (d.Escape > 0x7f || d.Escape == d.Delimiter) {
		return fmt.Errorf("invalid escape character %q", d.Escape)
	}
	if d.Escape != 0 && d.Delimiter > 0x7f {
		return fmt.Errorf("invalid delimiter %q for escaping", d.Delimiter)
	}
	if !d.Header && len(d.Columns) == 0 {
		return errors.New("columns are required when the file has no header")
	}
	if _, err := d.encoding(); err != nil {
		return err
	}
	return nil
}

// isUTF8 reports whether the dialect reads raw UTF-8.
func (d Dialect) isUTF8() bool {
	switch strings.ToLower(strings.TrimSpace(d.Encoding)) {
	case "", "utf-8", "utf8":
		return true
	}
	return false
}

// encoding resolves the character set. It returns nil for UTF-8.
func (d Dialect) encoding() (encoding.Encoding, error) {
	if d.isUTF8() {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(d.Encoding)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", d.Encoding)
	}
	return enc, nil
}
