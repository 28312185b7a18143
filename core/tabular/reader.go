package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// Table is a parsed delimited file.
type Table struct {
	Header []string
	Rows   [][]string
}

// EncodingError reports malformed bytes in a file declared as UTF-8.
type EncodingError struct {
	Path     string
	Encoding string
	Line     int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s: invalid %s at line %d", e.Path, e.Encoding, e.Line)
}

const utf8BOM = "\ufeff"

// ReadFile reads the delimited file at path.
func ReadFile(path string, d Dialect) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return read(f, path, d, false)
}

// Read reads delimited data from r. name labels errors.
func Read(r io.Reader, name string, d Dialect) (*Table, error) {
	return read(r, name, d, false)
}

// ReadHeader reads only the column names of the file at path.
func ReadHeader(path string, d Dialect) ([]string, error) {
	if !d.Header {
		return d.Columns, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	t, err := read(f, path, d, true)
	if err != nil {
		return nil, err
	}
	return t.Header, nil
}

func read(r io.Reader, name string, d Dialect, headerOnly bool) (*Table, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	src, err := decoded(r, d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	reader := csv.NewReader(src)
	reader.Comma = d.Delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	table := &Table{}
	if d.Header {
		header, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: missing header row", name)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: failed to read header: %w", name, err)
		}
		if len(header) > 0 {
			header[0] = strings.TrimPrefix(header[0], utf8BOM)
		}
		if err := checkRecord(reader, name, d, header); err != nil {
			return nil, err
		}
		table.Header = header
		if headerOnly {
			return table, nil
		}
	} else {
		table.Header = append([]string(nil), d.Columns...)
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if err := checkRecord(reader, name, d, record); err != nil {
			return nil, err
		}
		table.Rows = append(table.Rows, record)
	}

	return table, nil
}

// decoded wraps r with the charset decoder and the escape rewriter.
func decoded(r io.Reader, d Dialect) (io.Reader, error) {
	enc, err := d.encoding()
	if err != nil {
		return nil, err
	}

	var chain []transform.Transformer
	if enc != nil {
		chain = append(chain, enc.NewDecoder())
	}
	if d.Escape != 0 {
		chain = append(chain, newUnescaper(d.Escape, d.Quote, d.Delimiter))
	}
	if len(chain) == 0 {
		return r, nil
	}
	return transform.NewReader(r, transform.Chain(chain...)), nil
}

// checkRecord enforces the UTF-8 and multi-line constraints on one record.
func checkRecord(reader *csv.Reader, name string, d Dialect, record []string) error {
	for i, field := range record {
		if d.isUTF8() && !utf8.ValidString(field) {
			line, _ := reader.FieldPos(i)
			return &EncodingError{Path: name, Encoding: "UTF-8", Line: line}
		}
		if !d.MultiLine && strings.ContainsAny(field, "\r\n") {
			line, _ := reader.FieldPos(i)
			return fmt.Errorf("%s: line %d: line break inside field %d but multi-line fields are disabled", name, line, i+1)
		}
	}
	return nil
}
