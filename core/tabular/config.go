package tabular

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Config holds the configurable shape of one input file.
type Config struct {
	// Path is a local path or an s3://bucket/key location.
	Path string `mapstructure:"path" default:""`
	// Delimiter is the single-character field separator.
	Delimiter string `mapstructure:"delimiter" default:","`
	// Quote is the quote character. Only the double quote is supported.
	Quote string `mapstructure:"quote" default:"\""`
	// Escape is the character escaping a quote inside a quoted field. Empty disables it.
	Escape string `mapstructure:"escape" default:"\\"`
	// Encoding is the IANA name of the file's character set.
	Encoding string `mapstructure:"encoding" default:"utf-8"`
	// Header indicates whether the first row names the columns.
	Header bool `mapstructure:"header" default:"true"`
	// Columns lists comma-separated column names for headerless files.
	Columns string `mapstructure:"columns" default:""`
	// MultiLine allows quoted fields to contain line breaks.
	MultiLine bool `mapstructure:"multi_line" default:"false"`
}

// Dialect validates the configuration and converts it to a Dialect.
func (c Config) Dialect() (Dialect, error) {
	delim, err := singleRune("delimiter", c.Delimiter, true)
	if err != nil {
		return Dialect{}, err
	}
	quote, err := singleRune("quote", c.Quote, false)
	if err != nil {
		return Dialect{}, err
	}
	escape, err := singleRune("escape", c.Escape, false)
	if err != nil {
		return Dialect{}, err
	}

	d := Dialect{
		Delimiter: delim,
		Quote:     quote,
		Escape:    escape,
		Encoding:  c.Encoding,
		Header:    c.Header,
		MultiLine: c.MultiLine,
	}
	if c.Columns != "" {
		for _, col := range strings.Split(c.Columns, ",") {
			d.Columns = append(d.Columns, strings.TrimSpace(col))
		}
	}

	if err := d.Validate(); err != nil {
		return Dialect{}, err
	}
	return d, nil
}

func singleRune(name, value string, required bool) (rune, error) {
	if value == "" {
		if required {
			return 0, fmt.Errorf("%s is required", name)
		}
		return 0, nil
	}
	if value == `\t` {
		return '\t', nil
	}
	if utf8.RuneCountInString(value) != 1 {
		return 0, fmt.Errorf("%s must be a single character, got %q", name, value)
	}
	r, _ := utf8.DecodeRuneInString(value)
	return r, nil
}
