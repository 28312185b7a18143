package tabular

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var commaDialect = Dialect{Delimiter: ',', Quote: '"', Escape: '\\', Encoding: "utf-8", Header: true}

func TestRead_Basic(t *testing.T) {
	data := "\ufeffname,city\nAcme,NYC\nGlobex,\n"

	table, err := Read(strings.NewReader(data), "social.csv", commaDialect)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "city"}, table.Header, "BOM is stripped from the first column")
	assert.Equal(t, [][]string{{"Acme", "NYC"}, {"Globex", ""}}, table.Rows)
}

func TestRead_SemicolonMultiLine(t *testing.T) {
	d := Dialect{Delimiter: ';', Escape: '\\', Header: true, MultiLine: true}
	data := "legal_name;s_category\n\"Acme; Inc\";\"Bakery\nCafe\"\n"

	table, err := Read(strings.NewReader(data), "website.csv", d)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Acme; Inc", table.Rows[0][0])
	assert.Equal(t, "Bakery\nCafe", table.Rows[0][1])
}

func TestRead_MultiLineDisabled(t *testing.T) {
	data := "name,category\n\"Acme\",\"Bakery\nCafe\"\n"

	_, err := Read(strings.NewReader(data), "social.csv", commaDialect)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multi-line fields are disabled")
}

func TestRead_Escapes(t *testing.T) {
	data := `name,note` + "\n" +
		`"Joe\"s Diner","C:\\path"` + "\n" +
		`"Plain \x",ok` + "\n"

	table, err := Read(strings.NewReader(data), "social.csv", commaDialect)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, `Joe"s Diner`, table.Rows[0][0])
	assert.Equal(t, `C:\path`, table.Rows[0][1])
	assert.Equal(t, `Plain \x`, table.Rows[1][0])
}

func TestRead_EscapedQuoteInUnquotedField(t *testing.T) {
	d := Dialect{Delimiter: ';', Escape: '\\', Header: true}
	data := "a;b\n5\\\" screen;\"x\\\"y\"\n"

	table, err := Read(strings.NewReader(data), "website.csv", d)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{`5" screen`, `x"y`}}, table.Rows)
}

func TestRead_EscapedQuoteAtFieldStart(t *testing.T) {
	data := `name,note` + "\n" +
		`\"Quoted\" word,z` + "\n" +
		`x,\"` + "\n"

	table, err := Read(strings.NewReader(data), "social.csv", commaDialect)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{`"Quoted" word`, "z"}, {"x", `"`}}, table.Rows)
}

func TestRead_DoubledQuoteInQuotedField(t *testing.T) {
	data := `name,note` + "\n" +
		`"Joe""s \"Diner\"","a,b"` + "\n"

	table, err := Read(strings.NewReader(data), "social.csv", commaDialect)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{`Joe"s "Diner"`, "a,b"}}, table.Rows)
}

func TestRead_RaggedRows(t *testing.T) {
	data := "a,b,c\n1,2\n1,2,3,4\n"

	table, err := Read(strings.NewReader(data), "x.csv", commaDialect)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "2"}, {"1", "2", "3", "4"}}, table.Rows)
}

func TestRead_InvalidUTF8(t *testing.T) {
	data := "name,city\nAcme,NYC\nBad\xff\xfe,LA\n"

	_, err := Read(strings.NewReader(data), "search.csv", commaDialect)
	require.Error(t, err)

	var encErr *EncodingError
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, "search.csv", encErr.Path)
	assert.Equal(t, 3, encErr.Line)
}

func TestRead_Latin1(t *testing.T) {
	d := commaDialect
	d.Encoding = "ISO-8859-1"
	data := "name,city\nCaf\xe9,M\xfcnchen\n"

	table, err := Read(strings.NewReader(data), "latin.csv", d)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Café", "München"}}, table.Rows)
}

func TestRead_Headerless(t *testing.T) {
	d := Dialect{Delimiter: ',', Header: false, Columns: []string{"name", "city"}}

	table, err := Read(strings.NewReader("Acme,NYC\n"), "x.csv", d)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "city"}, table.Header)
	assert.Equal(t, [][]string{{"Acme", "NYC"}}, table.Rows)
}

func TestRead_Empty(t *testing.T) {
	_, err := Read(strings.NewReader(""), "x.csv", commaDialect)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing header row")
}

func TestDialect_Validate(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		errText string
	}{
		{"NoDelimiter", Dialect{Header: true}, "delimiter is required"},
		{"QuoteDelimiter", Dialect{Delimiter: '"', Header: true}, "invalid delimiter"},
		{"SingleQuote", Dialect{Delimiter: ',', Quote: '\'', Header: true}, "unsupported quote"},
		{"EscapeIsDelimiter", Dialect{Delimiter: ',', Escape: ',', Header: true}, "invalid escape"},
		{"WideDelimiterWithEscape", Dialect{Delimiter: '¦', Escape: '\\', Header: true}, "for escaping"},
		{"HeaderlessWithoutColumns", Dialect{Delimiter: ','}, "columns are required"},
		{"UnknownEncoding", Dialect{Delimiter: ',', Header: true, Encoding: "klingon"}, "unsupported encoding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.dialect.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}

	assert.NoError(t, commaDialect.Validate())
}

func TestReadFileAndHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "google.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,country_name,city\nAcme,US,NYC\n"), 0o644))

	table, err := ReadFile(path, commaDialect)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 1)

	header, err := ReadHeader(path, commaDialect)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "country_name", "city"}, header)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"), commaDialect)
	assert.Error(t, err)
}
