package listings

import (
	"os"
	"path/filepath"
	"testing"

	"listing-merge/core/config"
	"listing-merge/core/database"
	"listing-merge/core/merge"
	"listing-merge/core/tabular"

	"github.com/stretchr/testify/require"
)

const (
	socialCSV = "name,categories,address,country_name,country_code,city,email,phone,phone_country_code,region_name,zip_code,domain\n" +
		"Acme Inc,Bakery,1 Main St,US,us,NYC,info@acme.test,1,+1,New York,10001,acme.test\n" +
		"Solo Social,Books,,FR,fr,Paris,,3,+33,,,solo.fr\n"

	searchCSV = "name,category,address,country_name,country_code,city,phone,phone_country_code,region_name,zip_code,domain\n" +
		"ACME INC,Food,,us,US, nyc ,2,+1,,,acme.com\n" +
		"Only Search,Bars,,DE,DE,Berlin,4,+49,,,only.de\n"

	websiteCSV = "legal_name;main_country;main_city;s_category;root_domain;main_region\n" +
		"\"Acme, Inc\";US;NYC;\"Cafe\nBar\";acme.org;NY\n"

	// sha256 of the normalized key "acmeincusnyc"
	acmeHashKey = "2d18c6a46a88e20ab30d21e1339b6a90373b24b1b1e07cea373a14d7a1dbac98"
)

// writeDatasets writes the three source exports into dir.
func writeDatasets(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, data := range map[string]string{
		"facebook_dataset.csv": socialCSV,
		"google_dataset.csv":   searchCSV,
		"website_dataset.csv":  websiteCSV,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644))
	}
}

func sourceConfig(path, delimiter string, multiLine bool) tabular.Config {
	return tabular.Config{
		Path:      path,
		Delimiter: delimiter,
		Quote:     `"`,
		Escape:    `\`,
		Encoding:  "utf-8",
		Header:    true,
		MultiLine: multiLine,
	}
}

// testConfig mirrors the defaults with every location under dir.
func testConfig(dir string) *config.Config {
	return &config.Config{
		Merge: merge.Config{HashAlgorithm: "sha256", Partitions: 4, DuplicatePolicy: "cross_product"},
		Input: config.InputConfig{
			ExtractDir: dir,
			Social:     sourceConfig("facebook_dataset.csv", ",", false),
			Search:     sourceConfig("google_dataset.csv", ",", false),
			Website:    sourceConfig("website_dataset.csv", ";", true),
		},
		Output:   config.OutputConfig{Path: filepath.Join(dir, "destination", "merged_dataset.csv")},
		Database: database.Config{BatchSize: 1},
	}
}

// readOutput parses a merged dataset back into rows keyed by column.
func readOutput(t *testing.T, path string) []map[string]string {
	t.Helper()
	table, err := tabular.ReadFile(path, tabular.Dialect{Delimiter: ',', Quote: '"', Header: true, MultiLine: true})
	require.NoError(t, err)

	rows := make([]map[string]string, 0, len(table.Rows))
	for _, r := range table.Rows {
		row := make(map[string]string, len(r))
		for i, col := range table.Header {
			row[col] = r[i]
		}
		rows = append(rows, row)
	}
	return rows
}
