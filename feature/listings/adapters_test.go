package listings

import (
	"strings"
	"testing"

	"listing-merge/core/merge"
	"listing-merge/core/tabular"
	"listing-merge/core/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapters_Project(t *testing.T) {
	tests := []struct {
		name    string
		adapter merge.SourceAdapter
		data    string
		dialect tabular.Dialect
	}{
		{"Social", SocialAdapter(), socialCSV, tabular.Dialect{Delimiter: ',', Header: true}},
		{"Search", SearchAdapter(), searchCSV, tabular.Dialect{Delimiter: ',', Header: true}},
		{"Website", WebsiteAdapter(), websiteCSV, tabular.Dialect{Delimiter: ';', Header: true, MultiLine: true}},
	}

	hasher, err := merge.NewHasher("sha256")
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := tabular.Read(strings.NewReader(tt.data), tt.name, tt.dialect)
			require.NoError(t, err)

			recs, err := tt.adapter.Adapt(&merge.Table{Header: table.Header, Rows: table.Rows}, hasher)
			require.NoError(t, err)
			require.NotEmpty(t, recs)

			acme := recs[0]
			assert.Equal(t, tt.adapter.Source, acme.Source)
			assert.Equal(t, "acmeincusnyc", acme.MatchKey)
			assert.Equal(t, acmeHashKey, acme.HashKey)
			assert.Len(t, acme.Fields, len(tt.adapter.Columns))
		})
	}
}

func TestAdapters_Columns(t *testing.T) {
	social := SocialAdapter()
	search := SearchAdapter()
	website := WebsiteAdapter()

	assert.Contains(t, social.Columns, merge.FieldEmail)
	assert.NotContains(t, search.Columns, merge.FieldEmail)
	assert.Len(t, search.Columns, len(social.Columns)-1)
	assert.ElementsMatch(t, []merge.Field{
		merge.FieldDomain, merge.FieldCompanyName, merge.FieldCountryName,
		merge.FieldCity, merge.FieldRegionName, merge.FieldCategory,
	}, website.Columns)

	// every adapter retains the key fields
	for _, a := range []merge.SourceAdapter{social, search, website} {
		for _, f := range merge.KeyFields {
			assert.Contains(t, a.Columns, f, a.Source)
		}
	}
}

func TestAdapters_SchemaError(t *testing.T) {
	_, err := WebsiteAdapter().Project([]string{"legal_name", "main_country", "s_category", "root_domain", "main_region"})
	require.Error(t, err)

	var schemaErr *merge.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, merge.SourceWebsite, schemaErr.Source)
	assert.Equal(t, []string{"city"}, schemaErr.Missing)
}

func TestRules(t *testing.T) {
	rules := Rules()
	fields := make([]string, 0, len(rules))
	for _, r := range rules {
		fields = append(fields, string(r.Field))
	}
	assert.Equal(t, []string{
		"company_name", "category", "address", "country_name", "country_code", "city",
		"phone", "region_name", "zip_code", "domain", "email",
	}, fields)

	for _, r := range rules {
		assert.Equal(t, merge.SourceSearch == r.Candidates[0], r.Field != merge.FieldEmail, r.Field)
		if r.Field == merge.FieldCategory {
			assert.Equal(t, merge.Concatenate, r.Policy)
		} else {
			assert.Equal(t, merge.FirstNonNull, r.Policy, r.Field)
		}
	}

	row := merge.JoinedRow{
		merge.SourceSocial:  {Source: merge.SourceSocial, Fields: map[merge.Field]*string{merge.FieldCategory: utils.Ptr("X")}},
		merge.SourceSearch:  {Source: merge.SourceSearch, Fields: map[merge.Field]*string{}},
		merge.SourceWebsite: {Source: merge.SourceWebsite, Fields: map[merge.Field]*string{merge.FieldCategory: utils.Ptr("Z")}},
	}
	assert.Equal(t, "X | Z", *rules[1].Resolve(row))
}
