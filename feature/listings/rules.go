package listings

import "listing-merge/core/merge"

// Rules returns the reconciliation table for unified businesses, in output column order.
// The search export is preferred over the social export, which is preferred over the website crawl.
func Rules() []merge.FieldRule {
	all := []merge.Source{merge.SourceSearch, merge.SourceSocial, merge.SourceWebsite}
	listed := []merge.Source{merge.SourceSearch, merge.SourceSocial}

	return []merge.FieldRule{
		{Field: merge.FieldCompanyName, Candidates: all},
		{Field: merge.FieldCategory, Candidates: all, Policy: merge.Concatenate, Separator: merge.DefaultSeparator},
		{Field: merge.FieldAddress, Candidates: listed},
		{Field: merge.FieldCountryName, Candidates: all},
		{Field: merge.FieldCountryCode, Candidates: listed},
		{Field: merge.FieldCity, Candidates: all},
		{Field: merge.FieldPhone, Candidates: listed},
		{Field: merge.FieldRegionName, Candidates: all},
		{Field: merge.FieldZipCode, Candidates: listed},
		{Field: merge.FieldDomain, Candidates: all},
		{Field: merge.FieldEmail, Candidates: []merge.Source{merge.SourceSocial}},
	}
}
