package listings

import "listing-merge/core/merge"

// SocialAdapter maps the social-network export (facebook_dataset.csv).
func SocialAdapter() merge.SourceAdapter {
	return merge.SourceAdapter{
		Source: merge.SourceSocial,
		Rename: map[string]string{
			"name":       string(merge.FieldCompanyName),
			"categories": string(merge.FieldCategory),
		},
		Columns: []merge.Field{
			merge.FieldCategory,
			merge.FieldAddress,
			merge.FieldCountryName,
			merge.FieldCountryCode,
			merge.FieldCity,
			merge.FieldEmail,
			merge.FieldCompanyName,
			merge.FieldPhone,
			merge.FieldPhoneCountryCode,
			merge.FieldRegionName,
			merge.FieldZipCode,
			merge.FieldDomain,
		},
	}
}

// SearchAdapter maps the search-index export (google_dataset.csv).
func SearchAdapter() merge.SourceAdapter {
	return merge.SourceAdapter{
		Source: merge.SourceSearch,
		Rename: map[string]string{
			"name": string(merge.FieldCompanyName),
		},
		Columns: []merge.Field{
			merge.FieldCategory,
			merge.FieldAddress,
			merge.FieldCountryName,
			merge.FieldCountryCode,
			merge.FieldCity,
			merge.FieldCompanyName,
			merge.FieldPhone,
			merge.FieldPhoneCountryCode,
			merge.FieldRegionName,
			merge.FieldZipCode,
			merge.FieldDomain,
		},
	}
}

// WebsiteAdapter maps the website-crawl export (website_dataset.csv).
func WebsiteAdapter() merge.SourceAdapter {
	return merge.SourceAdapter{
		Source: merge.SourceWebsite,
		Rename: map[string]string{
			"legal_name":   string(merge.FieldCompanyName),
			"main_country": string(merge.FieldCountryName),
			"main_city":    string(merge.FieldCity),
			"s_category":   string(merge.FieldCategory),
			"root_domain":  string(merge.FieldDomain),
			"main_region":  string(merge.FieldRegionName),
		},
		Columns: []merge.Field{
			merge.FieldDomain,
			merge.FieldCompanyName,
			merge.FieldCountryName,
			merge.FieldCity,
			merge.FieldRegionName,
			merge.FieldCategory,
		},
	}
}
