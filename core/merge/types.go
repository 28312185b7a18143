package merge

import "time"

// Source identifies which export a record came from.
type Source string

const (
	// SourceSocial is the social-network export.
	SourceSocial Source = "source_a"
	// SourceSearch is the search-index export.
	SourceSearch Source = "source_b"
	// SourceWebsite is the website-crawl export.
	SourceWebsite Source = "source_c"
)

// Sources lists every source in join order.
var Sources = []Source{SourceSocial, SourceSearch, SourceWebsite}

// Field is a canonical column name.
type Field string

const (
	FieldCategory         Field = "category"
	FieldAddress          Field = "address"
	FieldCountryName      Field = "country_name"
	FieldCountryCode      Field = "country_code"
	FieldCity             Field = "city"
	FieldEmail            Field = "email"
	FieldCompanyName      Field = "company_name"
	FieldPhone            Field = "phone"
	FieldPhoneCountryCode Field = "phone_country_code"
	FieldRegionName       Field = "region_name"
	FieldZipCode          Field = "zip_code"
	FieldDomain           Field = "domain"
)

// KeyFields are the canonical columns the MatchKey is built from, in order.
var KeyFields = []Field{FieldCompanyName, FieldCountryName, FieldCity}

// Table is a raw tabular input: a header row and string cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// CanonicalRecord is one source row after projection onto the canonical schema.
type CanonicalRecord struct {
	// Source is the provenance tag.
	Source Source

	// Fields holds the projected values. A nil or missing entry means null.
	Fields map[Field]*string

	// MatchKey is the normalized company name, country and city.
	MatchKey string

	// HashKey is the digest of MatchKey; join predicate and partition selector.
	HashKey string
}

// Get returns the value of a canonical field, or nil if absent.
func (r CanonicalRecord) Get(f Field) *string {
	if r.Fields == nil {
		return nil
	}
	return r.Fields[f]
}

// JoinedRecordGroup holds every record sharing one HashKey, per source.
// A group only exists when all three sources contributed at least one record.
type JoinedRecordGroup struct {
	HashKey string
	Members map[Source][]CanonicalRecord
}

// JoinedRow is one combination of a JoinedRecordGroup's cross-product.
type JoinedRow map[Source]CanonicalRecord

// Rows expands the group into its cross-product. Duplicate keys on one side
// therefore multiply the output rows.
func (g JoinedRecordGroup) Rows() []JoinedRow {
	var rows []JoinedRow
	for _, a := range g.Members[SourceSocial] {
		for _, b := range g.Members[SourceSearch] {
			for _, c := range g.Members[SourceWebsite] {
				rows = append(rows, JoinedRow{
					SourceSocial:  a,
					SourceSearch:  b,
					SourceWebsite: c,
				})
			}
		}
	}
	return rows
}

// Size returns the number of rows the group expands to.
func (g JoinedRecordGroup) Size() int {
	n := 1
	for _, src := range Sources {
		n *= len(g.Members[src])
	}
	return n
}

// UnifiedRecord is the reconciled output for one joined row.
type UnifiedRecord struct {
	// HashKey is the join key the record was built from.
	HashKey string `json:"hash_key"`

	// Fields holds the resolved output values. Unresolved fields are nil.
	Fields map[Field]*string `json:"fields"`

	// LoadTimestamp is shared by every record of a run.
	LoadTimestamp time.Time `json:"load_timestamp"`

	// RunID identifies the run that produced the record.
	RunID string `json:"run_id"`
}

// Get returns the resolved value of an output field, or nil.
func (u UnifiedRecord) Get(f Field) *string {
	if u.Fields == nil {
		return nil
	}
	return u.Fields[f]
}

// SourceStats describes one adapted input stream.
type SourceStats struct {
	Rows      int `json:"rows"`
	Keys      int `json:"keys"`
	EmptyKeys int `json:"empty_keys"`
}

// JoinStats provides aggregate counts for a join.
type JoinStats struct {
	// Partitions is the number of buckets the streams were split into.
	Partitions int `json:"partitions"`

	// Groups counts hash keys present in all three sources.
	Groups int `json:"groups"`

	// Rows counts joined rows after cross-product expansion.
	Rows int `json:"rows"`

	// FanOut counts rows beyond one per group.
	FanOut int `json:"fan_out"`

	// DroppedDuplicates counts rows discarded by the first-row duplicate policy.
	DroppedDuplicates int `json:"dropped_duplicates"`

	// Collisions counts hash keys shared by more than one distinct MatchKey.
	Collisions int `json:"collisions"`
}

// Result is the outcome of an engine run.
type Result struct {
	Records []UnifiedRecord        `json:"records"`
	Sources map[Source]SourceStats `json:"sources"`
	Join    JoinStats              `json:"join"`
}
