package merge

import "strings"

// Policy selects how a field's candidates are collapsed.
type Policy int

const (
	// FirstNonNull takes the first non-null candidate in precedence order.
	FirstNonNull Policy = iota
	// Concatenate joins every non-null candidate with the rule's separator.
	Concatenate
)

// DefaultSeparator is used by Concatenate rules that do not set one.
const DefaultSeparator = " | "

// FieldRule resolves one output field from a joined row.
type FieldRule struct {
	// Field is both the output field and the canonical field read from each source.
	Field Field

	// Candidates lists the sources consulted, highest precedence first.
	Candidates []Source

	// Policy selects the collapse strategy.
	Policy Policy

	// Separator is used by Concatenate. Empty means DefaultSeparator.
	Separator string
}

// Resolve applies the rule to one joined row.
func (r FieldRule) Resolve(row JoinedRow) *string {
	values := make([]*string, 0, len(r.Candidates))
	for _, src := range r.Candidates {
		rec, ok := row[src]
		if !ok {
			values = append(values, nil)
			continue
		}
		values = append(values, rec.Get(r.Field))
	}

	switch r.Policy {
	case Concatenate:
		sep := r.Separator
		if sep == "" {
			sep = DefaultSeparator
		}
		return ConcatNonNull(sep, values...)
	default:
		return FirstNonNullOf(values...)
	}
}

// FirstNonNullOf returns the first non-nil value, or nil.
func FirstNonNullOf(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

// ConcatNonNull joins the non-nil values with sep. It returns nil when every
// value is nil, so an unresolved field stays null.
func ConcatNonNull(sep string, values ...*string) *string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v != nil {
			parts = append(parts, *v)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	joined := strings.Join(parts, sep)
	return &joined
}

// Reconciler collapses joined rows into unified records.
type Reconciler struct {
	rules []FieldRule
}

// NewReconciler creates a reconciler over a fixed rule set.
func NewReconciler(rules []FieldRule) *Reconciler {
	return &Reconciler{rules: rules}
}

// Fields returns the output fields in rule order.
func (r *Reconciler) Fields() []Field {
	fields := make([]Field, 0, len(r.rules))
	for _, rule := range r.rules {
		fields = append(fields, rule.Field)
	}
	return fields
}

// Reconcile resolves every rule over row. Batch columns (timestamp, run id)
// are stamped by the engine.
func (r *Reconciler) Reconcile(hashKey string, row JoinedRow) UnifiedRecord {
	fields := make(map[Field]*string, len(r.rules))
	for _, rule := range r.rules {
		fields[rule.Field] = rule.Resolve(row)
	}
	return UnifiedRecord{HashKey: hashKey, Fields: fields}
}
