package merge

import (
	"fmt"
	"strings"
)

// SchemaError reports canonical columns missing from a source after renaming.
// It is fatal for the run.
type SchemaError struct {
	Source  Source
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing canonical columns [%s]", e.Source, strings.Join(e.Missing, ", "))
}
