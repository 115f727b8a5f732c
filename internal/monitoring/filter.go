package monitoring

import (
	"net/url"
	"sort"
	"strings"
)

// Comparison selects how a filter parameter is matched against its column.
type Comparison int

const (
	// Equal matches rows where the column equals the parameter value.
	Equal Comparison = iota
	// AtLeast matches rows where the column is >= the parameter value.
	AtLeast
	// AtMost matches rows where the column is <= the parameter value.
	AtMost
)

func (c Comparison) operator() string {
	switch c {
	case AtLeast:
		return ">="
	case AtMost:
		return "<="
	default:
		return "="
	}
}

// FieldFilter binds one exposed query parameter to a column and a
// comparison kind.
type FieldFilter struct {
	Column  string
	Compare Comparison
}

// FilterSpec declares which query parameters a list endpoint accepts and
// how each maps onto the underlying table. Parameters not present in the
// spec are ignored, so callers can send pagination or formatting params
// without tripping the filter.
type FilterSpec map[string]FieldFilter

// Clause builds a conjunctive WHERE clause from the request's query values.
//
// Only declared parameters participate; blank values are skipped. It
// returns the clause text (starting with " WHERE", or empty when nothing
// matched) and the bind arguments in matching order. Columns come from the
// spec, never from the request, so the clause is safe to concatenate.
func (fs FilterSpec) Clause(values url.Values) (string, []any) {
	if len(fs) == 0 || len(values) == 0 {
		return "", nil
	}

	// Iterate in sorted parameter order so the generated SQL is stable.
	params := make([]string, 0, len(fs))
	for param := range fs {
		params = append(params, param)
	}
	sort.Strings(params)

	var conds []string
	var args []any
	for _, param := range params {
		value := values.Get(param)
		if value == "" {
			continue
		}
		ff := fs[param]
		conds = append(conds, ff.Column+" "+ff.Compare.operator()+" ?")
		args = append(args, value)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
