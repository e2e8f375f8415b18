package generator

import (
	"sort"
	"strings"
)

type field struct {
	name        string
	description string
}

// categorize orders a table's columns for hashing and loading: primary keys,
// then foreign keys, then regular fields, then the system fields, each group
// sorted by name. Load-tool bookkeeping columns (`_dlt_` prefix) are dropped.
//
// A column ending in `_id` that contains the table's entity name (the last
// `__`-separated segment of the table name) counts as a primary key; any
// other `_id` column is a foreign key.
func categorize(tableName string, cols map[string]Column) []field {
	segments := strings.Split(tableName, "__")
	entity := segments[len(segments)-1]

	var primary, foreign, regular, system []field
	for name, col := range cols {
		f := field{name: name, description: col.Description}
		switch {
		case strings.HasPrefix(name, "_dlt_"):
			continue
		case name == "rowguid" || name == "modified_date":
			system = append(system, f)
		case strings.HasSuffix(name, "_id") && strings.Contains(name, entity):
			primary = append(primary, f)
		case strings.HasSuffix(name, "_id"):
			foreign = append(foreign, f)
		default:
			regular = append(regular, f)
		}
	}

	for _, group := range [][]field{primary, foreign, regular, system} {
		sort.Slice(group, func(i, j int) bool { return group[i].name < group[j].name })
	}

	ordered := make([]field, 0, len(primary)+len(foreign)+len(regular)+len(system))
	ordered = append(ordered, primary...)
	ordered = append(ordered, foreign...)
	ordered = append(ordered, regular...)
	ordered = append(ordered, system...)
	return ordered
}

// escapeQuote replaces single quotes so descriptions survive embedding in
// platform string literals.
func escapeQuote(s string) string {
	return strings.ReplaceAll(s, "'", "$(=Chr39())")
}
