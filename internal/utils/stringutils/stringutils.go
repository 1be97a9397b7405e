package stringutils

import "fmt"

// InClause builds the placeholder list and argument slice for a SQL IN
// clause, numbering placeholders from start.
func InClause[T any](list []T, start int) (placeholders []string, args []any) {
	placeholders = make([]string, len(list))
	args = make([]any, len(list))
	for i, item := range list {
		placeholders[i] = fmt.Sprintf("$%d", start+i)
		args[i] = item
	}

	return placeholders, args
}
