package persistence

import "strings"

// orderClause builds a safe ORDER BY clause. The column must be in the
// allow-list; anything else falls back to the given default so user input
// never reaches the SQL string.
func orderClause(orderBy, orderDir, fallback string, allowed map[string]bool) string {
	column := strings.ToLower(strings.TrimSpace(orderBy))
	if !allowed[column] {
		column = fallback
	}
	dir := "ASC"
	if strings.EqualFold(orderDir, "desc") {
		dir = "DESC"
	}
	return column + " " + dir
}
