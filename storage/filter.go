package storage

import "strings"

// LikeEscape is the ESCAPE character used by every substring query.
const LikeEscape = "!"

// ListFilter selects a window of records whose searchable field contains
// Search, case-insensitively. An empty Search matches everything and a zero
// Limit means no limit.
type ListFilter struct {
	Search string
	Limit  int
	Offset int
}

// LikePattern turns a free-text search into a lower-cased LIKE pattern that
// matches it as a literal substring.
func LikePattern(search string) string {
	r := strings.NewReplacer(
		LikeEscape, LikeEscape+LikeEscape,
		"%", LikeEscape+"%",
		"_", LikeEscape+"_",
	)
	return "%" + r.Replace(strings.ToLower(search)) + "%"
}
