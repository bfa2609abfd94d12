package helpers

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern turns free text into an ILIKE pattern matching it anywhere.
// Wildcards typed by the user are matched literally.
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// PrefixPattern turns free text into a LIKE pattern matching values that start with it
func PrefixPattern(s string) string {
	return likeEscaper.Replace(s) + "%"
}
