package query

import "strings"

// DefaultLenient is the extra character class for matching generic
// profile names against each other; use an empty string to match
// against concrete dataset or resource names.
const DefaultLenient = "%&*"

// GenericToRegexp changes a RACF generic profile pattern into a regular
// expression, anchored at the end. The empty pattern and '**' match
// everything. Longer wildcards are listed first so '*.**' and '.**' win
// over the bare '*' at the same position; replacements are never
// rescanned, so the wildcard characters inside them stay literal.
func GenericToRegexp(selection, lenient string) string {
	if selection == "" || selection == "**" {
		return ".*$"
	}
	r := strings.NewReplacer(
		"*.**", `.*`,
		".**", `\..*`,
		"*", `[\w@#$`+lenient+`]*`,
		"%", `[\w@#$]`,
		".", `\.`,
	)
	return r.Replace(selection) + "$"
}
