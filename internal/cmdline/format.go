package cmdline

import "strings"

// Format renders records back into invocation text that parses to the same
// records. Values containing a space are quoted, as are empty values, since
// "/name:" reads as a flag. A quoted value ending in a backslash cannot be
// represented.
func Format(args []Argument) string {
	parts := make([]string, 0, len(args))
	for i, arg := range args {
		switch {
		case i == 0 && !arg.IsSwitch:
			parts = append(parts, arg.Value)
		case !arg.IsSwitch:
			parts = append(parts, quote(arg.Value))
		case !arg.HasValue:
			parts = append(parts, "/"+arg.Name)
		default:
			parts = append(parts, "/"+arg.Name+":"+quote(arg.Value))
		}
	}

	return strings.Join(parts, " ")
}

func quote(value string) string {
	if value == "" || strings.Contains(value, " ") {
		return `"` + value + `"`
	}

	return value
}
