// Package prettyprint formats values for human readable output.
package prettyprint

import "strings"

// TruncatedStrSlice returns sl as string, joined by ", ".
// If sl has more then maxElems, only the first maxElems elements will be
// returned and additional truncation marker.
func TruncatedStrSlice(sl []string, maxElems int) string {
	if len(sl) <= maxElems {
		return strings.Join(sl, ", ")
	}

	return strings.Join(sl[:maxElems], ", ") + ", [...]"
}
