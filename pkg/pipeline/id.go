package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// MaxIDLength is the maximum number of characters the CI server accepts in
// project and build configuration identifiers.
const MaxIDLength = 225

// idReplacements maps characters to the string they are replaced with by
// ReplaceCharsID. Characters not in the map that are not a latin letter, a
// digit or an underscore are dropped.
var idReplacements = map[rune]string{
	'-': "",
	' ': "_",
	'.': "_",
	'/': "_",
}

// ReplaceCharsID converts label into an identifier that is accepted by the
// CI server.
// Dashes are removed, spaces, dots and slashes become underscores, latin
// letters are uppercased and all other characters that are not digits or
// underscores are removed.
// Applying the function to its own result returns the same value.
func ReplaceCharsID(label string) string {
	var sb strings.Builder

	sb.Grow(len(label))

	for _, r := range label {
		if repl, exists := idReplacements[r]; exists {
			sb.WriteString(repl)
			continue
		}

		switch {
		case r >= 'a' && r <= 'z':
			sb.WriteRune(r - 'a' + 'A')
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

// ValidateID returns an error if id is not a valid identifier for the CI
// server.
// IDs must start with a latin letter, only contain latin letters, digits and
// underscores and be at most MaxIDLength characters long.
func ValidateID(id string) error {
	if id == "" {
		return errors.New("can not be empty")
	}

	if len(id) > MaxIDLength {
		return fmt.Errorf("is %d characters long, at most %d are allowed", len(id), MaxIDLength)
	}

	if !isLatinLetter(rune(id[0])) {
		return fmt.Errorf("must start with a latin letter, starts with %q", id[0])
	}

	for _, r := range id {
		if isLatinLetter(r) || (r >= '0' && r <= '9') || r == '_' {
			continue
		}

		return fmt.Errorf("contains invalid character %+q", r)
	}

	return nil
}

func isLatinLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
