// Package validation provides validators for user visible strings.
package validation

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"
)

// DisplayName ensures that name is not empty, has no leading or trailing
// white spaces ([unicode.IsSpace]) and only contains printable characters
// ([unicode.IsPrint]).
func DisplayName(name string) error {
	if name == "" {
		return errors.New("can not be empty")
	}

	first, _ := utf8.DecodeRuneInString(name)
	last, _ := utf8.DecodeLastRuneInString(name)
	if unicode.IsSpace(first) || unicode.IsSpace(last) {
		return errors.New("contains leading or trailing white spaces")
	}

	for _, r := range name {
		if !unicode.IsPrint(r) {
			return fmt.Errorf("contains non-printable character: %+q", r)
		}
	}

	return nil
}
