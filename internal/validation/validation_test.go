package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	tcs := []struct {
		name  string
		valid bool
	}{
		{name: "Nightly Tests", valid: true},
		{name: "Compute - Acceptance Tests", valid: true},
		{name: "", valid: false},
		{name: " Nightly", valid: false},
		{name: "Nightly\t", valid: false},
		{name: "Night\x00ly", valid: false},
		{name: "Nightly Tests ä", valid: true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			err := DisplayName(tc.name)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
