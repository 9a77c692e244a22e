package dao

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortFieldPattern(t *testing.T) {
	testCases := []struct {
		field    string
		expected bool
	}{
		{"name", true},
		{"created_at", true},
		{"last_name", true},
		{"", false},
		{"Name", false},
		{"created-at", false},
		{"name; DROP TABLE cities", false},
		{"1name", false},
	}

	for _, tc := range testCases {
		t.Run(tc.field, func(t *testing.T) {
			assert.Equal(t, tc.expected, sortFieldPattern.MatchString(tc.field))
		})
	}
}
