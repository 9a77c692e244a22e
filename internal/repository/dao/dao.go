package dao

import (
	"regexp"
	"strings"

	"gorm.io/gorm"
)

// DefaultListLimit caps list queries unless the caller asks for more.
const DefaultListLimit = 100

var sortFieldPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// applySort translates a sort spec into an ORDER BY clause. A leading "-"
// means descending; a bare field name means ascending. Unknown or malformed
// specs fall back to defaultSpec so a bad query string can never inject SQL.
func applySort(query *gorm.DB, sortSpec, defaultSpec string) *gorm.DB {
	if sortSpec == "" {
		sortSpec = defaultSpec
	}

	field := strings.TrimPrefix(sortSpec, "-")
	if !sortFieldPattern.MatchString(field) {
		field = strings.TrimPrefix(defaultSpec, "-")
		sortSpec = defaultSpec
	}

	if strings.HasPrefix(sortSpec, "-") {
		return query.Order(field + " DESC")
	}

	return query.Order(field + " ASC")
}

func applyLimit(query *gorm.DB, limit int) *gorm.DB {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	return query.Limit(limit)
}
