package domain

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Skip returns the number of rows preceding the given 1-based page. It saturates at
// math.MaxInt instead of overflowing, which still lands past the end of any collection.
func Skip(page, limit int) int {
	if page < 1 || limit < 1 {
		return 0
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// PageCount returns ceil(total/limit), or 0 when limit is not positive.
func PageCount(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	l := int64(limit)
	return int((total + l - 1) / l)
}
