package helpers

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxPage      = 1_000_000
)

// ParsePage coerces raw page/limit query values to positive integers.
// Missing, non-numeric or non-positive values fall back to page 1, limit 10.
// A positive maxLimit caps the limit; the page is capped at MaxPage.
func ParsePage(pageStr, limitStr string, maxLimit int) (page, limit int) {
	page = positiveOr(pageStr, DefaultPage)
	if page > MaxPage {
		page = MaxPage
	}
	limit = positiveOr(limitStr, DefaultLimit)
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// Offset returns the number of rows to skip for page, saturating at
// math.MaxInt32 instead of overflowing.
func Offset(page, limit int) int {
	if page <= 1 || limit <= 0 {
		return 0
	}
	if page-1 > math.MaxInt32/limit {
		return math.MaxInt32
	}
	return (page - 1) * limit
}

// TotalPages is ceil(total / limit).
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func positiveOr(raw string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
