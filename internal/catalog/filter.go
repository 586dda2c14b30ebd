package catalog

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Filter holds the two independent, optional product predicates.
// Checked restricts to a set of category ids. Radio is an inclusive
// [min, max] price range where a null max means "min or above".
type Filter struct {
	Checked []uint                `json:"checked"`
	Radio   []decimal.NullDecimal `json:"radio"`
}

// Validate rejects ranges with more than two bounds
func (f Filter) Validate() error {
	if len(f.Radio) > 2 {
		return ErrInvalidRange
	}
	return nil
}

// apply adds each present predicate; absent predicates leave q unrestricted
func (f Filter) apply(q *gorm.DB) *gorm.DB {
	if len(f.Checked) > 0 {
		q = q.Where("category_id IN ?", f.Checked)
	}
	if len(f.Radio) > 0 && f.Radio[0].Valid {
		q = q.Where("price >= ?", f.Radio[0].Decimal)
	}
	if len(f.Radio) > 1 && f.Radio[1].Valid {
		q = q.Where("price <= ?", f.Radio[1].Decimal)
	}
	return q
}

// ParsePage converts a page path parameter; anything non-positive or non-numeric is page 1
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern builds a lower-cased LIKE pattern matching keyword anywhere
func containsPattern(keyword string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(keyword)) + "%"
}
