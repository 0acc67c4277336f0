package usecase

import (
	"sort"

	"charterquote-service/internal/domain/entity"
)

// RankQuotes sorts quotes ascending by total price, in place. Unpriceable
// quotes (nil total) sort after every priced one. The sort is stable so
// equal-price quotes keep their input order.
func RankQuotes(quotes []entity.Quote) []entity.Quote {
	sort.SliceStable(quotes, func(i, j int) bool {
		a, b := quotes[i].Pricing.Total, quotes[j].Pricing.Total
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a < *b
	})
	return quotes
}
