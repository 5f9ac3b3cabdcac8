package filter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/okian/artistly/internal/domain/model"
)

// Order selects how a filtered result is arranged.
type Order string

const (
	// OrderRelevance keeps dataset order.
	OrderRelevance Order = "relevance"
	OrderRating    Order = "rating"
	OrderReviews   Order = "reviews"
	OrderName      Order = "name"
	OrderNewest    Order = "newest"
)

// ParseOrder maps a request value to an Order. Empty means relevance.
func ParseOrder(s string) (Order, error) {
	switch o := Order(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return OrderRelevance, nil
	case OrderRelevance, OrderRating, OrderReviews, OrderName, OrderNewest:
		return o, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSort, s)
}

// Sort arranges artists in place with a stable sort so that ties keep
// dataset order.
func Sort(artists []model.Artist, o Order) {
	var cmp func(a, b model.Artist) int
	switch o {
	case OrderRating:
		cmp = func(a, b model.Artist) int { return compareDesc(a.Rating, b.Rating) }
	case OrderReviews:
		cmp = func(a, b model.Artist) int { return compareDesc(a.ReviewCount, b.ReviewCount) }
	case OrderName:
		cmp = func(a, b model.Artist) int { return strings.Compare(Normalize(a.Name), Normalize(b.Name)) }
	case OrderNewest:
		cmp = func(a, b model.Artist) int { return b.CreatedAt.Compare(a.CreatedAt) }
	default:
		return
	}
	slices.SortStableFunc(artists, cmp)
}

func compareDesc[T int | float64](a, b T) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	}
	return 0
}
