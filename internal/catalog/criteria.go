// internal/catalog/criteria.go
package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/abccorp/corpsite-web/internal/models"
)

type SortField string

const (
	SortByName  SortField = "name"
	SortByPrice SortField = "price"
)

type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// Criteria is client-only filter/sort state. It is never persisted and
// never sent to the API; filtering runs over the already-fetched list.
// Absent price bounds impose no constraint; present bounds are inclusive.
type Criteria struct {
	SearchText    string
	MinPrice      *float64
	MaxPrice      *float64
	SortField     SortField
	SortDirection SortDirection
}

// DefaultCriteria shows the whole catalog ordered by name.
func DefaultCriteria() Criteria {
	return Criteria{SortField: SortByName, SortDirection: Ascending}
}

// Matches reports whether a single product passes the filter clauses:
// case-insensitive substring on the name and both inclusive price bounds.
func (c Criteria) Matches(p models.Product) bool {
	if !strings.Contains(strings.ToLower(p.Name), strings.ToLower(c.SearchText)) {
		return false
	}
	if c.MinPrice != nil && p.Price < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && p.Price > *c.MaxPrice {
		return false
	}
	return true
}

// DeriveVisible is the pure projection from the full fetched list to the
// ordered visible list. It never mutates its input, and calling it twice
// with the same inputs yields the same sequence: the sort is stable, so
// equal keys keep their prior relative order.
func DeriveVisible(products []models.Product, c Criteria) []models.Product {
	visible := make([]models.Product, 0, len(products))
	for _, p := range products {
		if c.Matches(p) {
			visible = append(visible, p)
		}
	}

	cmp := c.comparator()
	sort.SliceStable(visible, func(i, j int) bool {
		r := cmp(visible[i], visible[j])
		if c.SortDirection == Descending {
			return r > 0
		}
		return r < 0
	})
	return visible
}

func (c Criteria) comparator() func(a, b models.Product) int {
	if c.SortField == SortByPrice {
		return func(a, b models.Product) int {
			switch {
			case a.Price < b.Price:
				return -1
			case a.Price > b.Price:
				return 1
			default:
				return 0
			}
		}
	}

	// Name comparison is locale-aware, the way a browser's localeCompare
	// behaves. The collator carries internal buffers, so build one per
	// derivation rather than sharing it across goroutines.
	col := collate.New(language.Und, collate.IgnoreCase)
	return func(a, b models.Product) int {
		return col.CompareString(a.Name, b.Name)
	}
}
