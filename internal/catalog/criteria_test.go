// internal/catalog/criteria_test.go
package catalog

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abccorp/corpsite-web/internal/models"
)

func product(id, name string, price float64) models.Product {
	return models.Product{ID: id, Name: name, Price: price}
}

func names(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestDefaultCriteriaSortsByNameAscending(t *testing.T) {
	list := []models.Product{
		product("1", "Bravo", 5),
		product("2", "alpha", 9),
		product("3", "Charlie", 1),
	}

	visible := DeriveVisible(list, DefaultCriteria())

	assert.Equal(t, []string{"alpha", "Bravo", "Charlie"}, names(visible))
}

func TestPriceDescending(t *testing.T) {
	list := []models.Product{
		product("a", "A", 10),
		product("b", "B", 20),
	}
	c := Criteria{SortField: SortByPrice, SortDirection: Descending}

	visible := DeriveVisible(list, c)

	assert.Equal(t, []string{"B", "A"}, names(visible))
}

func TestStableSortKeepsTieOrder(t *testing.T) {
	list := []models.Product{
		product("first", "Widget", 10),
		product("second", "Widget", 10),
		product("third", "Widget", 10),
	}
	c := Criteria{SortField: SortByPrice, SortDirection: Ascending}

	visible := DeriveVisible(list, c)

	assert.Equal(t, "first", visible[0].ID)
	assert.Equal(t, "second", visible[1].ID)
	assert.Equal(t, "third", visible[2].ID)
}

func TestSearchIsCaseInsensitiveSubstring(t *testing.T) {
	list := []models.Product{
		product("1", "Apple Watch", 100),
		product("2", "apple juice", 3),
		product("3", "Banana", 1),
	}
	c := DefaultCriteria()
	c.SearchText = "APP"

	visible := DeriveVisible(list, c)

	assert.Equal(t, []string{"apple juice", "Apple Watch"}, names(visible))
}

func TestPriceBoundsAreInclusive(t *testing.T) {
	list := []models.Product{
		product("1", "Low", 10),
		product("2", "Mid", 15),
		product("3", "High", 20),
		product("4", "Out", 25),
	}
	min, max := 10.0, 20.0
	c := DefaultCriteria()
	c.MinPrice = &min
	c.MaxPrice = &max

	visible := DeriveVisible(list, c)

	assert.Equal(t, []string{"High", "Low", "Mid"}, names(visible))
}

func TestDeriveVisibleDoesNotMutateInput(t *testing.T) {
	list := []models.Product{
		product("1", "Zeta", 2),
		product("2", "Alpha", 1),
	}

	DeriveVisible(list, DefaultCriteria())

	assert.Equal(t, "Zeta", list[0].Name)
	assert.Equal(t, "Alpha", list[1].Name)
}

func TestDeriveVisibleIsIdempotent(t *testing.T) {
	list := []models.Product{
		product("1", "Gamma", 3),
		product("2", "alpha", 1),
		product("3", "Beta", 2),
	}
	c := DefaultCriteria()
	c.SortDirection = Descending

	first := DeriveVisible(list, c)
	second := DeriveVisible(first, c)

	assert.Equal(t, first, second)
}

func TestEveryVisibleProductMatchesCriteria(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []string{"Pump", "Valve", "pipe", "Fitting", "Gauge"}

	list := make([]models.Product, 50)
	for i := range list {
		list[i] = product(
			string(rune('a'+i%26))+string(rune('0'+i/26)),
			alphabet[rng.Intn(len(alphabet))],
			float64(rng.Intn(100)),
		)
	}

	min, max := 20.0, 80.0
	c := Criteria{
		SearchText:    "p",
		MinPrice:      &min,
		MaxPrice:      &max,
		SortField:     SortByPrice,
		SortDirection: Ascending,
	}

	visible := DeriveVisible(list, c)
	for _, p := range visible {
		assert.True(t, c.Matches(p), "visible product %q must pass the filter", p.Name)
	}
	for i := 1; i < len(visible); i++ {
		assert.LessOrEqual(t, visible[i-1].Price, visible[i].Price)
	}
}
