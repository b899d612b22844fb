// Package pricing derives purchasable unit prices from a composed pizza.
// Prices are recomputed on every read and never stored.
package pricing

import (
	"github.com/franciscosanchezn/gin-pizza-console/internal/models"
	"github.com/shopspring/decimal"
)

// Unit is a (pizza, size) pairing with its derived price
type Unit struct {
	Size  models.Size
	Price decimal.Decimal
}

// UnitPrice is size.base_price + sauce.price + crust.price + the sum of topping prices.
// Topping categories carry no price.
func UnitPrice(size models.Size, sauce models.Sauce, crust models.Crust, toppings []models.Topping) decimal.Decimal {
	total := decimal.NewFromFloat(size.BasePrice).
		Add(decimal.NewFromFloat(sauce.Price)).
		Add(decimal.NewFromFloat(crust.Price))
	return total.Add(ToppingsTotal(toppings))
}

// ToppingsTotal sums the prices of toppings
func ToppingsTotal(toppings []models.Topping) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range toppings {
		sum = sum.Add(decimal.NewFromFloat(t.Price))
	}
	return sum
}

// Units returns one priced unit per size the pizza is offered in, in the pizza's size order
func Units(p models.Pizza) []Unit {
	units := make([]Unit, 0, len(p.Sizes))
	for _, s := range p.Sizes {
		units = append(units, Unit{Size: s, Price: UnitPrice(s, p.Sauce, p.Crust, p.Toppings)})
	}
	return units
}

// Format renders a price with two decimals, e.g. "13.25"
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatFloat renders a stored catalog price with two decimals
func FormatFloat(f float64) string {
	return Format(decimal.NewFromFloat(f))
}
