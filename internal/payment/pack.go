// Package payment sells diamond packs through a checkout widget and
// verifies payment-provider webhooks.
package payment

import (
	"fmt"
	"strings"
)

// Pack is a purchasable bundle of diamonds.
type Pack struct {
	ID         string
	Name       string
	Diamonds   int
	Bonus      int
	PricePaise int64
	Popular    bool
}

// Total is the number of diamonds credited, bonus included.
func (p Pack) Total() int { return p.Diamonds + p.Bonus }

// Price renders the price in rupees, e.g. "₹69".
func (p Pack) Price() string {
	if p.PricePaise%100 == 0 {
		return fmt.Sprintf("₹%d", p.PricePaise/100)
	}
	return fmt.Sprintf("₹%d.%02d", p.PricePaise/100, p.PricePaise%100)
}

// Description is the line shown on the checkout form.
func (p Pack) Description() string {
	return fmt.Sprintf("%s - %d Diamonds", p.Name, p.Total())
}

// Packs is the diamond store catalogue in display order.
var Packs = []Pack{
	{ID: "starter", Name: "Starter Pack", Diamonds: 50, PricePaise: 2900},
	{ID: "student", Name: "Student Pack", Diamonds: 100, Bonus: 20, PricePaise: 6900, Popular: true},
	{ID: "pro", Name: "Pro Pack", Diamonds: 200, Bonus: 100, PricePaise: 14900},
	{ID: "career", Name: "Career Pack", Diamonds: 500, Bonus: 300, PricePaise: 34900},
}

// Lookup finds a pack by ID, case-insensitively.
func Lookup(id string) (Pack, bool) {
	for _, p := range Packs {
		if strings.EqualFold(p.ID, id) {
			return p, true
		}
	}
	return Pack{}, false
}

// LookupByPrice finds the pack sold at amount paise.
func LookupByPrice(amount int64) (Pack, bool) {
	for _, p := range Packs {
		if p.PricePaise == amount {
			return p, true
		}
	}
	return Pack{}, false
}
