// Package domain classifies canonical item attributes into a coarse business
// vertical used for downstream routing and ranking.
package domain

import (
	"strings"

	"github.com/tajrlabs/catalog/internal/models"
)

// Recognized business domains.
const (
	Electronics = "electronics"
	Restaurants = "restaurants"
	Groceries   = "groceries"
	Pharmacies  = "pharmacies"
	Sports      = "sports"
	Fashion     = "fashion"
	HomeGarden  = "home_garden"

	// Unsupported marks vendor categories that are known but deliberately
	// not served; it is only accepted from the vendor-category tier.
	Unsupported = "unsupported"
)

var domains = map[string]bool{
	Electronics: true,
	Restaurants: true,
	Groceries:   true,
	Pharmacies:  true,
	Sports:      true,
	Fashion:     true,
	HomeGarden:  true,
}

// categoryAliases maps raw vendor-supplied category strings to domain names.
var categoryAliases = map[string]string{
	// electronics
	"appliances":    Electronics,
	"entertainment": Electronics,
	"gaming":        Electronics,
	// restaurants
	"food": Restaurants,
	// pharmacies
	"beauty":             Pharmacies,
	"health":             Pharmacies,
	"health & beauty":    Pharmacies,
	"health & nutrition": Pharmacies,
	"kids":               Pharmacies,
	// home & garden
	"arts & crafts":   HomeGarden,
	"home":            HomeGarden,
	"home & garden":   HomeGarden,
	"home decor":      HomeGarden,
	"home essentials": HomeGarden,
	// groceries
	"pet care": Groceries,
	// sports
	"toys & games":   Sports,
	"toys and games": Sports,

	"unsupported": Unsupported,
}

// normalize resolves a raw category through the alias table, falling back to
// the raw string unchanged.
func normalize(category string) string {
	if mapped, ok := categoryAliases[category]; ok {
		return mapped
	}
	return category
}

// Classify maps attributes to a domain in three tiers, first match wins:
// shopping subcategory, shopping category, then vendor category. The first two
// tiers accept only members of the domain set; the vendor-category tier also
// accepts the Unsupported sentinel. Returns "" when no tier matches.
func Classify(attrs *models.Attributes) string {
	if d := normalize(strings.TrimSpace(attrs.ShoppingSubcategory.EN)); domains[d] {
		return d
	}
	if d := normalize(strings.TrimSpace(attrs.ShoppingCategory.EN)); domains[d] {
		return d
	}
	if d := normalize(attrs.Category); domains[d] || d == Unsupported {
		return d
	}
	return ""
}
