package reader

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/tajrlabs/catalog/internal/cache"
	"github.com/tajrlabs/catalog/internal/models"
	"github.com/tajrlabs/catalog/pkg/utils"
	"go.uber.org/zap"
)

const skippedNameMaxLen = 120

type skippedItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type skippedGroup struct {
	Category string        `json:"category"`
	Vendor   string        `json:"vendor"`
	Count    int           `json:"count"`
	Items    []skippedItem `json:"items"`
}

type categoryTriplet struct {
	VendorCategory      string `json:"vendor_category"`
	ShoppingCategory    string `json:"shopping_category"`
	ShoppingSubcategory string `json:"shopping_subcategory"`
}

type uncategorizedLog struct {
	CategoryTriplets []categoryTriplet `json:"category_triplets"`
	Groups           []skippedGroup    `json:"groups"`
}

// writeUncategorizedLog records the excluded uncategorized records grouped by
// (vendor category, vendor name), with the distinct category triplets that
// failed to classify. Best-effort: failures are logged, never propagated.
func (r *Reader) writeUncategorizedLog(ctx context.Context, items []*models.Attributes) {
	log := uncategorizedLog{
		CategoryTriplets: distinctTriplets(items),
	}

	sorted := make([]*models.Attributes, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.VendorName.EN < b.VendorName.EN
	})

	start := 0
	for i := 1; i <= len(sorted); i++ {
		if i < len(sorted) &&
			sorted[i].Category == sorted[start].Category &&
			sorted[i].VendorName.EN == sorted[start].VendorName.EN {
			continue
		}
		group := skippedGroup{
			Category: sorted[start].Category,
			Vendor:   sorted[start].VendorName.EN,
			Count:    i - start,
		}
		for _, attrs := range sorted[start:i] {
			group.Items = append(group.Items, skippedItem{
				ID:   attrs.ID,
				Name: utils.Truncate(attrs.Name.EN, skippedNameMaxLen),
			})
		}
		log.Groups = append(log.Groups, group)
		start = i
	}

	blob, err := json.MarshalIndent(log, "", "  ")
	if err == nil {
		err = r.store.Put(ctx, cache.KeyUncategorized, blob)
	}
	if err != nil && r.logger != nil {
		r.logger.Warn("uncategorized log write failed", zap.Error(err))
	}
}

func distinctTriplets(items []*models.Attributes) []categoryTriplet {
	seen := make(map[categoryTriplet]bool)
	var triplets []categoryTriplet
	for _, attrs := range items {
		t := categoryTriplet{
			VendorCategory:      attrs.Category,
			ShoppingCategory:    attrs.ShoppingCategory.EN,
			ShoppingSubcategory: attrs.ShoppingSubcategory.EN,
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		triplets = append(triplets, t)
	}
	sort.Slice(triplets, func(i, j int) bool {
		a, b := triplets[i], triplets[j]
		if a.VendorCategory != b.VendorCategory {
			return a.VendorCategory < b.VendorCategory
		}
		if a.ShoppingCategory != b.ShoppingCategory {
			return a.ShoppingCategory < b.ShoppingCategory
		}
		return a.ShoppingSubcategory < b.ShoppingSubcategory
	})
	return triplets
}
