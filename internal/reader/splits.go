package reader

import (
	"sort"

	"github.com/tajrlabs/catalog/internal/models"
)

// SortAndSplit stable-sorts attributes by (category, vendor name, item name)
// and computes the vendor splits: one contiguous range per (category, vendor)
// run. The splits partition the sorted sequence exactly, so re-running on an
// already sorted sequence reproduces them.
func SortAndSplit(attrs []*models.Attributes) ([]*models.Attributes, []models.VendorSplit) {
	sort.SliceStable(attrs, func(i, j int) bool {
		a, b := attrs[i], attrs[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.VendorName.EN != b.VendorName.EN {
			return a.VendorName.EN < b.VendorName.EN
		}
		return a.Name.EN < b.Name.EN
	})

	var splits []models.VendorSplit
	start := 0
	for i := 1; i <= len(attrs); i++ {
		if i < len(attrs) && sameVendorRun(attrs[i], attrs[start]) {
			continue
		}
		splits = append(splits, models.VendorSplit{
			Category:   attrs[start].Category,
			VendorName: attrs[start].VendorName,
			VendorID:   attrs[start].VendorID,
			Start:      start,
			End:        i,
		})
		start = i
	}
	return attrs, splits
}

func sameVendorRun(a, b *models.Attributes) bool {
	return a.Category == b.Category &&
		a.VendorName == b.VendorName &&
		a.VendorID == b.VendorID
}
