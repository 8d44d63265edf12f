package models

import (
	"sort"
	"unicode"
)

// Item represents one catalog entry ready for projection into grouped,
// weighted documents. Identity, pricing, and availability metadata live as
// plain struct fields and never enter documents; the ordered field list covers
// the indexable projection surface only.
type Item struct {
	ID             string       `json:"id"`
	Price          float64      `json:"price"`
	Category       string       `json:"category"`
	VendorName     LangText     `json:"vendor_name"`
	VendorID       string       `json:"vendor_id"`
	IsNewArrival   bool         `json:"is_new_arrival"`
	NERDomain      string       `json:"ner_domain"`
	AvailableAreas []string     `json:"available_areas"`
	InStockAreas   []string     `json:"in_stock_areas"`
	Variants       []RawRecord  `json:"variants"`
	AIAttributes   AIAttributes `json:"ai_attributes"`
	PositionIndex  int          `json:"position_index"`

	fields []ItemField
}

// NewItem builds an Item from canonical attributes. Key attributes expand into
// one field each under the attributes group, in sorted name order so field
// declaration order is stable across reads.
func NewItem(attrs *Attributes) *Item {
	it := &Item{
		ID:             attrs.ID,
		Price:          attrs.Price,
		Category:       attrs.Category,
		VendorName:     attrs.VendorName,
		VendorID:       attrs.VendorID,
		IsNewArrival:   attrs.IsNewArrival,
		NERDomain:      attrs.NERDomain,
		AvailableAreas: attrs.AvailableAreas,
		InStockAreas:   attrs.InStockAreas,
		Variants:       attrs.Variants,
		AIAttributes:   attrs.AIAttributes,
	}

	it.fields = []ItemField{
		{Name: "Title", Value: LangTextValue(attrs.Title), Index: true, Weight: 1, Group: GroupTitle},
		{Name: "Synonyms", Value: LangListValue(attrs.Synonyms), Index: true, Weight: 1, Group: GroupTitle},
		{Name: "Processed Keywords", Value: LangListValue(attrs.ProcessedKeywords), Index: true, Weight: 1, Group: GroupTitle},
	}

	names := make([]string, 0, len(attrs.KeyAttributes))
	for name := range attrs.KeyAttributes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		it.fields = append(it.fields, ItemField{
			Name:   displayName(name),
			Value:  LangListValue(attrs.KeyAttributes[name]),
			Index:  true,
			Weight: 1,
			Group:  GroupAttributes,
		})
	}

	it.fields = append(it.fields,
		ItemField{Name: "Category", Value: Text(attrs.Category), Index: true, Weight: 1, Group: GroupCategory},
		ItemField{Name: "Categories", Value: LangListValue(attrs.Categories), Index: true, Weight: 1, Group: GroupCategory},
		ItemField{Name: "Shopping Category", Value: LangTextValue(attrs.ShoppingCategory), Index: true, Weight: 1, Group: GroupCategory},
		ItemField{Name: "Shopping Subcategory", Value: LangTextValue(attrs.ShoppingSubcategory), Index: true, Weight: 1, Group: GroupCategory},
		ItemField{Name: "Item Category", Value: LangTextValue(attrs.ItemCategory), Index: true, Weight: 1, Group: GroupCategory},
		ItemField{Name: "Item Subcategory", Value: LangTextValue(attrs.ItemSubcategory), Index: true, Weight: 1, Group: GroupCategory},
		ItemField{Name: "GSW Tags", Value: LangListValue(attrs.TagsGSW), Index: true, Weight: 1, Group: GroupTags},
		ItemField{Name: "DSW Tags", Value: LangListValue(attrs.TagsDSW), Index: true, Weight: 1, Group: GroupTags},
	)

	return it
}

// Fields returns the item's fields in declaration order.
func (it *Item) Fields() []ItemField { return it.fields }

// Groups returns the sorted distinct group ids present on the item's fields.
func (it *Item) Groups() []FieldGroup {
	seen := make(map[FieldGroup]bool)
	for _, f := range it.fields {
		seen[f.Group] = true
	}
	groups := make([]FieldGroup, 0, len(seen))
	for g := range seen {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i] < groups[j] })
	return groups
}

// GroupedFields returns, per group, the indexable fields in declaration order.
// Non-indexable fields are excluded.
func (it *Item) GroupedFields() map[FieldGroup][]ItemField {
	grouped := make(map[FieldGroup][]ItemField)
	for _, f := range it.fields {
		if !f.Index {
			continue
		}
		grouped[f.Group] = append(grouped[f.Group], f)
	}
	return grouped
}

// GroupDocuments returns the weighted token strings for a group of fields in
// the given language. Non-indexable fields are skipped and empty values are
// dropped.
func (it *Item) GroupDocuments(fields []ItemField, lang string) []string {
	var docs []string
	for _, f := range fields {
		if !f.Index {
			continue
		}
		docs = append(docs, f.Value.Tokens(lang, f.Weight)...)
	}
	return docs
}

// ToDocs projects the item into per-group document lists for the given
// language, preserving field declaration order within each group.
func (it *Item) ToDocs(lang string) map[FieldGroup][]string {
	docs := make(map[FieldGroup][]string)
	for group, fields := range it.GroupedFields() {
		docs[group] = it.GroupDocuments(fields, lang)
	}
	return docs
}

// displayName renders an attribute key as a field name: underscores become
// spaces and each word is capitalized ("dial_color" -> "Dial Color").
func displayName(name string) string {
	out := []rune(name)
	prevLetter := false
	for i, r := range out {
		if r == '_' {
			out[i] = ' '
			prevLetter = false
			continue
		}
		if unicode.IsLetter(r) && !prevLetter {
			out[i] = unicode.ToUpper(r)
		}
		prevLetter = unicode.IsLetter(r)
	}
	return string(out)
}
