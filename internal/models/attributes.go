package models

// VariationAttrs maps a variation id to its extracted attribute values
// (attribute name -> value list).
type VariationAttrs map[string]map[string][]string

// AIAttributes holds per-language attribute maps extracted from variant
// description text.
type AIAttributes struct {
	EN []VariationAttrs `json:"en"`
	AR []VariationAttrs `json:"ar"`
}

// Attributes is the canonical, normalized form of one catalog record as
// produced by the parser. NERDomain is empty until (and unless) the item is
// classified into a business domain.
type Attributes struct {
	ID                  string              `json:"id"`
	Category            string              `json:"category"`
	VendorName          LangText            `json:"vendor_name"`
	VendorID            string              `json:"vendor_id"`
	IsNewArrival        bool                `json:"is_new_arrival"`
	Price               float64             `json:"price"`
	Name                LangText            `json:"name"`
	Title               LangText            `json:"title"`
	TagsGSW             LangList            `json:"tags_gsw"`
	TagsDSW             LangList            `json:"tags_dsw"`
	Categories          LangList            `json:"categories"`
	VendorSynonyms      LangList            `json:"vendor_synonyms"`
	ShoppingCategory    LangText            `json:"shopping_category"`
	ShoppingSubcategory LangText            `json:"shopping_subcategory"`
	ItemCategory        LangText            `json:"item_category"`
	ItemSubcategory     LangText            `json:"item_subcategory"`
	Keywords            LangList            `json:"keywords"`
	ProcessedKeywords   LangList            `json:"processed_keywords"`
	Synonyms            LangList            `json:"synonyms"`
	KeyAttributes       map[string]LangList `json:"key_attributes"`
	AvailableAreas      []string            `json:"available_areas"`
	InStockAreas        []string            `json:"in_stock_areas"`
	Variants            []RawRecord         `json:"variants"`
	AIAttributes        AIAttributes        `json:"ai_attributes"`
	NERDomain           string              `json:"ner_domain"`
}

// Categorized reports whether a business domain was assigned.
func (a *Attributes) Categorized() bool { return a.NERDomain != "" }

// VendorSplit is a contiguous index range of the sorted item sequence that
// belongs to one (category, vendor) pair. End is exclusive; the full split
// list partitions the sequence exactly.
type VendorSplit struct {
	Category   string   `json:"category"`
	VendorName LangText `json:"vendor_name"`
	VendorID   string   `json:"vendor_id"`
	Start      int      `json:"start"`
	End        int      `json:"end"`
}

// Len returns the number of items covered by the split.
func (s VendorSplit) Len() int { return s.End - s.Start }
