// Package parser converts raw multilingual catalog records into canonical
// item attributes: language defaults, tag extraction, attribute-line parsing,
// recursive cleanup, and domain classification.
package parser

import (
	"fmt"

	"github.com/tajrlabs/catalog/internal/domain"
	"github.com/tajrlabs/catalog/internal/models"
	"github.com/tajrlabs/catalog/internal/translate"
)

// Parser normalizes raw records. Arabic values missing for translatable
// fields are filled through the configured translator.
type Parser struct {
	translator translate.Translator
}

// New creates a parser. A nil translator behaves as a no-op passthrough.
func New(translator translate.Translator) *Parser {
	if translator == nil {
		translator = translate.Noop{}
	}
	return &Parser{translator: translator}
}

// Parse normalizes one raw record into canonical attributes. It fails only
// when the record lacks its identity fields (id, vendor category, vendor);
// every other malformed value degrades to a default. Callers drop failed
// records and continue the batch.
func (p *Parser) Parse(raw models.RawRecord) (*models.Attributes, error) {
	id := forceString(raw["_id"])
	if id == "" {
		return nil, fmt.Errorf("record missing _id")
	}
	kind, ok := raw["kind"]
	if !ok || kind == nil {
		return nil, fmt.Errorf("record %s: missing kind", id)
	}
	vendor := mapOf(raw["vendor"])
	if vendor == nil {
		return nil, fmt.Errorf("record %s: missing vendor", id)
	}

	attrs := &models.Attributes{
		ID:             id,
		Category:       forceString(kind),
		VendorName:     langTextOf(vendor["name"]),
		VendorID:       forceString(vendor["id"]),
		IsNewArrival:   boolOf(raw["newArrival"]),
		AvailableAreas: emptyIfNil(stringSlice(raw["available_areas"])),
		InStockAreas:   emptyIfNil(stringSlice(raw["in_stock_areas"])),
		Variants:       variantsOf(raw["variants"]),
		KeyAttributes:  map[string]models.LangList{},
	}

	// Price coercion never fails; unparseable values become 0.0.
	if price, ok := floatOf(raw["price"]); ok {
		attrs.Price = price
	}

	attrs.Name = langTextOf(raw["name"])
	attrs.Title = attrs.Name

	attrs.TagsGSW = p.parseGSWTags(raw["tags_gsw"])
	attrs.TagsDSW = parseDSWTags(raw["tags_dsw"])
	attrs.Categories = parseCategories(raw["categories"])
	attrs.VendorSynonyms = langListOf(raw["synonyms"])

	data := mapOf(raw["data"])

	// Title is overridden per language by the processed name, only where the
	// processed value is non-empty.
	processed := langTextOf(data["pName"])
	if processed.EN != "" {
		attrs.Title.EN = processed.EN
	}
	if processed.AR != "" {
		attrs.Title.AR = processed.AR
	}

	attrs.ShoppingCategory = p.langTextTranslated(data["shoppingCategory"])
	attrs.ShoppingSubcategory = p.langTextTranslated(data["shoppingSubcategory"])
	attrs.ItemCategory = p.langTextTranslated(data["itemCategory"])
	attrs.ItemSubcategory = p.langTextTranslated(data["itemSubcategory"])

	attrs.Keywords = stripNumberingList(langListOf(data["keywords"]))
	attrs.ProcessedKeywords = stripNumberingList(langListOf(data["pKeywords"]))
	attrs.Synonyms = stripNumberingList(langListOf(data["synonyms"]))

	// Items without processed keywords fall back to the plain keywords.
	if len(attrs.ProcessedKeywords.EN) == 0 && len(attrs.Keywords.EN) > 0 {
		attrs.ProcessedKeywords = attrs.Keywords
	}

	for name, value := range mapOf(data["keyAttrs"]) {
		attrs.KeyAttributes[name] = langListOf(value)
	}

	cleanup(attrs)
	attrs.NERDomain = domain.Classify(attrs)
	p.parseAIAttributes(attrs, data)

	return attrs, nil
}

// parseGSWTags extracts the English-only GSW tag channel and derives the
// Arabic channel by translating each surviving English tag.
func (p *Parser) parseGSWTags(v any) models.LangList {
	tags := models.LangList{EN: []string{}, AR: []string{}}
	text := forceString(v)
	if text == "" {
		return tags
	}
	tags.EN = splitTagText(text, gswSeparators)
	tags.AR = make([]string, 0, len(tags.EN))
	for _, tag := range tags.EN {
		tags.AR = append(tags.AR, p.translator.Translate(tag))
	}
	return tags
}

// parseDSWTags extracts the per-language DSW tag channel; each language is
// sourced independently.
func parseDSWTags(v any) models.LangList {
	tags := models.LangList{EN: []string{}, AR: []string{}}
	m := mapOf(v)
	if raw, ok := m[models.LangEN]; ok && raw != nil {
		tags.EN = append(tags.EN, splitTagText(forceString(raw), dswSeparators)...)
	}
	if raw, ok := m[models.LangAR]; ok && raw != nil {
		tags.AR = append(tags.AR, splitTagText(forceString(raw), dswSeparators)...)
	}
	return tags
}

// parseCategories flattens the per-entry category names; a language absent on
// an entry is skipped for that entry only.
func parseCategories(v any) models.LangList {
	categories := models.LangList{EN: []string{}, AR: []string{}}
	for _, raw := range sliceOf(v) {
		entry := mapOf(raw)
		if name, ok := entry[models.LangEN]; ok && name != nil {
			categories.EN = append(categories.EN, forceString(name))
		}
		if name, ok := entry[models.LangAR]; ok && name != nil {
			categories.AR = append(categories.AR, forceString(name))
		}
	}
	return categories
}

// langTextTranslated reads a per-language scalar and fills a missing Arabic
// value by translating the English one.
func (p *Parser) langTextTranslated(v any) models.LangText {
	text := langTextOf(v)
	if text.AR == "" {
		text.AR = p.translator.Translate(text.EN)
	}
	return text
}

// stripNumberingList removes numbering marks from every keyword, dropping
// entries that were empty to begin with.
func stripNumberingList(list models.LangList) models.LangList {
	strip := func(values []string) []string {
		out := make([]string, 0, len(values))
		for _, v := range values {
			if v == "" {
				continue
			}
			out = append(out, stripNumbering(v))
		}
		return out
	}
	return models.LangList{EN: strip(list.EN), AR: strip(list.AR)}
}

func variantsOf(v any) []models.RawRecord {
	raw := sliceOf(v)
	variants := make([]models.RawRecord, 0, len(raw))
	for _, e := range raw {
		if m := mapOf(e); m != nil {
			variants = append(variants, models.RawRecord(m))
		} else {
			variants = append(variants, models.RawRecord{})
		}
	}
	return variants
}

// cleanup applies the recursive structural cleanup to every list-valued
// channel and variant payload.
func cleanup(attrs *models.Attributes) {
	cleanLangList := func(l *models.LangList) {
		l.EN = CleanStrings(l.EN)
		l.AR = CleanStrings(l.AR)
	}
	cleanLangList(&attrs.TagsGSW)
	cleanLangList(&attrs.TagsDSW)
	cleanLangList(&attrs.Categories)
	cleanLangList(&attrs.VendorSynonyms)
	cleanLangList(&attrs.Keywords)
	cleanLangList(&attrs.ProcessedKeywords)
	cleanLangList(&attrs.Synonyms)
	for name, value := range attrs.KeyAttributes {
		cleanLangList(&value)
		attrs.KeyAttributes[name] = value
	}
	attrs.AvailableAreas = CleanStrings(attrs.AvailableAreas)
	attrs.InStockAreas = CleanStrings(attrs.InStockAreas)
	for _, variant := range attrs.Variants {
		Clean(map[string]any(variant))
	}
}

// parseAIAttributes extracts per-variation attribute maps for each language.
// An entry contributes only when its language payload is a non-null string and
// it carries a variation id. Entries whose payload cannot be read at all mark
// the same-index variant for removal; removals are collected and applied only
// after both language passes so recorded indexes stay valid.
func (p *Parser) parseAIAttributes(attrs *models.Attributes, data map[string]any) {
	attrs.AIAttributes = models.AIAttributes{}
	entries := sliceOf(data["ai_attributes"])
	if len(entries) == 0 {
		return
	}

	var remove []int
	for _, lang := range []string{models.LangEN, models.LangAR} {
		var variations []models.VariationAttrs
		for i, raw := range entries {
			entry := mapOf(raw)
			if entry == nil {
				remove = append(remove, i)
				continue
			}
			payload, present := entry[lang]
			if !present {
				remove = append(remove, i)
				continue
			}
			if payload == nil {
				continue
			}
			text, isString := payload.(string)
			if !isString {
				continue
			}
			variationID := forceString(entry["variation_id"])
			if variationID == "" {
				continue
			}
			variations = append(variations, models.VariationAttrs{
				variationID: ExtractAttrs(text),
			})
		}
		if lang == models.LangEN {
			attrs.AIAttributes.EN = variations
		} else {
			attrs.AIAttributes.AR = variations
		}
	}

	attrs.Variants = removeIndexes(attrs.Variants, remove)
}

// removeIndexes drops the variants at the given positions, ignoring
// duplicates and out-of-range indexes.
func removeIndexes(variants []models.RawRecord, indexes []int) []models.RawRecord {
	if len(indexes) == 0 {
		return variants
	}
	drop := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		drop[i] = true
	}
	kept := make([]models.RawRecord, 0, len(variants))
	for i, v := range variants {
		if drop[i] {
			continue
		}
		kept = append(kept, v)
	}
	return kept
}
