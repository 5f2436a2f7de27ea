// Copyright (c) 2026 Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package country

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/taibuivan/atlas/pkg/slice"
)

// Normalizer flattens upstream records into [CountryInfo].
//
// It holds no mutable state: the same input always yields the same output,
// and a single instance is safe for concurrent use.
type Normalizer struct {
	printer *message.Printer
}

// NewNormalizer returns a Normalizer that formats populations for locale.
func NewNormalizer(locale language.Tag) *Normalizer {
	return &Normalizer{printer: message.NewPrinter(locale)}
}

// NormalizePayload decodes a raw upstream body and normalizes its first record.
//
// It returns (nil, nil) when the body is valid JSON but not a non-empty list
// whose first element is an object, and an error only when the body cannot be
// decoded at all. Members of the record with an unexpected shape fall back to
// their placeholders.
func (normalizer *Normalizer) NormalizePayload(body []byte) (*CountryInfo, error) {
	trimmed := bytes.TrimSpace(body)
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("country: upstream body is not valid JSON")
	}
	if trimmed[0] != '[' {
		return nil, nil
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		return nil, fmt.Errorf("country: decode upstream records: %w", err)
	}
	if len(elements) == 0 {
		return nil, nil
	}

	first := bytes.TrimSpace(elements[0])
	if len(first) == 0 || first[0] != '{' {
		return nil, nil
	}

	var record UpstreamCountry
	if err := json.Unmarshal(first, &record); err != nil {
		return nil, fmt.Errorf("country: decode upstream record: %w", err)
	}
	return normalizer.Normalize([]UpstreamCountry{record}), nil
}

// Normalize maps the first record of records. Only the first match of a fuzzy
// name search is used. It returns nil for an empty list.
func (normalizer *Normalizer) Normalize(records []UpstreamCountry) *CountryInfo {
	if len(records) == 0 {
		return nil
	}
	record := records[0]

	continent := textOr(slice.FirstOr(record.Continents, ""), Placeholder)
	languages := slice.Filter(record.Languages.Values(), notBlank)

	info := &CountryInfo{
		Name:                textOr(record.Name.Common, Placeholder),
		Capital:             slice.FirstOr(slice.Filter(record.Capital, notBlank), Placeholder),
		Population:          record.Population,
		PopulationFormatted: normalizer.printer.Sprintf("%d", record.Population),
		Region:              textOr(record.Region, Placeholder),
		FlagImageURL:        record.Flags.SVG,
		MapLink:             textOr(record.Maps.GoogleMaps, MapPlaceholder),
		CurrencyDisplay:     Placeholder,
		CurrencyCode:        Placeholder,
		Languages:           Placeholder,
		PrimaryLanguage:     Placeholder,
		Continent:           continent,
		ThemeColor:          ThemeColor(continent),
	}

	if currency, ok := record.Currencies.First(); ok {
		info.CurrencyCode = currency.Key
		info.CurrencySymbol = currency.Value.Symbol
		info.CurrencyDisplay = fmt.Sprintf("%s (%s)", textOr(currency.Value.Name, Placeholder), currency.Key)
	}

	if len(languages) > 0 {
		info.Languages = strings.Join(languages, ", ")
		info.PrimaryLanguage = languages[0]
	}

	if len(record.LatLng) >= 2 {
		info.Coordinates = Coordinates{record.LatLng[0], record.LatLng[1]}
	}

	return info
}

func notBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

func textOr(value, fallback string) string {
	if notBlank(value) {
		return value
	}
	return fallback
}
