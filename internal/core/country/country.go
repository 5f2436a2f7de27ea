// Copyright (c) 2026 Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package country resolves a country name into a flat, fully-defaulted
[CountryInfo] backed by the REST Countries API.

Architecture:

  - Normalizer: pure mapping from the nested upstream record to [CountryInfo].
  - Client: one bounded GET per cache miss, classifying upstream failures.
  - Cache: explicitly owned key/value store (memory or Redis), never expiring.
  - Service: cache check, fetch, normalize, store.
  - Handler: chi routes for the JSON API and the field labels.
*/
package country

// Placeholder is returned for every text field the upstream record lacks.
const Placeholder = "N/A"

// MapPlaceholder is the anchor used when no map link is available.
const MapPlaceholder = "#"

// DefaultThemeColor is used for any continent missing from the theme table.
const DefaultThemeColor = "gray"

// themeColors maps a continent name (exact match) to a UI theme color.
var themeColors = map[string]string{
	"Africa":   "yellow",
	"Europe":   "blue",
	"Asia":     "red",
	"Americas": "green",
	"Oceania":  "turquoise",
}

// ThemeColor returns the theme color for continent.
func ThemeColor(continent string) string {
	if color, ok := themeColors[continent]; ok {
		return color
	}
	return DefaultThemeColor
}

// Coordinates is a (latitude, longitude) pair, encoded as a JSON array.
type Coordinates [2]float64

// CountryInfo is the flat record served by the API.
type CountryInfo struct {
	Name                string      `json:"name"`
	Capital             string      `json:"capital"`
	Population          int64       `json:"population"`
	PopulationFormatted string      `json:"populationFormatted"`
	Region              string      `json:"region"`
	FlagImageURL        string      `json:"flagImageUrl"`
	MapLink             string      `json:"mapLink"`
	CurrencyDisplay     string      `json:"currencyDisplay"`
	CurrencyCode        string      `json:"currencyCode"`
	CurrencySymbol      string      `json:"currencySymbol"`
	Languages           string      `json:"languages"`
	PrimaryLanguage     string      `json:"primaryLanguage"`
	Continent           string      `json:"continent"`
	Coordinates         Coordinates `json:"coordinates"`
	ThemeColor          string      `json:"themeColor"`
}

// Result is a resolved lookup together with where it came from.
type Result struct {
	Info   *CountryInfo
	Cached bool
}
