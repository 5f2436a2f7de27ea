// Copyright (c) 2026 Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package country

import (
	"maps"

	"golang.org/x/text/language"
)

// supportedLocales lists the label catalogs; the first entry is the fallback.
var supportedLocales = []language.Tag{
	language.English,
	language.Turkish,
}

var localeMatcher = language.NewMatcher(supportedLocales)

// labelCatalog holds the display label of every [CountryInfo] JSON field.
var labelCatalog = map[language.Tag]map[string]string{
	language.English: {
		"name":                "Country Name",
		"capital":             "Capital",
		"population":          "Population",
		"populationFormatted": "Population",
		"region":              "Region",
		"flagImageUrl":        "Flag Image",
		"mapLink":             "Map Link",
		"currencyDisplay":     "Currency",
		"currencyCode":        "Currency Code",
		"currencySymbol":      "Currency Symbol",
		"languages":           "Languages",
		"primaryLanguage":     "Primary Language",
		"continent":           "Continent",
		"coordinates":         "Coordinates",
		"themeColor":          "Theme Color",
	},
	language.Turkish: {
		"name":                "Ülke Adı",
		"capital":             "Başkent",
		"population":          "Nüfus",
		"populationFormatted": "Nüfus",
		"region":              "Bölge",
		"flagImageUrl":        "Bayrak Görseli",
		"mapLink":             "Harita Bağlantısı",
		"currencyDisplay":     "Para Birimi",
		"currencyCode":        "Para Birimi Kodu",
		"currencySymbol":      "Para Birimi Sembolü",
		"languages":           "Diller",
		"primaryLanguage":     "Ana Dil",
		"continent":           "Kıta",
		"coordinates":         "Koordinatlar",
		"themeColor":          "Tema Rengi",
	},
}

// LabelSet is the payload of the labels endpoint.
type LabelSet struct {
	Locale string            `json:"locale"`
	Labels map[string]string `json:"labels"`
}

// MatchLocale picks the best supported locale for the given preferences,
// each being a tag or an Accept-Language value. Empty or unusable preferences
// are skipped; fallback decides when nothing matches.
func MatchLocale(fallback language.Tag, preferences ...string) language.Tag {
	for _, preference := range preferences {
		if preference == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(preference)
		if err != nil || len(tags) == 0 {
			continue
		}
		if _, index, confidence := localeMatcher.Match(tags...); confidence != language.No {
			return supportedLocales[index]
		}
	}

	_, index, _ := localeMatcher.Match(fallback)
	return supportedLocales[index]
}

// Labels returns the label set of the supported locale closest to locale.
func Labels(locale language.Tag) LabelSet {
	matched := MatchLocale(locale)
	return LabelSet{
		Locale: matched.String(),
		Labels: maps.Clone(labelCatalog[matched]),
	}
}
