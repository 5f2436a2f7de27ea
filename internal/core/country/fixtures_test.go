// Copyright (c) 2026 Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package country_test

// japanPayload mirrors a trimmed REST Countries answer for "Japan".
const japanPayload = `[{
	"name": {"common": "Japan", "official": "Japan"},
	"capital": ["Tokyo"],
	"population": 125000000,
	"region": "Asia",
	"continents": ["Asia"],
	"flags": {"png": "https://flagcdn.com/w320/jp.png", "svg": "https://flagcdn.com/jp.svg"},
	"maps": {"googleMaps": "https://goo.gl/maps/NGTLSCSrA8bMrvnX9"},
	"currencies": {"JPY": {"name": "Japanese yen", "symbol": "¥"}},
	"languages": {"jpn": "Japanese"},
	"latlng": [36.0, 138.0]
}]`

// switzerlandPayload has several currencies and languages, in document order.
const switzerlandPayload = `[{
	"name": {"common": "Switzerland"},
	"capital": ["Bern"],
	"population": 8654622,
	"region": "Europe",
	"continents": ["Europe"],
	"currencies": {"CHF": {"name": "Swiss franc", "symbol": "Fr."}, "EUR": {"name": "Euro", "symbol": "€"}},
	"languages": {"fra": "French", "gsw": "Swiss German", "ita": "Italian", "roh": "Romansh"}
}, {
	"name": {"common": "Swaziland"}
}]`

// bareRecordPayload lacks every optional field but the name.
const bareRecordPayload = `[{"name": {"common": "Atlantis"}, "population": 0}]`
