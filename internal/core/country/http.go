// Copyright (c) 2026 Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package country

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"

	"github.com/taibuivan/atlas/internal/platform/constants"
	"github.com/taibuivan/atlas/internal/platform/respond"
)

// Handler exposes the lookup service over HTTP.
type Handler struct {
	service       *Service
	defaultLocale language.Tag
}

// NewHandler returns a Handler. defaultLocale applies to /labels when the
// client expresses no usable preference.
func NewHandler(service *Service, defaultLocale language.Tag) *Handler {
	return &Handler{service: service, defaultLocale: defaultLocale}
}

// RegisterRoutes mounts the country routes on router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	// CleanPath strips the trailing slash, so an empty name arrives on /country.
	router.Get("/country", handler.getCountry)
	router.Get("/country/", handler.getCountry)
	router.Get("/country/{countryName}", handler.getCountry)
	router.Get("/labels", handler.getLabels)
}

// getCountry handles GET /country/{countryName}.
func (handler *Handler) getCountry(writer http.ResponseWriter, request *http.Request) {
	countryName := chi.URLParam(request, "countryName")

	// chi routes on RawPath when the request has one, and the parameter is
	// still escaped then. Otherwise it is already decoded.
	if request.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(countryName); err == nil {
			countryName = unescaped
		}
	}

	result, err := handler.service.Resolve(request.Context(), countryName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	cacheState := "MISS"
	if result.Cached {
		cacheState = "HIT"
	}
	writer.Header().Set(constants.HeaderXCache, cacheState)

	respond.OK(writer, result.Info)
}

// getLabels handles GET /labels?lang=tr.
func (handler *Handler) getLabels(writer http.ResponseWriter, request *http.Request) {
	locale := MatchLocale(handler.defaultLocale,
		request.URL.Query().Get("lang"),
		request.Header.Get(constants.HeaderAcceptLanguage),
	)
	respond.OK(writer, Labels(locale))
}
