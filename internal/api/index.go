// Copyright (c) 2026 Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	_ "embed"
	"net/http"
)

//go:embed static/index.html
var indexPage []byte

// Index serves the single-page search form.
func Index(writer http.ResponseWriter, _ *http.Request) {
	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write(indexPage)
}
