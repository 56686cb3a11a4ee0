package main

import (
	_ "embed"
	"net/http"
)

//go:embed endpoints.json
var endpointsJSON []byte

// getAPI serves the endpoint catalogue verbatim from the embedded file.
func (app *application) getAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(endpointsJSON); err != nil {
		app.logger.Error(err.Error())
	}
}
