package main

import (
	"fmt"
	"net/http"
	"runtime/debug"
)

// serverError logs the real cause and answers with a generic message so
// internals never leak to the caller.
func (app *application) serverError(w http.ResponseWriter, err error) {
	trace := fmt.Sprintf("%s\n%s", err.Error(), debug.Stack())
	app.errorLog.Output(2, trace)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	fmt.Fprint(w, `{"error":"Internal server error"}`)
}
