package handler

import (
	"errors"
	"net/http"

	"github.com/mcoot/restadmin/internal/api/apierr"
	"github.com/mcoot/restadmin/internal/model"
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// writeResolveError reports a failed lookup of idOrName. Unresolvable
// identifiers are reported with notFoundStatus; anything else is a
// directory failure.
func writeResolveError(w http.ResponseWriter, err error, idOrName string, notFoundStatus int) {
	if errors.Is(err, model.ErrProfileNotFound) {
		WriteError(w, apierr.NewProfileNotFoundError(notFoundStatus, idOrName))
		return
	}
	WriteError(w, err)
}
