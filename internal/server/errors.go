package server

import (
	"errors"
	"net/http"

	"github.com/ribeirogab/portfolio/internal/dictionary"
)

// HTTPStatus maps an error to the status code returned to clients.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if errors.Is(err, dictionary.ErrUnsupportedLocale) {
		return http.StatusNotFound
	}

	return http.StatusInternalServerError
}
