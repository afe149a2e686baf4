package utils

import (
	"eduvoyage-service/internal/pkg/exceptions"
	"net/http"

	"github.com/goccy/go-json"
)

// ParseRequestBody decodes the JSON body into dst and validates it.
func ParseRequestBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	if err := ValidateStruct(dst); err != nil {
		return exceptions.ErrInputValidation(err)
	}
	return nil
}
