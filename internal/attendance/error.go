package attendance

import (
	"errors"
	"fmt"
	"net/http"
)

// ===== Error model =====
type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *APIError) Error() string     { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrInvalid(msg string) *APIError { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrInternal(msg string) *APIError { return &APIError{Code: CodeInternal, Message: msg} }

func errInvalidField(field, msg string) *APIError {
	return &APIError{Code: CodeInvalidArgument, Message: msg, Field: field}
}

const (
	MsgSignatureRequired = "La firma del participante es obligatoria."
	MsgCourseRequired    = "Primero ingrese el nombre de la capacitación."
	MsgEmptyRoster       = "No hay registros aún. Agregue uno usando el formulario."
)

// IsValidation reports whether err is a ValidationError: a missing
// field or signature.
func IsValidation(err error) bool {
	var api *APIError
	return errors.As(err, &api) && api.Code == CodeInvalidArgument
}

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return http.StatusBadRequest
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}
