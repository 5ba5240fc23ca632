package upstream

import (
	"encoding/json"
	"fmt"
	"sort"
)

// FieldError is one field-scoped validation failure from the API.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is a non-2xx response from the platform API, decoded into
// the most specific message the body provides.
type APIError struct {
	Status           int
	Message          string
	ValidationErrors []FieldError
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("upstream request failed with status %d", e.Status)
}

// FieldErrors returns the validation breakdown as a field-keyed map,
// empty when the response carried none. Dialogs use this to map
// mutation failures back onto form inputs.
func (e *APIError) FieldErrors() map[string]string {
	if len(e.ValidationErrors) == 0 {
		return nil
	}
	m := make(map[string]string, len(e.ValidationErrors))
	for _, fe := range e.ValidationErrors {
		if _, ok := m[fe.Field]; !ok {
			m[fe.Field] = fe.Message
		}
	}
	return m
}

// errorBody covers the error shapes the API emits. Precedence when
// picking a display message: validationErrors, then errors, then the
// nested data.message, then the top-level message.
type errorBody struct {
	Message          string            `json:"message"`
	ValidationErrors []FieldError      `json:"validationErrors"`
	Errors           map[string]string `json:"errors"`
	Data             *struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	} `json:"data"`
}

func parseAPIError(status int, raw []byte) *APIError {
	e := &APIError{Status: status}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		e.Message = fmt.Sprintf("upstream request failed with status %d", status)
		return e
	}

	if len(body.ValidationErrors) > 0 {
		e.ValidationErrors = body.ValidationErrors
		e.Message = body.ValidationErrors[0].Message
		return e
	}

	errs := body.Errors
	if errs == nil && body.Data != nil {
		errs = body.Data.Errors
	}
	if len(errs) > 0 {
		fields := make([]string, 0, len(errs))
		for field := range errs {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			e.ValidationErrors = append(e.ValidationErrors, FieldError{Field: field, Message: errs[field]})
		}
		e.Message = e.ValidationErrors[0].Message
		return e
	}

	if body.Data != nil && body.Data.Message != "" {
		e.Message = body.Data.Message
		return e
	}
	if body.Message != "" {
		e.Message = body.Message
		return e
	}
	e.Message = fmt.Sprintf("upstream request failed with status %d", status)
	return e
}
