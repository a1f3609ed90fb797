package http

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"vicmoney/internal/core"
	"vicmoney/internal/tracker"
)

var templateFuncs = template.FuncMap{
	// action builds the form value posted by a tracker button, e.g. "increment:pounds".
	"action": func(kind string, unit string) string {
		return kind + ":" + unit
	},
}

var errTemplatesNotLoaded = errors.New("templates not loaded")

// render executes the named template into memory so a failure never leaves a
// half-written response.
func (s *Server) render(name string, data any) ([]byte, error) {
	if s.templates == nil {
		return nil, errTemplatesNotLoaded
	}
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("execute %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// renderView renders a tracker template, reusing the output for views whose
// version has already been rendered.
func (s *Server) renderView(name string, v tracker.View) ([]byte, error) {
	key := name + "@" + strconv.FormatUint(v.Version, 10)
	if body, ok := s.fragments.Get(key); ok {
		return body, nil
	}
	body, err := s.render(name, v)
	if err != nil {
		return nil, err
	}
	s.fragments.Add(key, body)
	return body, nil
}

// errorStatus maps tracker and model errors to a status and the message shown
// to the user.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, tracker.ErrActionDisabled):
		return http.StatusConflict, "That action is not available right now"
	case errors.Is(err, tracker.ErrUnknownAction), errors.Is(err, core.ErrUnknownUnit):
		return http.StatusUnprocessableEntity, "Unknown action"
	case errors.Is(err, core.ErrNegativeAmount):
		return http.StatusUnprocessableEntity, "Amounts must be non-negative"
	default:
		return http.StatusInternalServerError, "Something went wrong"
	}
}

// errorResponse builds the error reply for err, as JSON for API clients and
// as an htmx fragment with a notification otherwise.
func errorResponse(err error, asJSON bool) *HTMXResponseBuilder {
	status, msg := errorStatus(err)
	if asJSON {
		return JSONErrorResponse(status, msg)
	}
	return ErrorResponse(status, msg)
}
