// internal/app/features/errors/errorlog.go
package errors

import (
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger pairs zap logging with friendly error pages so handlers
// can report a failure in one call: the technical detail goes to the
// log, the user-facing message goes to the rendered page.
type ErrorLogger struct {
	logger *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{logger: logger}
}

func (e *ErrorLogger) requestFields(r *http.Request, err error) []zap.Field {
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	return fields
}

// LogServerError logs the error at Error level and renders a friendly
// 500 page with userMsg.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	if e != nil && e.logger != nil {
		e.logger.Error(logMsg, e.requestFields(r, err)...)
	}
	RenderServerError(w, r, userMsg, backURL)
}

// LogBadRequest logs the error at Warn level and renders a friendly
// 400 page with userMsg.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	if e != nil && e.logger != nil {
		e.logger.Warn(logMsg, e.requestFields(r, err)...)
	}
	RenderBadRequest(w, r, userMsg, backURL)
}

// LogNotFound logs at Info level and renders a friendly 404 page.
func (e *ErrorLogger) LogNotFound(w http.ResponseWriter, r *http.Request, logMsg, userMsg, backURL string) {
	if e != nil && e.logger != nil {
		e.logger.Info(logMsg, e.requestFields(r, nil)...)
	}
	RenderNotFound(w, r, userMsg, backURL)
}
