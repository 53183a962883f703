// Package responsewriter wraps http.ResponseWriter so middleware can see
// the status code and body size after a feed document has been served.
package responsewriter

import (
	"net/http"
)

// ResponseWriter records the status and bytes written to a response.
type ResponseWriter struct {
	http.ResponseWriter
	status        int
	bytes         int
	headerWritten bool
}

// Wrap returns a recording wrapper around w. The status defaults to 200
// until WriteHeader is called.
func Wrap(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{
		ResponseWriter: w,
		status:         http.StatusOK,
	}
}

// WriteHeader records the status code. Only the first call counts, matching
// net/http's own superfluous-WriteHeader handling.
func (w *ResponseWriter) WriteHeader(statusCode int) {
	if !w.headerWritten {
		w.status = statusCode
		w.headerWritten = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

// Write writes the body and accumulates the byte count. An implicit 200 is
// recorded when the handler never called WriteHeader.
func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.headerWritten {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// StatusCode returns the recorded HTTP status code.
func (w *ResponseWriter) StatusCode() int {
	return w.status
}

// BytesWritten returns the size of the body written so far. For a feed
// response this is the size of the serialized XML document.
func (w *ResponseWriter) BytesWritten() int {
	return w.bytes
}

// Unwrap exposes the underlying writer for http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
