package prometheus

import (
	"encoding/json"
	"net/http"

	"github.com/golang/gddo/httputil"
	"github.com/pkg/errors"
)

const (
	contentTypePlainText = "text/plain"
	contentTypeJSON      = "application/json"
)

// generatedResponse is the json body of a negotiated response.
type generatedResponse struct {
	Err  string      `json:"error"`
	Data interface{} `json:"data"`
}

// negotiateContentType picks the response type from the Accept header, plain
// text when nothing acceptable is offered.
func negotiateContentType(r *http.Request) string {
	return httputil.NegotiateContentType(r, []string{contentTypePlainText, contentTypeJSON}, contentTypePlainText)
}

// writeResponse writes text for plain text clients and data wrapped in a
// generatedResponse for json clients, with the given status code.
func writeResponse(w http.ResponseWriter, r *http.Request, status int, text string, data interface{}) error {
	if negotiateContentType(r) == contentTypeJSON {
		w.Header().Set("Content-Type", contentTypeJSON)
		w.WriteHeader(status)
		return json.NewEncoder(w).Encode(generatedResponse{Data: data})
	}
	w.Header().Set("Content-Type", contentTypePlainText)
	w.WriteHeader(status)
	if _, err := w.Write([]byte(text)); err != nil {
		return errors.Wrap(err, "could not write response body")
	}
	return nil
}
