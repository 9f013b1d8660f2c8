package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

// json replaces encoding/json for request decoding and response encoding
// across all handlers.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// encodeJSON writes payload as the response body. An encode failure means the
// connection broke mid-write; the status line is already out, so it is only
// logged.
func encodeJSON(w http.ResponseWriter, payload interface{}, what string) {
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Errorf("error writing %s response", what)
	}
}
