package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenWriter fails every write, as a closed client connection would.
type brokenWriter struct {
	header http.Header
}

func (w *brokenWriter) Header() http.Header {
	if w.header == nil {
		w.header = http.Header{}
	}
	return w.header
}

func (w *brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset by peer")
}

func (w *brokenWriter) WriteHeader(int) {}

func TestEncodeJSON(t *testing.T) {
	t.Run("writes the payload", func(t *testing.T) {
		recorder := httptest.NewRecorder()

		encodeJSON(recorder, map[string]string{"message": "ok"}, "test")

		assert.JSONEq(t, `{"message":"ok"}`, recorder.Body.String())
	})

	t.Run("logs when the write fails", func(t *testing.T) {
		hook := logrustest.NewGlobal()
		defer hook.Reset()

		encodeJSON(&brokenWriter{}, map[string]string{"message": "ok"}, "enrollment")

		require.Len(t, hook.Entries, 1)
		entry := hook.LastEntry()
		assert.Equal(t, logrus.ErrorLevel, entry.Level)
		assert.Contains(t, entry.Message, "enrollment")
		assert.EqualError(t, entry.Data[logrus.ErrorKey].(error), "connection reset by peer")
	})
}
