package dispatcher_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/portnet-lab/caseflow/pkg/service/dispatcher"
)

func TestClient_RunOnce(t *testing.T) {
	t.Run("sends API key and limit, decodes report", func(t *testing.T) {
		var gotPath, gotKey, gotLimit string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotKey = r.Header.Get("X-Dispatcher-Key")
			gotLimit = r.URL.Query().Get("limit")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"assigned": 3, "skipped": 1, "errors": 0}`))
		}))
		defer ts.Close()

		svc, err := dispatcher.New(ts.URL, "secret-key", 5*time.Second)
		gt.NoError(t, err).Required()

		report, err := svc.RunOnce(context.Background(), 25)
		gt.NoError(t, err).Required()
		gt.Value(t, gotPath).Equal("/dispatcher")
		gt.Value(t, gotKey).Equal("secret-key")
		gt.Value(t, gotLimit).Equal("25")
		gt.Number(t, report.Assigned).Equal(3)
		gt.Number(t, report.Skipped).Equal(1)
		gt.Number(t, report.Errors).Equal(0)
	})

	t.Run("non-positive limit falls back to the server default", func(t *testing.T) {
		var gotLimit string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotLimit = r.URL.Query().Get("limit")
			_, _ = w.Write([]byte(`{"assigned": 0, "skipped": 0, "errors": 0}`))
		}))
		defer ts.Close()

		svc, err := dispatcher.New(ts.URL, "", 5*time.Second)
		gt.NoError(t, err).Required()

		_, err = svc.RunOnce(context.Background(), 0)
		gt.NoError(t, err).Required()
		gt.Value(t, gotLimit).Equal("50")
	})

	t.Run("non-200 response is surfaced as an error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "dispatcher overloaded", http.StatusServiceUnavailable)
		}))
		defer ts.Close()

		svc, err := dispatcher.New(ts.URL, "key", 5*time.Second)
		gt.NoError(t, err).Required()

		_, err = svc.RunOnce(context.Background(), 10)
		gt.Value(t, err).NotNil()
	})

	t.Run("malformed body is surfaced as an error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer ts.Close()

		svc, err := dispatcher.New(ts.URL, "key", 5*time.Second)
		gt.NoError(t, err).Required()

		_, err = svc.RunOnce(context.Background(), 10)
		gt.Value(t, err).NotNil()
	})

	t.Run("empty base URL is rejected", func(t *testing.T) {
		_, err := dispatcher.New("", "key", 5*time.Second)
		gt.Value(t, err).NotNil()
	})
}
