package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observation struct {
	method, route, status string
}

type fakeRecorder struct {
	seen []observation
}

func (f *fakeRecorder) ObserveHTTP(method, route, status string, _ time.Duration) {
	f.seen = append(f.seen, observation{method, route, status})
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	rec := &fakeRecorder{}
	router := mux.NewRouter()
	router.Use(Metrics(rec))
	router.HandleFunc("/orders/{orderId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}).Methods(http.MethodGet)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/orders/abc", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/orders/def", nil))

	require.Len(t, rec.seen, 2)
	for _, o := range rec.seen {
		assert.Equal(t, observation{"GET", "/orders/{orderId}", "418"}, o)
	}
}

func TestMetrics_DefaultStatus(t *testing.T) {
	rec := &fakeRecorder{}
	h := Metrics(rec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Len(t, rec.seen, 1)
	assert.Equal(t, "unknown", rec.seen[0].route)
	assert.Equal(t, "200", rec.seen[0].status)
}
