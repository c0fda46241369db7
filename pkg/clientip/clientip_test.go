package clientip_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/library/pkg/clientip"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "remote addr", remote: "10.0.0.7:5120", want: "10.0.0.7"},
		{name: "remote addr without port", remote: "10.0.0.7", want: "10.0.0.7"},
		{name: "first valid forwarded entry", headers: map[string]string{"X-Forwarded-For": "junk, 203.0.113.9, 10.0.0.1"}, remote: "10.0.0.7:1", want: "203.0.113.9"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": " 2001:db8::1 "}, remote: "10.0.0.7:1", want: "2001:db8::1"},
		{name: "invalid headers fall back", headers: map[string]string{"X-Forwarded-For": "nope", "X-Real-IP": "?"}, remote: "[::1]:80", want: "::1"},
		{name: "nothing parses", remote: "pipe", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.Resolve(r, clientip.DefaultHeaders...))
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var seen string
	h := clientip.Middleware("CF-Connecting-IP")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = clientip.FromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.9")
	r.Header.Set("CF-Connecting-IP", "198.51.100.4")
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "198.51.100.4", seen)
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	extract := clientip.LoggerExtractor()

	_, ok := extract(context.Background())
	assert.False(t, ok)

	attr, ok := extract(clientip.WithContext(context.Background(), "10.0.0.7"))
	assert.True(t, ok)
	assert.Equal(t, "client_ip", attr.Key)
	assert.Equal(t, "10.0.0.7", attr.Value.String())
}
