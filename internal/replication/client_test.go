package replication

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"replicated-log/internal/logstore"
)

func TestClientSendClassifiesOutcomes(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   Outcome
	}{
		{"ok", http.StatusOK, Success},
		{"server error", http.StatusInternalServerError, Transient},
		{"request timeout", http.StatusRequestTimeout, Transient},
		{"too many requests", http.StatusTooManyRequests, Transient},
		{"bad request", http.StatusBadRequest, Permanent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			c := NewClient()
			result := c.Send(context.Background(), srv.URL, logstore.Entry{ID: 1, Message: "m"}, time.Second)
			assert.Equal(t, tc.want, result.Outcome)
		})
	}
}

func TestClientSendNetworkErrorIsTransient(t *testing.T) {
	c := NewClient()
	result := c.Send(context.Background(), "http://127.0.0.1:1", logstore.Entry{ID: 1, Message: "m"}, 50*time.Millisecond)
	assert.Equal(t, Transient, result.Outcome)
	assert.Error(t, result.Err)
}
