package handlers

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facilities-pm/backend/internal/db"
)

type healthBody struct {
	Status string `json:"status"`
	Store  string `json:"store"`
	Error  struct {
		Code    string `json:"code"`
		Details string `json:"details"`
	} `json:"error"`
}

// deadlinePinger fails unless the handler bounds the ping with a deadline.
type deadlinePinger struct{}

func (deadlinePinger) Ping(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("ping without deadline")
	}
	return nil
}

func TestHealthz(t *testing.T) {
	cases := []struct {
		name      string
		pinger    Pinger
		wantCode  int
		wantStore string
		wantError string
	}{
		{"no store configured", nil, http.StatusOK, "none", ""},
		{"store reachable", stubPinger{}, http.StatusOK, "", ""},
		{"ping is bounded", deadlinePinger{}, http.StatusOK, "", ""},
		{"store down", stubPinger{err: errors.New("connection refused")}, http.StatusServiceUnavailable, "", "DB_UNAVAILABLE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var body healthBody
			code := get(t, newTestRouter(nil, tc.pinger), "/healthz", &body)

			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantStore, body.Store)
			assert.Equal(t, tc.wantError, body.Error.Code)
			if tc.wantError == "" {
				assert.Equal(t, "ok", body.Status)
			} else {
				assert.Equal(t, "connection refused", body.Error.Details)
			}
		})
	}
}

func TestHealthzAgainstPostgres(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	store, err := db.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	var body healthBody
	code := get(t, newTestRouter(nil, store), "/healthz", &body)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body.Status)
}
