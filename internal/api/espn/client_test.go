package espn

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/omarshaarawi/courtside/internal/config"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *Client {
	return NewClient(config.ESPNAPI{
		Year:           "2026",
		LeagueID:       "123",
		BaseURL:        baseURL,
		Timeout:        time.Second,
		BreakerTimeout: time.Minute,
	})
}

func TestClientGetSplitsParamsAndSetsCookies(t *testing.T) {
	var gotViews []string
	var gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotViews = r.URL.Query()["view"]
		gotCookie = r.Header.Get("Cookie")
		_, _ = w.Write([]byte(`{"id": 123}`))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	client.Config.SWID = "{abc}"
	client.Config.ESPNS2 = "s2"

	var out struct {
		ID int `json:"id"`
	}
	err := client.Get(context.Background(), "/x", map[string]string{"view": "mTeam, mRoster"}, nil, &out)
	require.NoError(t, err)

	assert.Equal(t, 123, out.ID)
	assert.Equal(t, []string{"mTeam", "mRoster"}, gotViews)
	assert.Equal(t, "SWID={abc}; espn_s2=s2", gotCookie)
}

func TestClientNoCookiesForPublicLeague(t *testing.T) {
	var gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCookie = r.Header.Get("Cookie")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	var out map[string]any
	require.NoError(t, testClient(srv.URL).Get(context.Background(), "/x", nil, nil, &out))
	assert.Empty(t, gotCookie)
}

func TestClientBreakerOpensAfterFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	var out map[string]any
	for i := 0; i < 3; i++ {
		err := client.Get(context.Background(), "/x", nil, nil, &out)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status code: 503")
	}

	err := client.Get(context.Background(), "/x", nil, nil, &out)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	var out map[string]any
	err := testClient(srv.URL).Get(context.Background(), "/x", nil, nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding response")
}
