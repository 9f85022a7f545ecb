package web

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(NewRouter(log, cfg).Handler(ctx))
	t.Cleanup(srv.Close)
	return srv
}


func TestRouterPostConvert(t *testing.T) {
	srv := newTestServer(t, DefaultConfig())

	resp, err := http.Post(srv.URL+"/api/v1/convert", "application/json",
		strings.NewReader(`{"text":"あいう","to":"katakana"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	var body struct {
		Result string `json:"result"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "アイウ", body.Result)
}

func TestRouterGetConvertIsCacheable(t *testing.T) {
	srv := newTestServer(t, DefaultConfig())

	resp, err := http.Get(srv.URL + "/api/v1/convert?to=hiragana&text=%E3%82%AB%E3%83%8A")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "public, max-age=3600", resp.Header.Get("Cache-Control"))

	var body struct {
		Result string `json:"result"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "かな", body.Result)
}

func TestRouterTypingBurstStaysUnderLimit(t *testing.T) {
	srv := newTestServer(t, DefaultConfig())

	// One lookup per keystroke, the text growing each time.
	text := ""
	statuses := map[int]int{}
	for i := range 80 {
		text += string(rune(0x3042 + i%40))
		q := url.Values{"text": {text}, "to": {"katakana"}}
		resp, err := http.Get(srv.URL + "/api/v1/convert?" + q.Encode())
		require.NoError(t, err)
		resp.Body.Close()
		statuses[resp.StatusCode]++
	}
	assert.Equal(t, map[int]int{http.StatusOK: 80}, statuses)
}

func TestRouterRateLimits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateLimit = 2
	cfg.LookupRateLimit = 2
	srv := newTestServer(t, cfg)

	var codes []int
	for range 3 {
		resp, err := http.Get(srv.URL + "/api/v1/convert?to=katakana&text=a")
		require.NoError(t, err)
		resp.Body.Close()
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRouterSubmitLimitIsSeparate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateLimit = 1
	srv := newTestServer(t, cfg)

	post := func() int {
		resp, err := http.Post(srv.URL+"/api/v1/convert", "application/json",
			strings.NewReader(`{"text":"あ","to":"katakana"}`))
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}
	assert.Equal(t, http.StatusOK, post())
	assert.Equal(t, http.StatusTooManyRequests, post())

	resp, err := http.Get(srv.URL + "/api/v1/convert?to=katakana&text=a")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "lookups keep their own budget")
}

func TestRouterMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, DefaultConfig())

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/convert", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
