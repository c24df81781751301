package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	testKey    = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	testClient = "192.0.2.1" // httptest.NewRequest RemoteAddr
	testRoute  = "/api/proposals"
)

func setupEcho(rdb *redis.Client, ttl time.Duration, handler echo.HandlerFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(Idempotency(rdb, ttl, nil))
	e.POST(testRoute, handler)
	e.GET(testRoute, handler)
	return e
}

func doReq(t *testing.T, e *echo.Echo, method, path string, body []byte, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// countingHandler answers 201 with an incrementing id.
func countingHandler(calls *int32) echo.HandlerFunc {
	return func(c echo.Context) error {
		n := atomic.AddInt32(calls, 1)
		return c.JSON(http.StatusCreated, map[string]any{"id": n})
	}
}

func Test_PassThrough(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	defer mr.Close()
	var calls int32
	e := setupEcho(rdb, time.Minute, countingHandler(&calls))

	// GET is never intercepted
	if rec := doReq(t, e, http.MethodGet, testRoute, nil, nil); rec.Code != http.StatusCreated {
		t.Fatalf("GET => %d", rec.Code)
	}
	// no key: every POST reaches the handler
	for i := 0; i < 2; i++ {
		if rec := doReq(t, e, http.MethodPost, testRoute, []byte(`{}`), nil); rec.Code != http.StatusCreated {
			t.Fatalf("POST without key => %d", rec.Code)
		}
	}
	if calls != 3 {
		t.Fatalf("handler calls = %d, want 3", calls)
	}

	// nil client disables the middleware entirely
	calls = 0
	e = setupEcho(nil, time.Minute, countingHandler(&calls))
	hdr := map[string]string{HeaderIdempotencyKey: testKey}
	doReq(t, e, http.MethodPost, testRoute, []byte(`{}`), hdr)
	doReq(t, e, http.MethodPost, testRoute, []byte(`{}`), hdr)
	if calls != 2 {
		t.Fatalf("nil redis: handler calls = %d, want 2", calls)
	}
}

func Test_ValidationFailures(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	defer mr.Close()
	var calls int32
	e := setupEcho(rdb, time.Minute, countingHandler(&calls))

	cases := map[string]map[string]string{
		"bad key":       {HeaderIdempotencyKey: "NOT-VALID"},
		"bad timestamp": {HeaderIdempotencyKey: testKey, HeaderRequestAt: "not-a-time"},
		"skewed past":   {HeaderIdempotencyKey: testKey, HeaderRequestAt: time.Now().UTC().Add(-maxClockSkew - time.Minute).Format(time.RFC3339)},
		"skewed future": {HeaderIdempotencyKey: testKey, HeaderRequestAt: time.Now().UTC().Add(maxClockSkew + time.Minute).Format(time.RFC3339)},
	}
	for name, h := range cases {
		if rec := doReq(t, e, http.MethodPost, testRoute, []byte(`{}`), h); rec.Code != http.StatusBadRequest {
			t.Fatalf("%s => want 400, got %d", name, rec.Code)
		}
	}
	if calls != 0 {
		t.Fatalf("handler should not run on invalid headers, ran %d times", calls)
	}
}

func Test_HappyPath_Then_Replay(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	defer mr.Close()
	var calls int32
	e := setupEcho(rdb, 2*time.Minute, countingHandler(&calls))

	h := map[string]string{
		HeaderIdempotencyKey: testKey,
		HeaderRequestAt:      time.Now().UTC().Format(time.RFC3339),
	}
	body := []byte(`{"principal":"10000.00"}`)

	rec1 := doReq(t, e, http.MethodPost, testRoute, body, h)
	if rec1.Code != http.StatusCreated {
		t.Fatalf("first request => want 201, got %d, body: %s", rec1.Code, rec1.Body.String())
	}
	rec2 := doReq(t, e, http.MethodPost, testRoute, body, h)
	if rec2.Code != http.StatusCreated {
		t.Fatalf("replay => want 201, got %d", rec2.Code)
	}
	if rec1.Body.String() != rec2.Body.String() {
		t.Fatalf("replay body mismatch: %q vs %q", rec1.Body.String(), rec2.Body.String())
	}
	if rec2.Header().Get(HeaderReplayed) != "true" {
		t.Fatalf("replay should be flagged")
	}
	if calls != 1 {
		t.Fatalf("handler calls = %d, want 1", calls)
	}
}

func Test_Conflict_When_InProgress(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	defer mr.Close()
	e := setupEcho(rdb, 2*time.Minute, countingHandler(new(int32)))

	body := []byte(`{"x":1}`)
	key := buildKey(http.MethodPost, testRoute, testClient, testKey)
	entry := idempEntry{InProgress: true, BodySHA256: bodyHash(body), Key: testKey, CreatedAt: time.Now().UTC()}
	if ok, err := provisionalSet(context.Background(), rdb, key, entry); err != nil || !ok {
		t.Fatalf("seed provisional failed, ok=%v err=%v", ok, err)
	}

	rec := doReq(t, e, http.MethodPost, testRoute, body, map[string]string{HeaderIdempotencyKey: testKey})
	if rec.Code != http.StatusConflict {
		t.Fatalf("in-progress => want 409, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func Test_Conflict_When_SameKey_DifferentBody(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	defer mr.Close()
	e := setupEcho(rdb, 2*time.Minute, countingHandler(new(int32)))

	key := buildKey(http.MethodPost, testRoute, testClient, testKey)
	final := idempEntry{
		Code:       http.StatusCreated,
		Body:       []byte(`{"id":1}`),
		BodySHA256: bodyHash([]byte(`{"x":1}`)),
		Key:        testKey,
		CreatedAt:  time.Now().UTC(),
	}
	if err := saveFinal(context.Background(), rdb, key, final, 5*time.Minute); err != nil {
		t.Fatalf("seed final failed: %v", err)
	}

	rec := doReq(t, e, http.MethodPost, testRoute, []byte(`{"x":2}`), map[string]string{HeaderIdempotencyKey: testKey})
	if rec.Code != http.StatusConflict {
		t.Fatalf("different body same key => want 409, got %d", rec.Code)
	}
}

func Test_KeyIsScopedByClientIP(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	defer mr.Close()
	var calls int32
	e := setupEcho(rdb, time.Minute, countingHandler(&calls))

	h := map[string]string{HeaderIdempotencyKey: testKey}
	doReq(t, e, http.MethodPost, testRoute, []byte(`{}`), h)
	h[echo.HeaderXRealIP] = "198.51.100.9"
	doReq(t, e, http.MethodPost, testRoute, []byte(`{}`), h)
	if calls != 2 {
		t.Fatalf("different clients must not share a key: calls = %d", calls)
	}
}

func Test_ServerErrorsAreNotCached(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	defer mr.Close()
	var calls int32
	e := setupEcho(rdb, time.Minute, func(c echo.Context) error {
		if atomic.AddInt32(&calls, 1) == 1 {
			return c.JSON(http.StatusBadGateway, map[string]string{"error": "upstream"})
		}
		return c.JSON(http.StatusCreated, map[string]bool{"ok": true})
	})

	h := map[string]string{HeaderIdempotencyKey: testKey}
	if rec := doReq(t, e, http.MethodPost, testRoute, []byte(`{}`), h); rec.Code != http.StatusBadGateway {
		t.Fatalf("first => want 502, got %d", rec.Code)
	}
	if rec := doReq(t, e, http.MethodPost, testRoute, []byte(`{}`), h); rec.Code != http.StatusCreated {
		t.Fatalf("retry => want 201, got %d", rec.Code)
	}
}

func Test_StoreUnavailable_Returns503(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	e := setupEcho(rdb, time.Minute, countingHandler(new(int32)))

	rec := doReq(t, e, http.MethodPost, testRoute, []byte(`{}`), map[string]string{HeaderIdempotencyKey: testKey})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("store unavailable => want 503, got %d", rec.Code)
	}
}
