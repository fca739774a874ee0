package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"lilutecno/internal/catalog"
	"lilutecno/internal/clock"
	"lilutecno/internal/config"
	"lilutecno/internal/http/handlers"
	"lilutecno/internal/kv"
	"lilutecno/internal/repos"
)

const templates = "../../../web/templates"

type testEnv struct {
	app   *fiber.App
	deps  *handlers.Deps
	clock *clock.Fake
	kv    kv.Store
}

func newTestEnv(t *testing.T, opts handlers.AppOptions) *testEnv {
	t.Helper()
	return newTestEnvWith(t, kv.NewMemory(), opts)
}

func newTestEnvWith(t *testing.T, store kv.Store, opts handlers.AppOptions) *testEnv {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	raw, err := repos.NewProductRepo(db).All()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	cat, err := catalog.FromRaw(raw)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return newTestEnvFrom(t, cat, store, opts)
}

func newTestEnvFrom(t *testing.T, cat *catalog.Catalog, store kv.Store, opts handlers.AppOptions) *testEnv {
	t.Helper()
	cfg := config.Config{
		MaxPrice:    config.DefaultMaxPrice,
		NotifyTTL:   3 * time.Second,
		SessionIdle: time.Hour,
	}
	clk := clock.NewFake(time.Unix(1_700_000_000, 0))
	deps := handlers.NewDeps(cat, store, clk, cfg)
	t.Cleanup(deps.Sessions.Close)

	if opts.Templates == "" {
		opts.Templates = templates
	}
	return &testEnv{app: handlers.NewApp(deps, opts), deps: deps, clock: clk, kv: store}
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// call issues a request with an optional JSON body and sid cookie.
func (e *testEnv) call(t *testing.T, method, path string, body any, sid string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := e.app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	out, _ := io.ReadAll(resp.Body)
	return resp, out
}

// newSID opens a session and returns its cookie value.
func (e *testEnv) newSID(t *testing.T) string {
	t.Helper()
	resp, _ := e.call(t, "GET", "/api/v1/filters", nil, "")
	sid := extractCookie(resp, "sid")
	if sid == "" {
		t.Fatal("sid cookie not issued")
	}
	return sid
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		t.Fatalf("decode %s: %v", b, err)
	}
	return v
}
