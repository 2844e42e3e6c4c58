package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/stashlog/internal/db"
	"github.com/terraincognita07/stashlog/internal/enrichment"
	"github.com/terraincognita07/stashlog/internal/logging"
	"github.com/terraincognita07/stashlog/internal/metrics"
	"github.com/terraincognita07/stashlog/internal/services"
)

var testNow = time.Date(2026, time.October, 19, 18, 0, 0, 0, time.UTC)

type testAppOptions struct {
	store    services.KeyValueStore
	enricher enrichment.Enricher
	auth     AuthSettings
}

type testApp struct {
	app     *fiber.App
	metrics *metrics.Metrics
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithOptions(t, testAppOptions{})
}

func newTestAppWithOptions(t *testing.T, options testAppOptions) *testApp {
	t.Helper()

	backend := options.store
	if backend == nil {
		backend = db.NewMemoryStore()
	}
	stash := services.NewStashStore(backend, logging.Discard())

	registry, err := metrics.New()
	if err != nil {
		t.Fatalf("init metrics: %v", err)
	}

	handler, err := NewHandler(Dependencies{
		Products:   services.NewProductService(stash),
		Sessions:   services.NewSessionService(stash),
		Profile:    services.NewProfileService(stash),
		Analytics:  services.NewAnalyticsService(stash, time.UTC),
		Enrichment: services.NewEnrichmentService(options.enricher),
		Export:     services.NewExportService(stash, time.UTC),
		Metrics:    registry,
		Logger:     logging.Discard(),
		Location:   time.UTC,
		Auth:       options.auth,
		Now:        func() time.Time { return testNow },
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	app.Use(handler.RequestMetrics)
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return &testApp{app: app, metrics: registry}
}

func (ta *testApp) do(t *testing.T, method string, path string, body any, headers ...string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		request.Header.Set(headers[i], headers[i+1])
	}

	response, err := ta.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func decodeJSON(t *testing.T, body io.Reader, target any) {
	t.Helper()

	raw, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		t.Fatalf("decode response body %q: %v", string(raw), err)
	}
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()

	payload := map[string]string{}
	decodeJSON(t, body, &payload)
	return payload["error"]
}

func assertStatus(t *testing.T, response *http.Response, want int) {
	t.Helper()
	if response.StatusCode != want {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", want, response.StatusCode, string(body))
	}
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("backend offline")
}

func (failingStore) Set(context.Context, string, []byte) error {
	return errors.New("backend offline")
}
