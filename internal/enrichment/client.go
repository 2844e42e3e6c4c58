package enrichment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/terraincognita07/stashlog/internal/logging"
	"github.com/terraincognita07/stashlog/internal/models"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const maxResponseBytes = 1 << 20

// Recorder receives lookup outcomes; *metrics.Metrics satisfies it.
type Recorder interface {
	RecordEnrichment(outcome string)
	ObserveEnrichmentDuration(duration time.Duration)
}

type Config struct {
	APIKey            string
	Model             string
	BaseURL           string
	Timeout           time.Duration
	CacheTTL          time.Duration
	RequestsPerMinute int
}

func DefaultConfig() Config {
	return Config{
		Model:             "gemini-2.5-flash",
		BaseURL:           "https://generativelanguage.googleapis.com/v1beta",
		Timeout:           20 * time.Second,
		CacheTTL:          24 * time.Hour,
		RequestsPerMinute: 10,
	}
}

type GeminiClient struct {
	config     Config
	httpClient *http.Client
	logger     logging.Logger
	recorder   Recorder
	limiter    *rate.Limiter
	cache      *cache.Cache
	group      singleflight.Group
}

type Option func(*GeminiClient)

func WithHTTPClient(client *http.Client) Option {
	return func(c *GeminiClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

func WithLogger(logger logging.Logger) Option {
	return func(c *GeminiClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithRecorder(recorder Recorder) Option {
	return func(c *GeminiClient) {
		c.recorder = recorder
	}
}

func NewGeminiClient(config Config, options ...Option) *GeminiClient {
	defaults := DefaultConfig()
	if config.Model == "" {
		config.Model = defaults.Model
	}
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}
	if config.CacheTTL <= 0 {
		config.CacheTTL = defaults.CacheTTL
	}
	if config.RequestsPerMinute <= 0 {
		config.RequestsPerMinute = defaults.RequestsPerMinute
	}

	client := &GeminiClient{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logging.Discard(),
		limiter:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(config.RequestsPerMinute)), config.RequestsPerMinute),
		cache:      cache.New(config.CacheTTL, config.CacheTTL*2),
	}
	for _, option := range options {
		option(client)
	}
	return client
}

func (c *GeminiClient) Enabled() bool {
	return c.config.APIKey != ""
}

type fetchOutcome struct {
	result  *Result
	outcome string
}

// Enrich returns a profile guess, or false on any failure. It never retries.
func (c *GeminiClient) Enrich(ctx context.Context, request Request) (*Result, bool) {
	request = request.normalized()
	if !c.Enabled() {
		c.logger.Warn(ctx, "enrichment skipped, no API key configured")
		c.record(OutcomeDisabled)
		return nil, false
	}
	if request.ProductName == "" {
		c.record(OutcomeInvalidRequest)
		return nil, false
	}

	key := request.cacheKey()
	if cached, found := c.cache.Get(key); found {
		if result, ok := cached.(*Result); ok {
			c.record(OutcomeCacheHit)
			return result.clone(), true
		}
	}

	value, _, _ := c.group.Do(key, func() (any, error) {
		result, outcome, err := c.fetch(ctx, request)
		if err != nil {
			c.logger.Warn(ctx, "enrichment lookup failed",
				"outcome", outcome,
				"product", request.ProductName,
				"error", err)
			return fetchOutcome{outcome: outcome}, nil
		}
		c.cache.Set(key, result, cache.DefaultExpiration)
		return fetchOutcome{result: result, outcome: outcome}, nil
	})

	fetched := value.(fetchOutcome)
	c.record(fetched.outcome)
	if fetched.result == nil {
		return nil, false
	}
	return fetched.result.clone(), true
}

func (c *GeminiClient) fetch(ctx context.Context, request Request) (*Result, string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, OutcomeRateLimited, fmt.Errorf("wait for rate limiter: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	payload, err := json.Marshal(newGenerateContentRequest(request))
	if err != nil {
		return nil, OutcomeMalformed, fmt.Errorf("encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.config.BaseURL, url.PathEscape(c.config.Model))
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, OutcomeTransportError, fmt.Errorf("build request: %w", err)
	}
	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.Header.Set("x-goog-api-key", c.config.APIKey)

	started := time.Now()
	response, err := c.httpClient.Do(httpRequest)
	if c.recorder != nil {
		c.recorder.ObserveEnrichmentDuration(time.Since(started))
	}
	if err != nil {
		return nil, OutcomeTransportError, fmt.Errorf("call provider: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, OutcomeTransportError, fmt.Errorf("read response: %w", err)
	}
	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return nil, OutcomeHTTPError, fmt.Errorf("provider returned status %d", response.StatusCode)
	}

	return decodeResult(body)
}

func decodeResult(body []byte) (*Result, string, error) {
	var envelope generateContentResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, OutcomeMalformed, fmt.Errorf("decode envelope: %w", err)
	}
	if len(envelope.Candidates) == 0 || len(envelope.Candidates[0].Content.Parts) == 0 {
		return nil, OutcomeEmptyResponse, errors.New("response has no candidates")
	}

	text := strings.TrimSpace(envelope.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return nil, OutcomeEmptyResponse, errors.New("response text is empty")
	}

	var result Result
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, OutcomeMalformed, fmt.Errorf("decode result: %w", err)
	}

	result.StrainType = string(models.ParseStrainType(result.StrainType))
	if result.DominantTerpenes == nil {
		result.DominantTerpenes = []Terpene{}
	}
	if result.SuggestedTags == nil {
		result.SuggestedTags = []string{}
	}
	return &result, OutcomeSuccess, nil
}

func (c *GeminiClient) record(outcome string) {
	if c.recorder != nil {
		c.recorder.RecordEnrichment(outcome)
	}
}
