// Package enrichment asks a generative model for a best-effort product
// profile. Failures never surface as errors; callers get no result instead.
package enrichment

import (
	"context"
	"strings"
)

const (
	OutcomeSuccess        = "success"
	OutcomeCacheHit       = "cache_hit"
	OutcomeDisabled       = "disabled"
	OutcomeInvalidRequest = "invalid_request"
	OutcomeRateLimited    = "rate_limited"
	OutcomeTransportError = "transport_error"
	OutcomeHTTPError      = "http_error"
	OutcomeEmptyResponse  = "empty_response"
	OutcomeMalformed      = "malformed_response"
)

// Enricher is implemented by every provider client.
type Enricher interface {
	Enrich(ctx context.Context, request Request) (*Result, bool)
}

type Request struct {
	Brand       string `json:"brand"`
	ProductName string `json:"productName"`
	Variant     string `json:"variant,omitempty"`
}

func (request Request) normalized() Request {
	return Request{
		Brand:       strings.TrimSpace(request.Brand),
		ProductName: strings.TrimSpace(request.ProductName),
		Variant:     strings.TrimSpace(request.Variant),
	}
}

func (request Request) cacheKey() string {
	return strings.ToLower(request.Brand + "\x00" + request.ProductName + "\x00" + request.Variant)
}

type Terpene struct {
	Name       string   `json:"name"`
	Percentage *float64 `json:"percentage,omitempty"`
	Effects    string   `json:"effects,omitempty"`
}

type Result struct {
	StrainType           string    `json:"strain_type"`
	TypicalTHCPercentage *float64  `json:"typical_thc_percentage,omitempty"`
	TypicalCBDPercentage *float64  `json:"typical_cbd_percentage,omitempty"`
	DominantTerpenes     []Terpene `json:"dominant_terpenes"`
	SuggestedTags        []string  `json:"suggested_tags"`
	DescriptionSummary   string    `json:"description_summary"`
}

func (result *Result) clone() *Result {
	if result == nil {
		return nil
	}
	copied := *result
	copied.TypicalTHCPercentage = clonePercentage(result.TypicalTHCPercentage)
	copied.TypicalCBDPercentage = clonePercentage(result.TypicalCBDPercentage)
	copied.DominantTerpenes = make([]Terpene, len(result.DominantTerpenes))
	for i, terpene := range result.DominantTerpenes {
		terpene.Percentage = clonePercentage(terpene.Percentage)
		copied.DominantTerpenes[i] = terpene
	}
	copied.SuggestedTags = append([]string(nil), result.SuggestedTags...)
	return &copied
}

func clonePercentage(value *float64) *float64 {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}
