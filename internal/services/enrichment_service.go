package services

import (
	"context"
	"strings"

	"github.com/terraincognita07/stashlog/internal/enrichment"
	"github.com/terraincognita07/stashlog/internal/models"
)

const DefaultEnrichmentBrand = "Generic"

type EnrichmentService struct {
	enricher enrichment.Enricher
}

func NewEnrichmentService(enricher enrichment.Enricher) *EnrichmentService {
	return &EnrichmentService{enricher: enricher}
}

// EnrichDraft fills profile fields of a product draft from the enricher. On
// any failure the draft comes back untouched and found is false.
func (service *EnrichmentService) EnrichDraft(ctx context.Context, draft models.Product) (models.Product, bool) {
	if service.enricher == nil {
		return draft, false
	}

	request, ok := enrichmentRequestFor(draft)
	if !ok {
		return draft, false
	}

	result, found := service.enricher.Enrich(ctx, request)
	if !found || result == nil {
		return draft, false
	}
	return applyEnrichment(draft, result), true
}

func enrichmentRequestFor(draft models.Product) (enrichment.Request, bool) {
	brand := strings.TrimSpace(draft.BrandName)
	productName := strings.TrimSpace(draft.ProductName)
	if brand == "" && draft.Category == models.CategoryPsychedelicOther {
		brand = DefaultEnrichmentBrand
	}
	if brand == "" || productName == "" {
		return enrichment.Request{}, false
	}
	return enrichment.Request{
		Brand:       brand,
		ProductName: productName,
		Variant:     strings.TrimSpace(draft.FlavorOrVariant),
	}, true
}

// applyEnrichment overwrites the profile fields, including with empty values.
func applyEnrichment(draft models.Product, result *enrichment.Result) models.Product {
	enriched := draft
	enriched.StrainType = models.ParseStrainType(result.StrainType)
	enriched.THCMgPerUnit = result.TypicalTHCPercentage
	enriched.CBDMgPerUnit = result.TypicalCBDPercentage
	enriched.DosageDescription = result.DescriptionSummary
	enriched.Tags = append([]string{}, result.SuggestedTags...)

	enriched.Terpenes = make([]models.Terpene, 0, len(result.DominantTerpenes))
	for _, terpene := range result.DominantTerpenes {
		enriched.Terpenes = append(enriched.Terpenes, models.Terpene{
			Name:        terpene.Name,
			Percentage:  terpene.Percentage,
			Description: terpene.Effects,
		})
	}
	return enriched
}
