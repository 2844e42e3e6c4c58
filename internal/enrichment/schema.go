package enrichment

import "fmt"

func buildPrompt(request Request) string {
	variant := request.Variant
	if variant == "" {
		variant = "N/A"
	}
	return fmt.Sprintf(
		"Analyze this cannabis or psychedelic product and give a best-effort estimate of its profile from common market data.\n"+
			"Brand: %s\nProduct: %s\nVariant/Flavor: %s\n\nReturn JSON data.",
		request.Brand, request.ProductName, variant,
	)
}

type schema map[string]any

// responseSchema mirrors Result.
var responseSchema = schema{
	"type": "OBJECT",
	"properties": schema{
		"strain_type": schema{
			"type": "STRING",
			"enum": []string{"Indica", "Sativa", "Hybrid", "Unknown"},
		},
		"typical_thc_percentage": schema{"type": "NUMBER", "description": "Estimated THC percentage (0-100)"},
		"typical_cbd_percentage": schema{"type": "NUMBER", "description": "Estimated CBD percentage (0-100)"},
		"dominant_terpenes": schema{
			"type": "ARRAY",
			"items": schema{
				"type": "OBJECT",
				"properties": schema{
					"name":       schema{"type": "STRING"},
					"percentage": schema{"type": "NUMBER", "description": "Estimated percentage if known, else approximate"},
					"effects":    schema{"type": "STRING", "description": "Short description of effects, e.g. Calming"},
				},
				"required": []string{"name", "effects"},
			},
		},
		"suggested_tags": schema{
			"type":        "ARRAY",
			"items":       schema{"type": "STRING"},
			"description": "3-5 short tags like Sleepy, Social, Pain Relief",
		},
		"description_summary": schema{"type": "STRING", "description": "One sentence on what this product is known for."},
	},
	"required": []string{"strain_type", "dominant_terpenes", "suggested_tags", "description_summary"},
}

type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"responseMimeType"`
	ResponseSchema   schema `json:"responseSchema"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func newGenerateContentRequest(request Request) generateContentRequest {
	return generateContentRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: buildPrompt(request)}},
		}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   responseSchema,
		},
	}
}
