package models

import "time"

type Category string

const (
	CategoryFlower           Category = "Flower"
	CategoryEdible           Category = "Edible"
	CategoryVape             Category = "Vape"
	CategoryConcentrate      Category = "Concentrate"
	CategoryPsychedelicOther Category = "Psychedelic (Other)"
)

func Categories() []Category {
	return []Category{
		CategoryFlower,
		CategoryEdible,
		CategoryVape,
		CategoryConcentrate,
		CategoryPsychedelicOther,
	}
}

func (category Category) Valid() bool {
	for _, known := range Categories() {
		if category == known {
			return true
		}
	}
	return false
}

type StrainType string

const (
	StrainIndica  StrainType = "Indica"
	StrainSativa  StrainType = "Sativa"
	StrainHybrid  StrainType = "Hybrid"
	StrainUnknown StrainType = "Unknown"
)

// ParseStrainType maps free text onto the closed strain enumeration.
func ParseStrainType(raw string) StrainType {
	switch StrainType(raw) {
	case StrainIndica, StrainSativa, StrainHybrid:
		return StrainType(raw)
	default:
		return StrainUnknown
	}
}

type Terpene struct {
	Name        string   `json:"name"`
	Percentage  *float64 `json:"percentage,omitempty"`
	Description string   `json:"description,omitempty"`
}

type Product struct {
	ID                string     `json:"id"`
	Category          Category   `json:"category"`
	BrandName         string     `json:"brand_name"`
	ProductName       string     `json:"product_name"`
	FlavorOrVariant   string     `json:"flavor_or_variant,omitempty"`
	FormFactor        string     `json:"form_factor"`
	THCMgPerUnit      *float64   `json:"thc_mg_per_unit,omitempty"`
	CBDMgPerUnit      *float64   `json:"cbd_mg_per_unit,omitempty"`
	DosageDescription string     `json:"dosage_description,omitempty"`
	StrainType        StrainType `json:"strain_type"`
	Tags              []string   `json:"tags"`
	Source            string     `json:"source,omitempty"`
	Terpenes          []Terpene  `json:"terpenes"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (product Product) HasTag(tag string) bool {
	for _, candidate := range product.Tags {
		if candidate == tag {
			return true
		}
	}
	return false
}

// DisplayName prefers the variant, matching how picks are shown in the dashboard.
func (product Product) DisplayName() string {
	if product.FlavorOrVariant != "" {
		return product.FlavorOrVariant
	}
	return product.ProductName
}
