package models

import "time"

func floatPtr(value float64) *float64 {
	return &value
}

// SeedProducts returns the sample stash used by the seed command.
func SeedProducts(now time.Time) []Product {
	return []Product{
		{
			ID:          "1",
			Category:    CategoryFlower,
			BrandName:   "Blue River",
			ProductName: "Blue Dream",
			FormFactor:  "Flower",
			StrainType:  StrainSativa,
			// Flower potency is a percentage, not milligrams.
			THCMgPerUnit: floatPtr(18),
			Tags:         []string{"Creative", "Social", "Daytime"},
			Terpenes: []Terpene{
				{Name: "Myrcene", Percentage: floatPtr(0.8), Description: "Relaxing"},
				{Name: "Pinene", Percentage: floatPtr(0.3), Description: "Alertness"},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:              "2",
			Category:        CategoryEdible,
			BrandName:       "Wyld",
			ProductName:     "Elderberry Gummies",
			FlavorOrVariant: "Elderberry",
			FormFactor:      "Gummy",
			THCMgPerUnit:    floatPtr(10),
			CBDMgPerUnit:    floatPtr(5),
			StrainType:      StrainIndica,
			Tags:            []string{"Sleep", "Relax", "Body-High"},
			Terpenes:        []Terpene{{Name: "Linalool", Description: "Calming"}},
			CreatedAt:       now,
			UpdatedAt:       now,
		},
	}
}
