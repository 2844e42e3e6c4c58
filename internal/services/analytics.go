package services

import (
	"fmt"
	"sort"

	"github.com/terraincognita07/stashlog/internal/models"
)

const (
	TagStatLimit            = 5
	RecommendationLimit     = 4
	RecommendationMinRating = 7.0
)

type ProductRating struct {
	SessionCount int     `json:"session_count"`
	Average      float64 `json:"average"`
	Rated        bool    `json:"rated"`
}

func (rating ProductRating) Label() string {
	if !rating.Rated {
		return "no ratings"
	}
	return fmt.Sprintf("%.1f", rating.Average)
}

type TagStat struct {
	Tag        string          `json:"tag"`
	Average    float64         `json:"average"`
	Count      int             `json:"count"`
	TopProduct *models.Product `json:"top_product,omitempty"`
}

type Recommendation struct {
	Tag           string         `json:"tag"`
	Product       models.Product `json:"product"`
	AverageRating float64        `json:"average_rating"`
	SessionCount  int            `json:"session_count"`
}

type ratingTotals struct {
	total int
	count int
}

func (totals ratingTotals) mean() float64 {
	if totals.count == 0 {
		return 0
	}
	return float64(totals.total) / float64(totals.count)
}

// indexProducts maps ids to products. With duplicate ids the first one wins.
func indexProducts(products []models.Product) map[string]models.Product {
	index := make(map[string]models.Product, len(products))
	for _, product := range products {
		if _, exists := index[product.ID]; !exists {
			index[product.ID] = product
		}
	}
	return index
}

func ProductAverageRating(productID string, sessions []models.Session) ProductRating {
	totals := ratingTotals{}
	for _, session := range sessions {
		if session.ProductID == productID {
			totals.total += session.OverallRating
			totals.count++
		}
	}
	if totals.count == 0 {
		return ProductRating{}
	}
	return ProductRating{
		SessionCount: totals.count,
		Average:      roundToTenth(totals.mean()),
		Rated:        true,
	}
}

// OverallAverageRating averages every session, resolvable or not.
func OverallAverageRating(sessions []models.Session) float64 {
	totals := ratingTotals{}
	for _, session := range sessions {
		totals.total += session.OverallRating
		totals.count++
	}
	return roundToTenth(totals.mean())
}

type tagAccumulator struct {
	tag          string
	totals       ratingTotals
	productOrder []string
	perProduct   map[string]*ratingTotals
}

// RankTagEffectiveness accumulates every session rating under each tag of its
// product. A tag repeated on one product counts once per occurrence.
func RankTagEffectiveness(products []models.Product, sessions []models.Session) []TagStat {
	index := indexProducts(products)
	accumulators := make(map[string]*tagAccumulator)
	order := make([]*tagAccumulator, 0)

	for _, session := range sessions {
		product, ok := index[session.ProductID]
		if !ok {
			continue
		}
		for _, tag := range product.Tags {
			acc, exists := accumulators[tag]
			if !exists {
				acc = &tagAccumulator{tag: tag, perProduct: make(map[string]*ratingTotals)}
				accumulators[tag] = acc
				order = append(order, acc)
			}
			acc.totals.total += session.OverallRating
			acc.totals.count++

			productTotals, seen := acc.perProduct[product.ID]
			if !seen {
				productTotals = &ratingTotals{}
				acc.perProduct[product.ID] = productTotals
				acc.productOrder = append(acc.productOrder, product.ID)
			}
			productTotals.total += session.OverallRating
			productTotals.count++
		}
	}

	stats := make([]TagStat, 0, len(order))
	means := make(map[string]float64, len(order))
	for _, acc := range order {
		bestID := ""
		bestMean := 0.0
		for _, productID := range acc.productOrder {
			if mean := acc.perProduct[productID].mean(); mean > bestMean {
				bestMean = mean
				bestID = productID
			}
		}

		stat := TagStat{Tag: acc.tag, Count: acc.totals.count}
		if bestID != "" {
			top := index[bestID]
			stat.TopProduct = &top
		}
		means[acc.tag] = acc.totals.mean()
		stats = append(stats, stat)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return means[stats[i].Tag] > means[stats[j].Tag]
	})
	if len(stats) > TagStatLimit {
		stats = stats[:TagStatLimit]
	}
	for i := range stats {
		stats[i].Average = roundToTenth(means[stats[i].Tag])
	}
	return stats
}

// DistinctProductTags lists tags in first-seen order across products.
func DistinctProductTags(products []models.Product) []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, product := range products {
		for _, tag := range product.Tags {
			if _, exists := seen[tag]; exists {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	return tags
}

// BuildRecommendations picks, per tag, the carrying product with the strictly
// highest mean rating and keeps it when the mean reaches the threshold.
func BuildRecommendations(products []models.Product, sessions []models.Session) []Recommendation {
	totalsByProduct := make(map[string]ratingTotals)
	for _, session := range sessions {
		totals := totalsByProduct[session.ProductID]
		totals.total += session.OverallRating
		totals.count++
		totalsByProduct[session.ProductID] = totals
	}

	type candidate struct {
		recommendation Recommendation
		mean           float64
	}
	candidates := make([]candidate, 0)

	for _, tag := range DistinctProductTags(products) {
		var best *models.Product
		bestMean := 0.0
		bestCount := 0

		for index := range products {
			product := &products[index]
			if !product.HasTag(tag) {
				continue
			}
			totals := totalsByProduct[product.ID]
			if totals.count == 0 {
				continue
			}
			if mean := totals.mean(); mean > bestMean {
				best = product
				bestMean = mean
				bestCount = totals.count
			}
		}

		if best == nil || bestMean < RecommendationMinRating {
			continue
		}
		candidates = append(candidates, candidate{
			recommendation: Recommendation{
				Tag:           tag,
				Product:       *best,
				AverageRating: roundToTenth(bestMean),
				SessionCount:  bestCount,
			},
			mean: bestMean,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].mean > candidates[j].mean
	})

	limit := min(len(candidates), RecommendationLimit)
	recommendations := make([]Recommendation, 0, limit)
	for _, entry := range candidates[:limit] {
		recommendations = append(recommendations, entry.recommendation)
	}
	return recommendations
}
