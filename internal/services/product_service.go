package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/stashlog/internal/models"
)

const (
	DefaultFormFactor            = "Unknown"
	DefaultPsychedelicFormFactor = "Capsule"
	DefaultPsychedelicBrand      = "Unknown Source"
)

var (
	ErrProductNameRequired = errors.New("product name is required")
	ErrBrandNameRequired   = errors.New("brand name is required")
	ErrInvalidCategory     = errors.New("invalid product category")
)

type ProductStore interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (models.Product, error)
	SaveProduct(ctx context.Context, product models.Product) error
	DeleteProduct(ctx context.Context, id string) error
	ListSessions(ctx context.Context, productID string) ([]models.Session, error)
}

type ProductFilter struct {
	Category models.Category
	Query    string
	Tag      string
}

type ProductDetail struct {
	Product  models.Product   `json:"product"`
	Rating   ProductRating    `json:"rating"`
	Sessions []models.Session `json:"sessions"`
}

type ProductService struct {
	store ProductStore
	newID func() string
}

func NewProductService(store ProductStore) *ProductService {
	return &ProductService{store: store, newID: uuid.NewString}
}

func (service *ProductService) List(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	products, err := service.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	tag := strings.TrimSpace(filter.Tag)
	filtered := make([]models.Product, 0, len(products))
	for _, product := range products {
		if filter.Category != "" && product.Category != filter.Category {
			continue
		}
		if tag != "" && !product.HasTag(tag) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(product.BrandName), query) &&
			!strings.Contains(strings.ToLower(product.ProductName), query) {
			continue
		}
		filtered = append(filtered, product)
	}
	return filtered, nil
}

// DistinctTags lists every tag used in the catalog, alphabetically.
func (service *ProductService) DistinctTags(ctx context.Context) ([]string, error) {
	products, err := service.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	tags := DistinctProductTags(products)
	sort.Strings(tags)
	return tags, nil
}

func (service *ProductService) Detail(ctx context.Context, id string) (ProductDetail, error) {
	product, err := service.store.GetProduct(ctx, id)
	if err != nil {
		return ProductDetail{}, err
	}
	sessions, err := service.store.ListSessions(ctx, id)
	if err != nil {
		return ProductDetail{}, err
	}
	return ProductDetail{
		Product:  product,
		Rating:   ProductAverageRating(id, sessions),
		Sessions: sessions,
	}, nil
}

func (service *ProductService) Create(ctx context.Context, draft models.Product, now time.Time) (models.Product, error) {
	product, err := normalizeProductDraft(draft, true)
	if err != nil {
		return models.Product{}, err
	}
	product.ID = service.newID()
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := service.store.SaveProduct(ctx, product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// Update replaces the stored product in place and keeps its creation time.
func (service *ProductService) Update(ctx context.Context, id string, draft models.Product, now time.Time) (models.Product, error) {
	existing, err := service.store.GetProduct(ctx, id)
	if err != nil {
		return models.Product{}, err
	}

	product, err := normalizeProductDraft(draft, false)
	if err != nil {
		return models.Product{}, err
	}
	product.ID = existing.ID
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = now

	if err := service.store.SaveProduct(ctx, product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

func (service *ProductService) Delete(ctx context.Context, id string) error {
	return service.store.DeleteProduct(ctx, id)
}

func normalizeProductDraft(draft models.Product, isNew bool) (models.Product, error) {
	product := draft
	if product.Category == "" {
		product.Category = models.CategoryFlower
	}
	if !product.Category.Valid() {
		return models.Product{}, ErrInvalidCategory
	}

	product.ProductName = strings.TrimSpace(product.ProductName)
	if product.ProductName == "" {
		return models.Product{}, ErrProductNameRequired
	}

	psychedelic := product.Category == models.CategoryPsychedelicOther
	product.BrandName = strings.TrimSpace(product.BrandName)
	if product.BrandName == "" {
		if !psychedelic {
			return models.Product{}, ErrBrandNameRequired
		}
		product.BrandName = DefaultPsychedelicBrand
	}

	product.FlavorOrVariant = strings.TrimSpace(product.FlavorOrVariant)
	product.FormFactor = strings.TrimSpace(product.FormFactor)
	if product.FormFactor == "" {
		product.FormFactor = DefaultFormFactor
		if psychedelic && isNew {
			product.FormFactor = DefaultPsychedelicFormFactor
		}
	}

	product.StrainType = models.ParseStrainType(string(product.StrainType))
	product.DosageDescription = strings.TrimSpace(product.DosageDescription)
	product.Source = strings.TrimSpace(product.Source)
	product.Tags = normalizeTags(product.Tags)
	product.Terpenes = normalizeTerpenes(product.Terpenes)
	return product, nil
}

// normalizeTags trims labels and drops empty ones. Duplicates are kept.
func normalizeTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	for _, tag := range raw {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}

func normalizeTerpenes(raw []models.Terpene) []models.Terpene {
	terpenes := make([]models.Terpene, 0, len(raw))
	for _, terpene := range raw {
		terpene.Name = strings.TrimSpace(terpene.Name)
		if terpene.Name == "" {
			continue
		}
		terpene.Description = strings.TrimSpace(terpene.Description)
		terpenes = append(terpenes, terpene)
	}
	return terpenes
}

// SeedSamples stores the sample catalog when no products exist yet.
func (service *ProductService) SeedSamples(ctx context.Context, now time.Time) (int, error) {
	products, err := service.store.ListProducts(ctx)
	if err != nil {
		return 0, err
	}
	if len(products) > 0 {
		return 0, nil
	}

	seeded := 0
	for _, product := range models.SeedProducts(now) {
		if err := service.store.SaveProduct(ctx, product); err != nil {
			return seeded, err
		}
		seeded++
	}
	return seeded, nil
}
