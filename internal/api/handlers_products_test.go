package api

import (
	"net/http"
	"testing"

	"github.com/terraincognita07/stashlog/internal/models"
	"github.com/terraincognita07/stashlog/internal/services"
)

func createTestProduct(t *testing.T, ta *testApp, body map[string]any) models.Product {
	t.Helper()

	response := ta.do(t, http.MethodPost, "/api/products", body)
	assertStatus(t, response, http.StatusCreated)

	var product models.Product
	decodeJSON(t, response.Body, &product)
	return product
}

func TestCreateProductAppliesDefaults(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t)
	product := createTestProduct(t, ta, map[string]any{
		"brand_name":   "  Acme ",
		"product_name": "Night Cart",
		"tags":         []string{"Sleep", " ", "Calm"},
	})

	if product.ID == "" {
		t.Fatal("expected generated id")
	}
	if product.Category != models.CategoryFlower {
		t.Fatalf("expected default category Flower, got %q", product.Category)
	}
	if product.BrandName != "Acme" {
		t.Fatalf("expected trimmed brand, got %q", product.BrandName)
	}
	if len(product.Tags) != 2 {
		t.Fatalf("expected blank tag to be dropped, got %#v", product.Tags)
	}
	if !product.CreatedAt.Equal(testNow) {
		t.Fatalf("expected created_at %s, got %s", testNow, product.CreatedAt)
	}
}

func TestCreateProductValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    map[string]any
		wantErr string
	}{
		{
			name:    "missing product name",
			body:    map[string]any{"brand_name": "Acme"},
			wantErr: services.ErrProductNameRequired.Error(),
		},
		{
			name:    "missing brand",
			body:    map[string]any{"product_name": "Night Cart", "category": "Vape"},
			wantErr: services.ErrBrandNameRequired.Error(),
		},
		{
			name:    "unknown category",
			body:    map[string]any{"product_name": "Night Cart", "brand_name": "Acme", "category": "Tincture"},
			wantErr: services.ErrInvalidCategory.Error(),
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			ta := newTestApp(t)
			response := ta.do(t, http.MethodPost, "/api/products", testCase.body)
			assertStatus(t, response, http.StatusBadRequest)
			if got := readAPIError(t, response.Body); got != testCase.wantErr {
				t.Fatalf("expected error %q, got %q", testCase.wantErr, got)
			}
		})
	}
}

func TestProductLifecycle(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t)
	created := createTestProduct(t, ta, map[string]any{
		"brand_name":   "Acme",
		"product_name": "Night Cart",
		"category":     "Vape",
		"tags":         []string{"Sleep"},
	})

	update := ta.do(t, http.MethodPut, "/api/products/"+created.ID, map[string]any{
		"brand_name":   "Acme",
		"product_name": "Night Cart v2",
		"category":     "Vape",
		"tags":         []string{"Sleep", "Calm"},
	})
	assertStatus(t, update, http.StatusOK)
	var updated models.Product
	decodeJSON(t, update.Body, &updated)
	if updated.ID != created.ID || updated.ProductName != "Night Cart v2" {
		t.Fatalf("unexpected updated product: %#v", updated)
	}

	detail := ta.do(t, http.MethodGet, "/api/products/"+created.ID, nil)
	assertStatus(t, detail, http.StatusOK)
	var payload services.ProductDetail
	decodeJSON(t, detail.Body, &payload)
	if payload.Product.ProductName != "Night Cart v2" {
		t.Fatalf("expected updated name in detail, got %q", payload.Product.ProductName)
	}
	if payload.Rating.Rated || payload.Rating.Label() != "no ratings" {
		t.Fatalf("expected unrated product, got %#v", payload.Rating)
	}

	remove := ta.do(t, http.MethodDelete, "/api/products/"+created.ID, nil)
	assertStatus(t, remove, http.StatusNoContent)

	missing := ta.do(t, http.MethodGet, "/api/products/"+created.ID, nil)
	assertStatus(t, missing, http.StatusNotFound)
	if got := readAPIError(t, missing.Body); got != "product not found" {
		t.Fatalf("expected not found error, got %q", got)
	}
}

func TestUpdateMissingProductReturnsNotFound(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t)
	response := ta.do(t, http.MethodPut, "/api/products/missing", map[string]any{
		"brand_name":   "Acme",
		"product_name": "Ghost",
	})
	assertStatus(t, response, http.StatusNotFound)
}

func TestListProductsFiltersAndTags(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t)
	createTestProduct(t, ta, map[string]any{
		"brand_name": "Acme", "product_name": "Night Cart", "category": "Vape", "tags": []string{"Sleep"},
	})
	createTestProduct(t, ta, map[string]any{
		"brand_name": "Kiva", "product_name": "Gummies", "category": "Edible", "tags": []string{"Social", "Sleep"},
	})

	tests := []struct {
		name  string
		path  string
		names []string
	}{
		{name: "all", path: "/api/products", names: []string{"Night Cart", "Gummies"}},
		{name: "by category", path: "/api/products?category=Edible", names: []string{"Gummies"}},
		{name: "by query on brand", path: "/api/products?q=acm", names: []string{"Night Cart"}},
		{name: "by tag", path: "/api/products?tag=Sleep", names: []string{"Night Cart", "Gummies"}},
		{name: "no match", path: "/api/products?tag=Focus", names: []string{}},
	}

	for _, testCase := range tests {
		response := ta.do(t, http.MethodGet, testCase.path, nil)
		assertStatus(t, response, http.StatusOK)

		var products []models.Product
		decodeJSON(t, response.Body, &products)
		if len(products) != len(testCase.names) {
			t.Fatalf("%s: expected %d products, got %d", testCase.name, len(testCase.names), len(products))
		}
		for i, name := range testCase.names {
			if products[i].ProductName != name {
				t.Fatalf("%s: product %d = %q, want %q", testCase.name, i, products[i].ProductName, name)
			}
		}
	}

	invalid := ta.do(t, http.MethodGet, "/api/products?category=Tincture", nil)
	assertStatus(t, invalid, http.StatusBadRequest)

	tagsResponse := ta.do(t, http.MethodGet, "/api/products/tags", nil)
	assertStatus(t, tagsResponse, http.StatusOK)
	var tags []string
	decodeJSON(t, tagsResponse.Body, &tags)
	if len(tags) != 2 || tags[0] != "Sleep" || tags[1] != "Social" {
		t.Fatalf("expected sorted distinct tags, got %#v", tags)
	}
}

func TestStoreFailureReturnsServerError(t *testing.T) {
	t.Parallel()

	ta := newTestAppWithOptions(t, testAppOptions{store: failingStore{}})
	response := ta.do(t, http.MethodGet, "/api/products", nil)
	assertStatus(t, response, http.StatusInternalServerError)
	if got := readAPIError(t, response.Body); got != "failed to list products" {
		t.Fatalf("expected storage error message, got %q", got)
	}
}

func TestUnknownRouteReturnsJSONNotFound(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t)
	response := ta.do(t, http.MethodGet, "/api/nope", nil)
	assertStatus(t, response, http.StatusNotFound)
	if got := readAPIError(t, response.Body); got != "not found" {
		t.Fatalf("expected not found error, got %q", got)
	}
}
