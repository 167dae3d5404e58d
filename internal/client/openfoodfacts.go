// Package client holds HTTP clients for the external food and recipe
// databases. Both APIs are public and unauthenticated; failures degrade to
// empty results at the call sites that can tolerate them.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/humngry/meal-tracker/internal/domain"
)

const (
	defaultOpenFoodFactsURL = "https://world.openfoodfacts.net"

	// searchPageSize is how many raw products to pull before scoring.
	searchPageSize = 30

	// maxSearchResults caps the scored results returned to callers.
	maxSearchResults = 10
)

// OpenFoodFactsClient searches the OpenFoodFacts database.
type OpenFoodFactsClient interface {
	// Search returns up to ten products ranked by relevance to the query.
	Search(ctx context.Context, query string) ([]domain.FoodProduct, error)
	// GetByBarcode looks a product up by its barcode. Returns ErrNotFound
	// if the barcode is unknown.
	GetByBarcode(ctx context.Context, barcode string) (*domain.FoodProduct, error)
}

type openFoodFactsClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewOpenFoodFactsClient creates a client for the OpenFoodFacts API.
// An empty baseURL uses the public instance.
func NewOpenFoodFactsClient(baseURL string) OpenFoodFactsClient {
	if baseURL == "" {
		baseURL = defaultOpenFoodFactsURL
	}
	return &openFoodFactsClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// offProduct mirrors the subset of the OpenFoodFacts product payload we read.
type offProduct struct {
	Code            string        `json:"code"`
	ProductName     string        `json:"product_name"`
	GenericName     string        `json:"generic_name"`
	Brands          string        `json:"brands"`
	ImageURL        string        `json:"image_url"`
	ImageFrontURL   string        `json:"image_front_url"`
	ImageSmallURL   string        `json:"image_small_url"`
	ServingSize     string        `json:"serving_size"`
	NutriscoreGrade string        `json:"nutriscore_grade"`
	Nutriments      offNutriments `json:"nutriments"`
}

type offNutriments struct {
	EnergyKcal100g    *float64 `json:"energy-kcal_100g"`
	EnergyKcal        *float64 `json:"energy-kcal"`
	Proteins100g      *float64 `json:"proteins_100g"`
	Proteins          *float64 `json:"proteins"`
	Carbohydrates100g *float64 `json:"carbohydrates_100g"`
	Carbohydrates     *float64 `json:"carbohydrates"`
	Fat100g           *float64 `json:"fat_100g"`
	Fat               *float64 `json:"fat"`
	Fiber100g         *float64 `json:"fiber_100g"`
	Fiber             *float64 `json:"fiber"`
}

func (n offNutriments) toDomain() domain.Nutriments {
	return domain.Nutriments{
		EnergyKcal100g:    firstNonNil(n.EnergyKcal100g, n.EnergyKcal),
		Proteins100g:      firstNonNil(n.Proteins100g, n.Proteins),
		Carbohydrates100g: firstNonNil(n.Carbohydrates100g, n.Carbohydrates),
		Fat100g:           firstNonNil(n.Fat100g, n.Fat),
		Fiber100g:         firstNonNil(n.Fiber100g, n.Fiber),
	}
}

func firstNonNil(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func (p offProduct) toDomain() domain.FoodProduct {
	image := p.ImageURL
	if image == "" {
		image = p.ImageFrontURL
	}
	if image == "" {
		image = p.ImageSmallURL
	}
	name := p.ProductName
	if name == "" {
		name = "Unknown Product"
	}
	return domain.FoodProduct{
		ID:              p.Code,
		Name:            name,
		Brands:          p.Brands,
		ImageURL:        image,
		Nutriments:      p.Nutriments.toDomain(),
		ServingSize:     p.ServingSize,
		NutriscoreGrade: p.NutriscoreGrade,
	}
}

func (c *openFoodFactsClient) Search(ctx context.Context, query string) ([]domain.FoodProduct, error) {
	if len(strings.TrimSpace(query)) < 2 {
		return nil, nil
	}

	params := url.Values{}
	params.Set("search_terms", query)
	params.Set("search_simple", "1")
	params.Set("action", "process")
	params.Set("json", "1")
	params.Set("page_size", fmt.Sprintf("%d", searchPageSize))
	params.Set("sort_by", "unique_scans_n")

	endpoint := fmt.Sprintf("%s/cgi/search.pl?%s", c.baseURL, params.Encode())

	var payload struct {
		Products []offProduct `json:"products"`
	}
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	queryLower := strings.ToLower(strings.TrimSpace(query))

	type scoredProduct struct {
		score   float64
		product domain.FoodProduct
	}

	var scored []scoredProduct
	for _, p := range payload.Products {
		if p.ProductName == "" {
			continue
		}

		nameLower := strings.ToLower(p.ProductName)
		genericLower := strings.ToLower(p.GenericName)

		// Prefer exact matches and simple unbranded products.
		score := 0.0
		if nameLower == queryLower || genericLower == queryLower {
			score += 100
		}
		if strings.HasPrefix(nameLower, queryLower) {
			score += 50
		}
		if strings.Contains(nameLower, queryLower) {
			score += 20
		}
		if strings.TrimSpace(p.Brands) == "" {
			score += 30
		}
		if bonus := 20 - float64(len(nameLower))/5; bonus > 0 {
			score += bonus
		}
		if p.NutriscoreGrade != "" {
			score += 10
		}
		if p.ImageURL != "" || p.ImageFrontURL != "" {
			score += 5
		}

		scored = append(scored, scoredProduct{score: score, product: p.toDomain()})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	if len(scored) > maxSearchResults {
		scored = scored[:maxSearchResults]
	}

	results := make([]domain.FoodProduct, 0, len(scored))
	for _, s := range scored {
		results = append(results, s.product)
	}
	return results, nil
}

func (c *openFoodFactsClient) GetByBarcode(ctx context.Context, barcode string) (*domain.FoodProduct, error) {
	endpoint := fmt.Sprintf("%s/api/v2/product/%s", c.baseURL, url.PathEscape(barcode))

	var payload struct {
		Status  int         `json:"status"`
		Product *offProduct `json:"product"`
	}
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	if payload.Status != 1 || payload.Product == nil {
		return nil, domain.ErrNotFound
	}

	product := payload.Product.toDomain()
	if product.ID == "" {
		product.ID = barcode
	}
	return &product, nil
}

func (c *openFoodFactsClient) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("openfoodfacts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("openfoodfacts returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode openfoodfacts response: %w", err)
	}
	return nil
}
