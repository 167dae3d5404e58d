package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/humngry/meal-tracker/internal/domain"
)

func TestOpenFoodFacts_Search(t *testing.T) {
	var receivedQuery string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedQuery = r.URL.Query().Get("search_terms")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"products": [
			{"code": "111", "product_name": "Oatmeal Deluxe Extra Long Name Cereal", "brands": "BrandCo",
			 "nutriments": {"energy-kcal_100g": 370, "proteins_100g": 13}},
			{"code": "222", "product_name": "Oatmeal", "brands": "",
			 "nutriscore_grade": "a", "image_url": "http://img/oatmeal.jpg",
			 "nutriments": {"energy-kcal_100g": 380, "proteins_100g": 14, "fiber_100g": 10}},
			{"code": "333", "product_name": "", "brands": "Ghost"}
		]}`))
	}))
	defer server.Close()

	c := NewOpenFoodFactsClient(server.URL)

	products, err := c.Search(context.Background(), "oatmeal")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if receivedQuery != "oatmeal" {
		t.Errorf("expected search_terms oatmeal, got %s", receivedQuery)
	}

	// The nameless product is dropped; the exact unbranded match ranks first.
	if len(products) != 2 {
		t.Fatalf("Search() returned %d products, want 2", len(products))
	}
	if products[0].ID != "222" {
		t.Errorf("expected exact match first, got %s", products[0].ID)
	}
	if products[0].Nutriments.Fiber100g == nil || *products[0].Nutriments.Fiber100g != 10 {
		t.Error("expected fiber to be carried over")
	}
	if products[0].ImageURL != "http://img/oatmeal.jpg" {
		t.Errorf("expected image URL, got %s", products[0].ImageURL)
	}
}

func TestOpenFoodFacts_Search_ShortQuery(t *testing.T) {
	c := NewOpenFoodFactsClient("http://unused.invalid")

	products, err := c.Search(context.Background(), " a ")
	if err != nil {
		t.Errorf("Search() error = %v", err)
	}
	if products != nil {
		t.Errorf("expected no results for short query, got %v", products)
	}
}

func TestOpenFoodFacts_Search_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewOpenFoodFactsClient(server.URL)

	if _, err := c.Search(context.Background(), "oatmeal"); err == nil {
		t.Error("expected error on server failure")
	}
}

func TestOpenFoodFacts_GetByBarcode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v2/product/737628064502":
			w.Write([]byte(`{"status": 1, "product": {
				"code": "737628064502", "product_name": "Rice Noodles", "brands": "Thai Kitchen",
				"serving_size": "100g",
				"nutriments": {"energy-kcal": 350, "proteins": 7}
			}}`))
		default:
			w.Write([]byte(`{"status": 0}`))
		}
	}))
	defer server.Close()

	c := NewOpenFoodFactsClient(server.URL)

	product, err := c.GetByBarcode(context.Background(), "737628064502")
	if err != nil {
		t.Fatalf("GetByBarcode() error = %v", err)
	}
	if product.Name != "Rice Noodles" {
		t.Errorf("expected Rice Noodles, got %s", product.Name)
	}
	// Per-100g fields are absent; the plain nutriment fields fill in.
	if product.Nutriments.EnergyKcal100g == nil || *product.Nutriments.EnergyKcal100g != 350 {
		t.Error("expected energy fallback to plain field")
	}

	_, err = c.GetByBarcode(context.Background(), "000000000000")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown barcode, got %v", err)
	}
}
