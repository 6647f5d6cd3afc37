package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skinpro/backend/config"
	"github.com/skinpro/backend/internal/catalog"
	"github.com/skinpro/backend/internal/domain"
	"github.com/skinpro/backend/internal/infrastructure/cache"
	"github.com/skinpro/backend/internal/infrastructure/summarizer"
	"github.com/skinpro/backend/internal/usecase"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	// Set Gin to test mode once for all tests
	gin.SetMode(gin.TestMode)

	os.Exit(m.Run())
}

const testCatalogCSV = "Product Name,Product Brand,Skin Type Compatibility,Scent,Effectiveness,Ease of Use,Reviews,Image Link,Product Link\n" +
	"Rose Dew Cream,GlowCo,Dry,Rose,High,Easy,gentle rose cream soothes dry flaky skin.,img1,link1\n" +
	"Desert Balm,AridCo,Dry,Unscented,Medium,Easy,rich balm heals dry cracked skin overnight.,img2,link2\n" +
	"Citrus Foam,ZestLab,Oily,Citrus,High,Moderate,foaming citrus wash controls oily shine.,img3,link3\n"

// setupTestRouter wires a full stack over an in-memory catalog with the
// offline excerpt summarizer
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:3000", "https://app.skinpro.*"},
		},
	}

	cat, err := catalog.Parse(strings.NewReader(testCatalogCSV))
	if err != nil {
		t.Fatalf("parsing test catalog: %v", err)
	}

	service := usecase.NewRecommendService(
		cat,
		summarizer.NewExcerptSummarizer(200),
		cache.NewMemoryCache(),
		usecase.RecommendServiceConfig{},
	)

	handler := NewHandler(service, cat, time.Minute)
	return SetupRouter(cfg, handler)
}

// recommendationResponse mirrors the JSON shape of recommendation endpoints
type recommendationResponse struct {
	Products []domain.RankedProduct `json:"products"`
	Count    int                    `json:"count"`
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, _ := http.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeRecommendation(t *testing.T, w *httptest.ResponseRecorder) recommendationResponse {
	t.Helper()
	var resp recommendationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	return resp
}

func TestHealthCheckEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", response["status"])
	}
	if response["service"] != "skinpro-backend" {
		t.Errorf("service = %v, want skinpro-backend", response["service"])
	}
}

func TestListProductsEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	req, _ := http.NewRequest("GET", "/api/v1/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var response struct {
		Products []string `json:"products"`
		Count    int      `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Count != 3 || len(response.Products) != 3 {
		t.Errorf("Count = %d, Products = %v, want 3 names", response.Count, response.Products)
	}
	if response.Products[0] != "Rose Dew Cream" {
		t.Errorf("Products[0] = %q, want catalog order", response.Products[0])
	}
}

func TestFilterRecommendationEndpoint(t *testing.T) {
	t.Run("returns ranked matches", func(t *testing.T) {
		router := setupTestRouter(t)

		w := postJSON(t, router, "/api/v1/recommendations/filter",
			`{"skinType": "Dry", "scent": "All", "productName": "Rose Dew Cream", "topN": 10}`)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d (body: %s)", w.Code, http.StatusOK, w.Body.String())
		}

		resp := decodeRecommendation(t, w)
		if resp.Count != 1 || len(resp.Products) != 1 {
			t.Fatalf("Count = %d, want 1", resp.Count)
		}
		if resp.Products[0].Name != "Desert Balm" {
			t.Errorf("Products[0].Name = %q, want Desert Balm", resp.Products[0].Name)
		}
		if resp.Products[0].Summary == "" {
			t.Error("Summary is empty, want excerpt")
		}
	})

	t.Run("no matches renders an empty list, not an error", func(t *testing.T) {
		router := setupTestRouter(t)

		w := postJSON(t, router, "/api/v1/recommendations/filter",
			`{"skinType": "Sensitive", "scent": "All"}`)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		resp := decodeRecommendation(t, w)
		if resp.Count != 0 || len(resp.Products) != 0 {
			t.Errorf("Count = %d, Products = %v, want empty", resp.Count, resp.Products)
		}
	})

	t.Run("missing skin type is a bad request", func(t *testing.T) {
		router := setupTestRouter(t)

		w := postJSON(t, router, "/api/v1/recommendations/filter", `{"scent": "All"}`)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		router := setupTestRouter(t)

		w := postJSON(t, router, "/api/v1/recommendations/filter", `{not json`)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}

func TestProductRecommendationEndpoint(t *testing.T) {
	t.Run("returns ranked products for a known reference", func(t *testing.T) {
		router := setupTestRouter(t)

		w := postJSON(t, router, "/api/v1/recommendations/product",
			`{"productName": "Rose Dew Cream", "topN": 10}`)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		resp := decodeRecommendation(t, w)
		if resp.Count != 2 {
			t.Fatalf("Count = %d, want 2", resp.Count)
		}
		for _, p := range resp.Products {
			if p.Name == "Rose Dew Cream" {
				t.Error("reference product appeared in its own ranking")
			}
		}
	})

	t.Run("unknown reference renders an empty list", func(t *testing.T) {
		router := setupTestRouter(t)

		w := postJSON(t, router, "/api/v1/recommendations/product",
			`{"productName": "Nonexistent Product X", "topN": 10}`)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		resp := decodeRecommendation(t, w)
		if resp.Count != 0 || len(resp.Products) != 0 {
			t.Errorf("Count = %d, want 0", resp.Count)
		}
	})

	t.Run("missing product name is a bad request", func(t *testing.T) {
		router := setupTestRouter(t)

		w := postJSON(t, router, "/api/v1/recommendations/product", `{"topN": 5}`)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}

func TestCORS(t *testing.T) {
	t.Run("allows configured origin", func(t *testing.T) {
		router := setupTestRouter(t)

		req, _ := http.NewRequest("OPTIONS", "/api/v1/recommendations/filter", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusNoContent)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
			t.Errorf("Allow-Origin = %q, want http://localhost:3000", got)
		}
	})

	t.Run("wildcard suffix matches by prefix", func(t *testing.T) {
		router := setupTestRouter(t)

		req, _ := http.NewRequest("GET", "/health", nil)
		req.Header.Set("Origin", "https://app.skinpro.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got == "" {
			t.Error("Allow-Origin not set for wildcard-matched origin")
		}
	})

	t.Run("rejects unknown origin", func(t *testing.T) {
		router := setupTestRouter(t)

		req, _ := http.NewRequest("GET", "/health", nil)
		req.Header.Set("Origin", "https://evil.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Allow-Origin = %q, want unset", got)
		}
	})
}
