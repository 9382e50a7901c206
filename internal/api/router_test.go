package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockfn/internal/domain/dto"
	"github.com/guttosm/stockfn/internal/service"
	"github.com/guttosm/stockfn/internal/storage"
)

func TestNewRouter_WiringAndMiddlewares(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := storage.NewMemoryRepository(service.DefaultStock)
	r := NewRouter(NewHandler(service.NewStockService(repo)), DefaultRouterOptions)

	req := httptest.NewRequest(http.MethodGet, "/showStock?code=5168", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("unexpected content type %q", ct)
	}

	var out dto.StockResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if out.Doc != service.DefaultStock {
		t.Fatalf("unexpected body: %+v", out)
	}
}

func TestNewRouter_EndToEndFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := storage.NewMemoryRepository()
	r := NewRouter(NewHandler(service.NewStockService(repo)), RouterOptions{})

	get := func(path string) map[string]json.RawMessage {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status %d", path, w.Code)
		}
		return decodeBody(t, w.Body.Bytes())
	}

	if body := get("/showStock?code=5168"); string(body["error"]) != `"No record found!"` {
		t.Fatalf("show before add: %v", body)
	}
	if body := get("/addStock?code=5168"); body["doc"] == nil {
		t.Fatalf("add: %v", body)
	}
	if body := get("/addStock?code=5168"); string(body["error"]) != `"There is a record found!"` {
		t.Fatalf("second add: %v", body)
	}

	body := get("/updateStock?code=5168")
	var doc struct {
		Price float64 `json:"price"`
		Name  string  `json:"name"`
	}
	if err := json.Unmarshal(body["doc"], &doc); err != nil || doc.Price != 9.10 || doc.Name != service.DefaultStock.Name {
		t.Fatalf("update: %v (%v)", body, err)
	}

	if repo.Len() != 1 {
		t.Fatalf("expected exactly one stored stock, got %d", repo.Len())
	}
}
