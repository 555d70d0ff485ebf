package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	cartsvc "github.com/ballonsurprise/backend/internal/cart"
	"github.com/ballonsurprise/backend/internal/catalog"
)

func newCartHandlerFixture(t *testing.T) cartsvc.Service {
	t.Helper()
	svc, err := cartsvc.NewService(cartsvc.NewMemoryRepository(), catalog.NewService())
	if err != nil {
		t.Fatalf("build cart service: %v", err)
	}
	return svc
}

func TestCartGetEmpty(t *testing.T) {
	svc := newCartHandlerFixture(t)
	handler := CartGet(svc, nil)

	req := deviceRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data cartsvc.View `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ItemCount != 0 || envelope.Data.TotalPrice != 0 {
		t.Fatalf("expected empty cart got %+v", envelope.Data)
	}
}

func TestCartAddPredefinedFreezesPrice(t *testing.T) {
	svc := newCartHandlerFixture(t)
	handler := CartAddPredefined(svc, nil)

	req := deviceRequest(http.MethodPost, "/api/v1/cart/items/predefined", []byte(`{"category":"anniversary","bundleId":"anniversary-classic"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data cartsvc.LineItem `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.TotalPrice != 25000 {
		t.Fatalf("expected frozen price 25000 got %d", envelope.Data.TotalPrice)
	}
}

func TestCartAddPredefinedUnknownBundle(t *testing.T) {
	svc := newCartHandlerFixture(t)
	handler := CartAddPredefined(svc, nil)

	req := deviceRequest(http.MethodPost, "/api/v1/cart/items/predefined", []byte(`{"category":"anniversary","bundleId":"missing"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCartAddCustomRoseRequired(t *testing.T) {
	svc := newCartHandlerFixture(t)
	handler := CartAddCustom(svc, nil)

	req := deviceRequest(http.MethodPost, "/api/v1/cart/items/custom", []byte(`{"category":"birth","chocolateIds":["patchi"]}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}

	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Message != "rose required" {
		t.Fatalf("unexpected message %q", envelope.Error.Message)
	}
}

func TestCartAddCustomComputesTotal(t *testing.T) {
	svc := newCartHandlerFixture(t)
	handler := CartAddCustom(svc, nil)

	req := deviceRequest(http.MethodPost, "/api/v1/cart/items/custom", []byte(`{"category":"birth","chocolateIds":["patchi"],"roseId":"red","bear":true}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data cartsvc.LineItem `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.TotalPrice != 39000 {
		t.Fatalf("expected 39000 got %d", envelope.Data.TotalPrice)
	}
}

func TestCartRemoveItemAbsentStillSucceeds(t *testing.T) {
	svc := newCartHandlerFixture(t)
	router := chi.NewRouter()
	router.Delete("/api/v1/cart/items/{itemId}", CartRemoveItem(svc, nil))

	req := deviceRequest(http.MethodDelete, "/api/v1/cart/items/"+uuid.NewString(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestCartRemoveItemRejectsBadID(t *testing.T) {
	svc := newCartHandlerFixture(t)
	router := chi.NewRouter()
	router.Delete("/api/v1/cart/items/{itemId}", CartRemoveItem(svc, nil))

	req := deviceRequest(http.MethodDelete, "/api/v1/cart/items/not-a-uuid", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartClear(t *testing.T) {
	svc := newCartHandlerFixture(t)

	add := deviceRequest(http.MethodPost, "/api/v1/cart/items/predefined", []byte(`{"category":"birth","bundleId":"birth-tender"}`))
	CartAddPredefined(svc, nil).ServeHTTP(httptest.NewRecorder(), add)

	clear := deviceRequest(http.MethodDelete, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	CartClear(svc, nil).ServeHTTP(resp, clear)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	get := deviceRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	CartGet(svc, nil).ServeHTTP(rec, get)

	var envelope struct {
		Data cartsvc.View `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ItemCount != 0 {
		t.Fatalf("expected empty cart after clear got %+v", envelope.Data)
	}
}
