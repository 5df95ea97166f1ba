package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vbazhenov/bookstore/internal/domain"
	"github.com/vbazhenov/bookstore/internal/service/order"
	"github.com/vbazhenov/bookstore/internal/storage/memory"
)

func newTestRouter() http.Handler {
	store := memory.NewStore()
	catalog := memory.NewCatalog()
	catalog.Seed(
		domain.Book{ID: 7, Title: "The Go Programming Language", Author: "Donovan, Kernighan", PriceMinor: 1999, IsPublic: true, CategoryID: 3},
	)

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	entry := logger.WithField("component", "api-test")

	service := order.NewServiceWithoutMetrics(
		store,
		store.CustomerStore(),
		store.OrderStore(),
		store.LineItemStore(),
		catalog,
		nil,
		entry,
	)
	return NewRouter(NewHandler(service, catalog, entry), nil)
}

func placeOrderBody(t *testing.T) []byte {
	t.Helper()

	body, err := json.Marshal(map[string]any{
		"customer": map[string]string{
			"name":          "Jane Doe",
			"address":       "123 Main St",
			"phone":         "555-123-4567",
			"email":         "jane@example.com",
			"ccNumber":      "4111111111111111",
			"ccExpiryMonth": "12",
			"ccExpiryYear":  strconv.Itoa(time.Now().Year() + 1),
		},
		"cart": map[string]any{
			"items": []map[string]any{
				{"bookId": 7, "quantity": 2, "priceMinor": 1999, "categoryId": 3},
			},
			"surchargeMinor": 500,
		},
	})
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	return body
}

func TestPlaceOrderEndpoint_Success(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(placeOrderBody(t)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp placeOrderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.OrderID <= 0 {
		t.Fatalf("expected positive order id, got %d", resp.OrderID)
	}

	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/orders/%d", resp.OrderID), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var details orderDetailsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &details); err != nil {
		t.Fatalf("decode details: %v", err)
	}
	if details.Order.TotalMinor != 1999*2+500 {
		t.Fatalf("expected total 4498, got %d", details.Order.TotalMinor)
	}
	if details.Customer.Name != "Jane Doe" {
		t.Fatalf("unexpected customer name: %s", details.Customer.Name)
	}
	if len(details.LineItems) != 1 || details.LineItems[0].BookID != 7 {
		t.Fatalf("unexpected line items: %+v", details.LineItems)
	}
}

func TestPlaceOrderEndpoint_ValidationError(t *testing.T) {
	router := newTestRouter()

	var payload map[string]any
	if err := json.Unmarshal(placeOrderBody(t), &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	payload["customer"].(map[string]any)["email"] = "no-at-sign"
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Code != "invalid_parameter" {
		t.Fatalf("expected invalid_parameter code, got %s", resp.Code)
	}
}

func TestPlaceOrderEndpoint_MalformedBody(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetOrderDetailsEndpoint_NotFound(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/orders/9000", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetOrderDetailsEndpoint_BadID(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/orders/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetBookEndpoint(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/books/7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var book bookDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &book); err != nil {
		t.Fatalf("decode book: %v", err)
	}
	if book.ID != 7 || book.PriceMinor != 1999 {
		t.Fatalf("unexpected book: %+v", book)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/books/404", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown book, got %d", rec.Code)
	}
}

func TestHealthzEndpoint(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
