package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/vbazhenov/bookstore/internal/domain"
	"github.com/vbazhenov/bookstore/internal/service/order"
)

// Handler обслуживает HTTP API оформления заказов.
type Handler struct {
	service *order.Service
	catalog domain.CatalogLookup
	logger  *log.Entry
}

// NewHandler создаёт HTTP handler поверх сервиса заказов.
func NewHandler(service *order.Service, catalog domain.CatalogLookup, logger *log.Entry) *Handler {
	if logger == nil {
		logger = log.WithField("component", "api")
	}
	return &Handler{service: service, catalog: catalog, logger: logger}
}

type customerFormDTO struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	CCNumber      string `json:"ccNumber"`
	CCExpiryMonth string `json:"ccExpiryMonth"`
	CCExpiryYear  string `json:"ccExpiryYear"`
}

type cartItemDTO struct {
	BookID     int64 `json:"bookId"`
	Quantity   int32 `json:"quantity"`
	PriceMinor int64 `json:"priceMinor"`
	CategoryID int64 `json:"categoryId"`
}

type cartDTO struct {
	Items          []cartItemDTO `json:"items"`
	SurchargeMinor int64         `json:"surchargeMinor"`
}

type placeOrderRequest struct {
	Customer customerFormDTO `json:"customer"`
	Cart     cartDTO         `json:"cart"`
}

type placeOrderResponse struct {
	OrderID int64 `json:"orderId"`
}

type orderDTO struct {
	ID                 int64     `json:"id"`
	TotalMinor         int64     `json:"totalMinor"`
	ConfirmationNumber int64     `json:"confirmationNumber"`
	CustomerID         int64     `json:"customerId"`
	CreatedAt          time.Time `json:"createdAt"`
}

type customerDTO struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

type lineItemDTO struct {
	BookID   int64 `json:"bookId"`
	Quantity int32 `json:"quantity"`
}

type bookDTO struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	PriceMinor int64  `json:"priceMinor"`
	IsPublic   bool   `json:"isPublic"`
	CategoryID int64  `json:"categoryId"`
}

type orderDetailsResponse struct {
	Order     orderDTO      `json:"order"`
	Customer  customerDTO   `json:"customer"`
	LineItems []lineItemDTO `json:"lineItems"`
	Books     []bookDTO     `json:"books"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// POST /api/orders
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "request body is not valid JSON")
		return
	}

	form := domain.CustomerForm{
		Name:          req.Customer.Name,
		Address:       req.Customer.Address,
		Phone:         req.Customer.Phone,
		Email:         req.Customer.Email,
		CCNumber:      req.Customer.CCNumber,
		CCExpiryMonth: req.Customer.CCExpiryMonth,
		CCExpiryYear:  req.Customer.CCExpiryYear,
	}
	cart := domain.ShoppingCart{
		SurchargeMinor: req.Cart.SurchargeMinor,
		Items:          make([]domain.ShoppingCartItem, 0, len(req.Cart.Items)),
	}
	for _, item := range req.Cart.Items {
		cart.Items = append(cart.Items, domain.ShoppingCartItem{
			BookID:     item.BookID,
			Quantity:   item.Quantity,
			PriceMinor: item.PriceMinor,
			CategoryID: item.CategoryID,
		})
	}

	orderID, err := h.service.PlaceOrder(r.Context(), form, cart)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, placeOrderResponse{OrderID: orderID})
}

// GET /api/orders/{orderID}
func (h *Handler) GetOrderDetails(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "orderID must be an integer")
		return
	}

	details, err := h.service.GetOrderDetails(r.Context(), orderID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toOrderDetailsResponse(details))
}

// GET /api/books/{bookID}
func (h *Handler) GetBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := strconv.ParseInt(chi.URLParam(r, "bookID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_book_id", "bookID must be an integer")
		return
	}

	book, err := h.catalog.FindByBookID(r.Context(), bookID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toBookDTO(book))
}

func toOrderDetailsResponse(details domain.OrderDetails) orderDetailsResponse {
	resp := orderDetailsResponse{
		Order: orderDTO{
			ID:                 details.Order.ID,
			TotalMinor:         details.Order.TotalMinor,
			ConfirmationNumber: details.Order.ConfirmationNumber,
			CustomerID:         details.Order.CustomerID,
			CreatedAt:          details.Order.CreatedAt,
		},
		// Номер карты наружу не отдаём.
		Customer: customerDTO{
			ID:      details.Customer.ID,
			Name:    details.Customer.Name,
			Address: details.Customer.Address,
			Phone:   details.Customer.Phone,
			Email:   details.Customer.Email,
		},
		LineItems: make([]lineItemDTO, 0, len(details.LineItems)),
		Books:     make([]bookDTO, 0, len(details.Books)),
	}
	for _, item := range details.LineItems {
		resp.LineItems = append(resp.LineItems, lineItemDTO{
			BookID:   item.BookID,
			Quantity: item.Quantity,
		})
	}
	for _, book := range details.Books {
		resp.Books = append(resp.Books, toBookDTO(book))
	}
	return resp
}

func toBookDTO(book domain.Book) bookDTO {
	return bookDTO{
		ID:         book.ID,
		Title:      book.Title,
		Author:     book.Author,
		PriceMinor: book.PriceMinor,
		IsPublic:   book.IsPublic,
		CategoryID: book.CategoryID,
	}
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsInvalidParameter(err):
		respondError(w, http.StatusBadRequest, "invalid_parameter", err.Error())
	case errors.Is(err, domain.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "order_not_found", "order not found")
	case errors.Is(err, domain.ErrBookNotFound):
		respondError(w, http.StatusNotFound, "book_not_found", "book not found")
	default:
		h.logger.WithError(err).Error("request failed")
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}
