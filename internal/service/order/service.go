package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vbazhenov/bookstore/internal/domain"
	"github.com/vbazhenov/bookstore/internal/messaging/kafka"
	"github.com/vbazhenov/bookstore/internal/metrics"
)

// Service координирует оформление заказа: валидация формы и корзины,
// затем атомарная запись покупателя, заказа и позиций в одной единице
// работы. Дополнительно собирает детали заказа для отображения.
type Service struct {
	uow       domain.UnitOfWork
	customers domain.CustomerStore
	orders    domain.OrderStore
	lineItems domain.LineItemStore
	catalog   domain.CatalogLookup
	outbox    domain.OutboxRepository // опционален; nil отключает события
	validator *Validator
	logger    *log.Entry
	metrics   *metrics.OrderMetrics
}

// NewService конструирует сервис оформления заказов с метриками.
func NewService(
	uow domain.UnitOfWork,
	customers domain.CustomerStore,
	orders domain.OrderStore,
	lineItems domain.LineItemStore,
	catalog domain.CatalogLookup,
	outbox domain.OutboxRepository,
	logger *log.Entry,
) *Service {
	svc := NewServiceWithoutMetrics(uow, customers, orders, lineItems, catalog, outbox, logger)
	svc.metrics = metrics.NewOrderMetrics()
	return svc
}

// NewServiceWithoutMetrics создаёт сервис без метрик (для тестов).
func NewServiceWithoutMetrics(
	uow domain.UnitOfWork,
	customers domain.CustomerStore,
	orders domain.OrderStore,
	lineItems domain.LineItemStore,
	catalog domain.CatalogLookup,
	outbox domain.OutboxRepository,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "order-service")
	}
	return &Service{
		uow:       uow,
		customers: customers,
		orders:    orders,
		lineItems: lineItems,
		catalog:   catalog,
		outbox:    outbox,
		validator: NewValidator(catalog),
		logger:    logger,
	}
}

// PlaceOrder проверяет форму и корзину и, если они корректны, атомарно
// сохраняет покупателя, заказ и позиции. Возвращает идентификатор заказа.
//
// Ошибки валидации возвращаются до открытия транзакции. Ошибка записи
// с успешным откатом возвращается как ErrTransactionFailed; сбой самого
// отката или commit — как ErrStorageFault.
func (s *Service) PlaceOrder(ctx context.Context, form domain.CustomerForm, cart domain.ShoppingCart) (int64, error) {
	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordPlaceOrderDuration(time.Since(start))
		}
	}()

	if err := s.validator.ValidateCustomer(form); err != nil {
		s.recordRejected(err)
		return 0, err
	}
	if err := s.validator.ValidateCart(ctx, cart); err != nil {
		if domain.IsInvalidParameter(err) {
			s.recordRejected(err)
		}
		return 0, err
	}

	expiryDate, err := cardExpiryDate(form.CCExpiryMonth, form.CCExpiryYear)
	if err != nil {
		// Валидатор уже проверил дату; сюда попадает только рассинхрон правил.
		s.recordRejected(err)
		return 0, domain.NewInvalidParameter("Invalid expiry date")
	}

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: begin transaction: %v", domain.ErrStorageFault, err)
	}

	orderID, err := s.performPlaceOrderTransaction(ctx, tx, form, expiryDate, cart)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.WithError(rbErr).Error("rollback failed after write failure")
			return 0, fmt.Errorf("%w: rollback failed: %v (original write failure: %v)", domain.ErrStorageFault, rbErr, err)
		}
		s.logger.WithError(err).Warn("order transaction rolled back")
		if s.metrics != nil {
			s.metrics.RecordOrderFailed()
		}
		return 0, fmt.Errorf("%w: %v", domain.ErrTransactionFailed, err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.WithError(err).WithField("order_id", orderID).Error("commit failed")
		if s.metrics != nil {
			s.metrics.RecordOrderFailed()
		}
		return 0, fmt.Errorf("%w: commit transaction: %v", domain.ErrStorageFault, err)
	}

	if s.metrics != nil {
		s.metrics.RecordOrderPlaced(cart.TotalMinor())
	}
	s.logger.WithFields(log.Fields{
		"order_id":    orderID,
		"total_minor": cart.TotalMinor(),
		"line_items":  len(cart.Items),
	}).Info("order placed")

	return orderID, nil
}

// performPlaceOrderTransaction выполняет три записи одного оформления внутри
// переданной транзакции: покупатель, заказ, позиции в порядке корзины.
// Commit и rollback остаются на вызывающей стороне.
func (s *Service) performPlaceOrderTransaction(
	ctx context.Context,
	tx domain.Tx,
	form domain.CustomerForm,
	expiryDate time.Time,
	cart domain.ShoppingCart,
) (int64, error) {
	customer := domain.Customer{
		Name:         form.Name,
		Address:      form.Address,
		Phone:        form.Phone,
		Email:        form.Email,
		CCNumber:     form.CCNumber,
		CCExpiryDate: expiryDate,
	}
	customerID, err := s.customers.Create(ctx, tx, customer)
	if err != nil {
		return 0, fmt.Errorf("create customer: %w", err)
	}

	now := time.Now().UTC()
	order := domain.Order{
		TotalMinor:         cart.TotalMinor(),
		ConfirmationNumber: GenerateConfirmationNumber(),
		CustomerID:         customerID,
		CreatedAt:          now,
	}
	if errs := order.ValidateInvariants(); len(errs) > 0 {
		return 0, joinErrors(errs)
	}

	orderID, err := s.orders.Create(ctx, tx, order)
	if err != nil {
		return 0, fmt.Errorf("create order: %w", err)
	}

	for _, item := range cart.Items {
		lineItem := domain.LineItem{
			OrderID:  orderID,
			BookID:   item.BookID,
			Quantity: item.Quantity,
		}
		if err := s.lineItems.Create(ctx, tx, lineItem); err != nil {
			return 0, fmt.Errorf("create line item (book %d): %w", item.BookID, err)
		}
	}

	if s.outbox != nil {
		if err := s.enqueuePlacedEvent(ctx, tx, orderID, customerID, order, len(cart.Items)); err != nil {
			return 0, err
		}
	}

	return orderID, nil
}

// enqueuePlacedEvent ставит событие order.placed в outbox той же транзакцией,
// что и сам заказ: событие публикуется только если заказ закоммичен.
func (s *Service) enqueuePlacedEvent(ctx context.Context, tx domain.Tx, orderID, customerID int64, order domain.Order, lineItems int) error {
	event := kafka.NewOrderPlacedEvent(orderID, customerID, order.TotalMinor, order.ConfirmationNumber, lineItems, order.CreatedAt)
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order placed event: %w", err)
	}

	msg := domain.OutboxMessage{
		ID:            uuid.NewString(),
		AggregateType: kafka.AggregateTypeOrder,
		AggregateID:   strconv.FormatInt(orderID, 10),
		EventType:     string(kafka.EventTypeOrderPlaced),
		Payload:       payload,
	}
	if err := s.outbox.Enqueue(ctx, tx, msg); err != nil {
		return fmt.Errorf("enqueue order placed event: %w", err)
	}
	return nil
}

// GetOrderDetails собирает заказ, его покупателя, позиции и книги каталога.
// Чтение без побочных эффектов: повторные вызовы возвращают те же данные.
func (s *Service) GetOrderDetails(ctx context.Context, orderID int64) (domain.OrderDetails, error) {
	ord, err := s.orders.FindByOrderID(ctx, orderID)
	if err != nil {
		s.recordDetails("not_found")
		return domain.OrderDetails{}, err
	}

	customer, err := s.customers.FindByCustomerID(ctx, ord.CustomerID)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			s.recordDetails("integrity_fault")
			return domain.OrderDetails{}, fmt.Errorf("%w: order %d references customer %d", domain.ErrDataIntegrity, orderID, ord.CustomerID)
		}
		s.recordDetails("error")
		return domain.OrderDetails{}, err
	}

	lineItems, err := s.lineItems.FindByOrderID(ctx, orderID)
	if err != nil {
		s.recordDetails("error")
		return domain.OrderDetails{}, err
	}

	books := make([]domain.Book, 0, len(lineItems))
	for _, item := range lineItems {
		book, err := s.catalog.FindByBookID(ctx, item.BookID)
		if err != nil {
			if errors.Is(err, domain.ErrBookNotFound) {
				s.recordDetails("integrity_fault")
				return domain.OrderDetails{}, fmt.Errorf("%w: order %d references book %d", domain.ErrDataIntegrity, orderID, item.BookID)
			}
			s.recordDetails("error")
			return domain.OrderDetails{}, err
		}
		books = append(books, book)
	}

	s.recordDetails("ok")
	return domain.OrderDetails{
		Order:     ord,
		Customer:  customer,
		LineItems: lineItems,
		Books:     books,
	}, nil
}

// cardExpiryDate возвращает последний календарный день месяца истечения карты.
func cardExpiryDate(monthString, yearString string) (time.Time, error) {
	month, err := strconv.Atoi(strings.TrimSpace(monthString))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse expiry month: %w", err)
	}
	year, err := strconv.Atoi(strings.TrimSpace(yearString))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse expiry year: %w", err)
	}

	firstDay := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return firstDay.AddDate(0, 1, -1), nil
}

func (s *Service) recordRejected(err error) {
	if s.metrics != nil {
		s.metrics.RecordOrderRejected()
	}
	s.logger.WithError(err).Debug("order rejected by validation")
}

func (s *Service) recordDetails(result string) {
	if s.metrics != nil {
		s.metrics.RecordDetailsRequest(result)
	}
}

func joinErrors(errs []error) error {
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, err.Error())
	}
	return errors.New(strings.Join(messages, "; "))
}
