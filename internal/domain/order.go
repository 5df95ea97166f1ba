package domain

import "time"

// MaxConfirmationNumber ограничивает диапазон номеров подтверждения:
// номер всегда лежит в [0, MaxConfirmationNumber).
const MaxConfirmationNumber = 999_999_999

// Order — оформленный заказ. Создаётся ровно один раз за успешную
// транзакцию и далее не изменяется.
type Order struct {
	ID int64
	// TotalMinor = сумма позиций по ценам каталога + сбор корзины.
	TotalMinor int64
	// ConfirmationNumber — человеко-читаемый номер для покупателя.
	// Уникальность не гарантируется, первичным ключом не является.
	ConfirmationNumber int64
	CustomerID         int64
	CreatedAt          time.Time
}

// LineItem — одна пара (книга, количество) внутри заказа.
// Создаётся вместе со своим заказом, по одной записи на позицию корзины.
type LineItem struct {
	OrderID  int64
	BookID   int64
	Quantity int32
}

// OrderDetails — read-only композиция заказа для отображения.
// Не сохраняется, собирается по запросу. Books[i] соответствует LineItems[i].
type OrderDetails struct {
	Order     Order
	Customer  Customer
	LineItems []LineItem
	Books     []Book
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.CustomerID <= 0 {
		errs = append(errs, ErrCustomerRequired)
	}
	if o.TotalMinor < 0 {
		errs = append(errs, ErrTotalNegative)
	}
	if o.ConfirmationNumber < 0 || o.ConfirmationNumber >= MaxConfirmationNumber {
		errs = append(errs, ErrConfirmationOutOfRange)
	}

	return errs
}
