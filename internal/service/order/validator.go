package order

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vbazhenov/bookstore/internal/domain"
)

const (
	minFieldRunes = 4
	maxFieldRunes = 45
	phoneDigits   = 10
	minCCDigits   = 14
	maxCCDigits   = 16
	maxQuantity   = 99
)

// Validator проверяет форму покупателя и корзину до открытия транзакции.
// Состояния не имеет, безопасен при конкурентных оформлениях.
// Все нарушения возвращаются как InvalidParameterError; проверка
// останавливается на первом нарушении.
type Validator struct {
	catalog domain.CatalogLookup
}

// NewValidator создаёт валидатор поверх авторитетного каталога.
func NewValidator(catalog domain.CatalogLookup) *Validator {
	return &Validator{catalog: catalog}
}

// ValidateCustomer проверяет синтаксис полей формы. Каталог не трогает,
// побочных эффектов не имеет.
func (v *Validator) ValidateCustomer(form domain.CustomerForm) error {
	name := form.Name
	address := form.Address
	phone := digitsOnly(form.Phone)
	email := form.Email
	ccNumber := digitsOnly(form.CCNumber)

	if name == "" || utf8.RuneCountInString(name) < minFieldRunes || utf8.RuneCountInString(name) > maxFieldRunes {
		return domain.NewInvalidParameter("Invalid name field")
	}

	if address == "" || utf8.RuneCountInString(address) < minFieldRunes || utf8.RuneCountInString(address) > maxFieldRunes {
		return domain.NewInvalidParameter("Invalid address field")
	}

	if phone == "" {
		return domain.NewInvalidParameter("Invalid phone field")
	} else if len(phone) != phoneDigits {
		return domain.NewInvalidParameter("Invalid phone field (digits)")
	}

	if email == "" || strings.Contains(email, " ") {
		return domain.NewInvalidParameter("Invalid email field")
	} else if !strings.Contains(email, "@") {
		return domain.NewInvalidParameter("Invalid email field. Does not have @")
	} else if strings.HasSuffix(email, ".") {
		return domain.NewInvalidParameter("Invalid email field. Cannot end in '.'")
	}

	if ccNumber == "" || len(ccNumber) < minCCDigits || len(ccNumber) > maxCCDigits {
		return domain.NewInvalidParameter("Invalid credit card number field")
	}

	if expiryIsInvalid(form.CCExpiryMonth, form.CCExpiryYear, time.Now()) {
		return domain.NewInvalidParameter("Invalid expiry date")
	}

	return nil
}

// ValidateCart сверяет корзину с каталогом. Позиции проверяются независимо,
// в порядке следования; первое нарушение отклоняет корзину целиком.
// Нулевое количество допускается: отклоняются только значения вне [0, 99].
func (v *Validator) ValidateCart(ctx context.Context, cart domain.ShoppingCart) error {
	if len(cart.Items) == 0 {
		return domain.NewInvalidParameter("Cart is empty.")
	}

	for _, item := range cart.Items {
		if item.Quantity < 0 || item.Quantity > maxQuantity {
			return domain.NewInvalidParameter("Invalid quantity")
		}

		book, err := v.catalog.FindByBookID(ctx, item.BookID)
		if err != nil {
			if errors.Is(err, domain.ErrBookNotFound) {
				return domain.NewInvalidParameter("Unknown book in cart: %d", item.BookID)
			}
			return err
		}

		if book.PriceMinor != item.PriceMinor {
			return domain.NewInvalidParameter("Price of book does not match.")
		}
		if book.CategoryID != item.CategoryID {
			return domain.NewInvalidParameter("Category of book does not match.")
		}
	}

	return nil
}

// expiryIsInvalid возвращает true, когда месяц/год карты разрешаются в
// год-месяц строго раньше текущего. Сравнение идёт по календарному
// году-месяцу, не по дням. Нечисловой ввод также считается нарушением.
func expiryIsInvalid(monthString, yearString string, now time.Time) bool {
	month, err := strconv.Atoi(strings.TrimSpace(monthString))
	if err != nil || month < 1 || month > 12 {
		return true
	}
	year, err := strconv.Atoi(strings.TrimSpace(yearString))
	if err != nil {
		return true
	}

	return year*12+month < now.Year()*12+int(now.Month())
}

// digitsOnly убирает из строки всё, кроме ASCII-цифр.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
