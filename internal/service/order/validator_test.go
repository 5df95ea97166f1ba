package order

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/vbazhenov/bookstore/internal/domain"
	"github.com/vbazhenov/bookstore/internal/storage/memory"
)

func testCatalog() *memory.Catalog {
	catalog := memory.NewCatalog()
	catalog.Seed(
		domain.Book{ID: 7, Title: "The Go Programming Language", Author: "Donovan, Kernighan", PriceMinor: 1999, IsPublic: true, CategoryID: 3},
		domain.Book{ID: 8, Title: "Clean Architecture", Author: "Martin", PriceMinor: 2499, IsPublic: true, CategoryID: 5},
	)
	return catalog
}

func validForm() domain.CustomerForm {
	nextYear := time.Now().Year() + 1
	return domain.CustomerForm{
		Name:          "Jane Doe",
		Address:       "123 Main St",
		Phone:         "555-123-4567",
		Email:         "jane@example.com",
		CCNumber:      "4111-1111-1111-1111",
		CCExpiryMonth: "12",
		CCExpiryYear:  strconv.Itoa(nextYear),
	}
}

func validCart() domain.ShoppingCart {
	return domain.ShoppingCart{
		Items: []domain.ShoppingCartItem{
			{BookID: 7, Quantity: 2, PriceMinor: 1999, CategoryID: 3},
		},
		SurchargeMinor: 500,
	}
}

func TestValidateCustomer_Valid(t *testing.T) {
	validator := NewValidator(testCatalog())
	if err := validator.ValidateCustomer(validForm()); err != nil {
		t.Fatalf("expected valid form, got %v", err)
	}
}

func TestValidateCustomer_FieldViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.CustomerForm)
	}{
		{"empty name", func(f *domain.CustomerForm) { f.Name = "" }},
		{"short name", func(f *domain.CustomerForm) { f.Name = "Jan" }},
		{"long name", func(f *domain.CustomerForm) { f.Name = string(make([]byte, 46)) }},
		{"empty address", func(f *domain.CustomerForm) { f.Address = "" }},
		{"short address", func(f *domain.CustomerForm) { f.Address = "abc" }},
		{"empty phone", func(f *domain.CustomerForm) { f.Phone = "" }},
		{"seven digit phone", func(f *domain.CustomerForm) { f.Phone = "555-1234" }},
		{"eleven digit phone", func(f *domain.CustomerForm) { f.Phone = "1-555-123-45678" }},
		{"phone without digits", func(f *domain.CustomerForm) { f.Phone = "call me" }},
		{"empty email", func(f *domain.CustomerForm) { f.Email = "" }},
		{"email with space", func(f *domain.CustomerForm) { f.Email = "jane doe@example.com" }},
		{"email without at", func(f *domain.CustomerForm) { f.Email = "jane.example.com" }},
		{"email ending with dot", func(f *domain.CustomerForm) { f.Email = "jane@example." }},
		{"short card number", func(f *domain.CustomerForm) { f.CCNumber = "4111-1111-1111" }},
		{"long card number", func(f *domain.CustomerForm) { f.CCNumber = "4111-1111-1111-11111" }},
		{"empty card number", func(f *domain.CustomerForm) { f.CCNumber = "" }},
		{"expired card", func(f *domain.CustomerForm) {
			f.CCExpiryMonth = "1"
			f.CCExpiryYear = "2020"
		}},
		{"garbage expiry", func(f *domain.CustomerForm) {
			f.CCExpiryMonth = "xx"
			f.CCExpiryYear = "yyyy"
		}},
	}

	validator := NewValidator(testCatalog())
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			form := validForm()
			tc.mutate(&form)

			err := validator.ValidateCustomer(form)
			if err == nil {
				t.Fatal("expected validation failure")
			}
			if !domain.IsInvalidParameter(err) {
				t.Fatalf("expected InvalidParameter, got %v", err)
			}
		})
	}
}

func TestValidateCustomer_PhoneStripsFormatting(t *testing.T) {
	validator := NewValidator(testCatalog())

	form := validForm()
	form.Phone = "(555) 123-4567"
	if err := validator.ValidateCustomer(form); err != nil {
		t.Fatalf("formatted 10-digit phone must pass, got %v", err)
	}
}

func TestValidateCustomer_ExpiryCurrentMonthPasses(t *testing.T) {
	now := time.Now()
	form := validForm()
	form.CCExpiryMonth = strconv.Itoa(int(now.Month()))
	form.CCExpiryYear = strconv.Itoa(now.Year())

	validator := NewValidator(testCatalog())
	if err := validator.ValidateCustomer(form); err != nil {
		t.Fatalf("current year-month must pass, got %v", err)
	}
}

func TestExpiryIsInvalid_YearMonthGranularity(t *testing.T) {
	now := time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		month, year string
		invalid     bool
	}{
		{"8", "2026", true},   // предыдущий месяц
		{"9", "2026", false},  // текущий месяц проходит
		{"10", "2026", false}, // будущий месяц
		{"12", "2025", true},  // прошлый год
		{"1", "2027", false},  // следующий год
		{"0", "2027", true},   // месяца 0 не существует
		{"13", "2027", true},  // месяца 13 не существует
		{"", "2027", true},
		{"9", "", true},
	}

	for _, tc := range tests {
		if got := expiryIsInvalid(tc.month, tc.year, now); got != tc.invalid {
			t.Fatalf("expiryIsInvalid(%q, %q) = %v, expected %v", tc.month, tc.year, got, tc.invalid)
		}
	}
}

func TestValidateCart_Valid(t *testing.T) {
	validator := NewValidator(testCatalog())
	if err := validator.ValidateCart(context.Background(), validCart()); err != nil {
		t.Fatalf("expected valid cart, got %v", err)
	}
}

func TestValidateCart_EmptyCart(t *testing.T) {
	validator := NewValidator(testCatalog())

	err := validator.ValidateCart(context.Background(), domain.ShoppingCart{})
	if err == nil || !domain.IsInvalidParameter(err) {
		t.Fatalf("expected InvalidParameter for empty cart, got %v", err)
	}
}

func TestValidateCart_QuantityBounds(t *testing.T) {
	validator := NewValidator(testCatalog())
	ctx := context.Background()

	cart := validCart()
	cart.Items[0].Quantity = -1
	if err := validator.ValidateCart(ctx, cart); err == nil || !domain.IsInvalidParameter(err) {
		t.Fatalf("expected InvalidParameter for negative quantity, got %v", err)
	}

	cart = validCart()
	cart.Items[0].Quantity = 100
	if err := validator.ValidateCart(ctx, cart); err == nil || !domain.IsInvalidParameter(err) {
		t.Fatalf("expected InvalidParameter for quantity over 99, got %v", err)
	}

	// Нулевое количество — допустимое значение.
	cart = validCart()
	cart.Items[0].Quantity = 0
	if err := validator.ValidateCart(ctx, cart); err != nil {
		t.Fatalf("zero quantity must pass, got %v", err)
	}
}

func TestValidateCart_PriceDrift(t *testing.T) {
	validator := NewValidator(testCatalog())

	cart := validCart()
	cart.Items[0].PriceMinor = 1499
	err := validator.ValidateCart(context.Background(), cart)
	if err == nil || !domain.IsInvalidParameter(err) {
		t.Fatalf("expected InvalidParameter for price drift, got %v", err)
	}
}

func TestValidateCart_CategoryDrift(t *testing.T) {
	validator := NewValidator(testCatalog())

	cart := validCart()
	cart.Items[0].CategoryID = 5
	err := validator.ValidateCart(context.Background(), cart)
	if err == nil || !domain.IsInvalidParameter(err) {
		t.Fatalf("expected InvalidParameter for category drift, got %v", err)
	}
}

func TestValidateCart_UnknownBook(t *testing.T) {
	validator := NewValidator(testCatalog())

	cart := validCart()
	cart.Items[0].BookID = 404
	err := validator.ValidateCart(context.Background(), cart)
	if err == nil || !domain.IsInvalidParameter(err) {
		t.Fatalf("expected InvalidParameter for unknown book, got %v", err)
	}
}

func TestValidateCart_FailFastOnFirstViolation(t *testing.T) {
	validator := NewValidator(testCatalog())

	cart := domain.ShoppingCart{
		Items: []domain.ShoppingCartItem{
			{BookID: 7, Quantity: 2, PriceMinor: 1, CategoryID: 3},  // цена разошлась
			{BookID: 8, Quantity: 1, PriceMinor: 2499, CategoryID: 9}, // категория разошлась
		},
	}

	err := validator.ValidateCart(context.Background(), cart)
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if err.Error() != "Price of book does not match." {
		t.Fatalf("expected first violation to win, got %q", err.Error())
	}
}
