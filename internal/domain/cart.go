package domain

// ShoppingCartItem — позиция корзины со снимком цены и категории книги
// на момент добавления. По снимку обнаруживается дрейф каталога.
type ShoppingCartItem struct {
	BookID   int64
	Quantity int32
	// PriceMinor — цена книги, какой её видел клиент при добавлении в корзину.
	PriceMinor int64
	// CategoryID — категория книги на момент добавления.
	CategoryID int64
}

// ShoppingCart — упорядоченный набор позиций. Корзина принадлежит сессии
// покупателя и напрямую не сохраняется.
type ShoppingCart struct {
	Items []ShoppingCartItem
	// SurchargeMinor — сервисный сбор, добавляемый к сумме позиций.
	SurchargeMinor int64
}

// SubtotalMinor возвращает сумму позиций по зафиксированным в корзине ценам.
func (c *ShoppingCart) SubtotalMinor() int64 {
	var sum int64
	for _, item := range c.Items {
		sum += int64(item.Quantity) * item.PriceMinor
	}
	return sum
}

// TotalMinor — итог заказа: сумма позиций плюс сбор.
func (c *ShoppingCart) TotalMinor() int64 {
	return c.SubtotalMinor() + c.SurchargeMinor
}
