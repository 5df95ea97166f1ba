package domain

import "time"

// CustomerForm — сырые строки формы оформления заказа, как их прислал клиент.
// Поля не считаются корректными, пока не пройдут через валидатор.
type CustomerForm struct {
	Name          string
	Address       string
	Phone         string
	Email         string
	CCNumber      string
	CCExpiryMonth string
	CCExpiryYear  string
}

// Customer — покупатель, созданный при оформлении заказа.
// Создаётся один раз на заказ; обновление и удаление не предусмотрены.
type Customer struct {
	ID       int64
	Name     string
	Address  string
	Phone    string
	Email    string
	CCNumber string
	// CCExpiryDate — последний календарный день месяца истечения карты.
	CCExpiryDate time.Time
}
