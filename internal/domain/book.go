package domain

// Book — каноническая запись каталога. Каталог владеет этими данными;
// после загрузки запись не изменяется.
type Book struct {
	ID     int64
	Title  string
	Author string
	// PriceMinor — цена в минимальных денежных единицах (например, центы).
	PriceMinor int64
	// IsPublic определяет, показывается ли книга в витрине.
	IsPublic   bool
	CategoryID int64
}
