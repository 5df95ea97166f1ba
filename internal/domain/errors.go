package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrBookNotFound возвращается каталогом, если книга с таким ID неизвестна.
	ErrBookNotFound = errors.New("book not found")
	// ErrOrderNotFound возвращается, если заказ не найден в хранилище.
	ErrOrderNotFound = errors.New("order not found")
	// ErrCustomerNotFound возвращается, если покупатель не найден в хранилище.
	ErrCustomerNotFound = errors.New("customer not found")
	// Ошибка отсутствующего владельца заказа.
	ErrCustomerRequired = errors.New("order customer_id is required")
	// Ошибка отрицательной суммы заказа.
	ErrTotalNegative = errors.New("order total_minor must be non-negative")
	// Ошибка выхода номера подтверждения за допустимый диапазон.
	ErrConfirmationOutOfRange = errors.New("confirmation number out of range")
	// ErrTransactionFailed — запись внутри транзакции не удалась, откат прошёл
	// успешно. Заказ не создан; вызывающая сторона получает явную ошибку,
	// а не нулевой идентификатор.
	ErrTransactionFailed = errors.New("order transaction failed and was rolled back")
	// ErrStorageFault — инфраструктурный сбой слоя хранения: не открылась
	// транзакция, не прошёл commit или сам rollback. Неудачный rollback
	// строже обычной ошибки записи: согласованность данных под вопросом.
	ErrStorageFault = errors.New("storage fault")
	// ErrDataIntegrity — сохранённый заказ ссылается на покупателя или книгу,
	// которых больше нет. Это порча данных, а не ошибка пользовательского ввода.
	ErrDataIntegrity = errors.New("persisted order references missing data")
	// ErrOutboxPublish — ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")
)

// InvalidParameterError — ошибка пользовательского ввода, найденная валидатором
// до каких-либо записей. Повтор запроса без исправления ввода бессмысленен.
type InvalidParameterError struct {
	Message string
}

func (e *InvalidParameterError) Error() string {
	return e.Message
}

// NewInvalidParameter создаёт ошибку валидации с человекочитаемым описанием.
func NewInvalidParameter(format string, args ...any) error {
	return &InvalidParameterError{Message: fmt.Sprintf(format, args...)}
}

// IsInvalidParameter проверяет, относится ли ошибка к классу ошибок ввода.
func IsInvalidParameter(err error) bool {
	var invalid *InvalidParameterError
	return errors.As(err, &invalid)
}

// IsStorageFault проверяет, является ли ошибка инфраструктурным сбоем хранилища.
func IsStorageFault(err error) bool {
	return errors.Is(err, ErrStorageFault)
}
