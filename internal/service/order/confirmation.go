package order

import (
	"math/rand/v2"

	"github.com/vbazhenov/bookstore/internal/domain"
)

// GenerateConfirmationNumber возвращает равномерно распределённый номер
// подтверждения из [0, MaxConfirmationNumber). Номер предназначен для
// покупателя; коллизии допустимы, обработка коллизий не выполняется.
func GenerateConfirmationNumber() int64 {
	return rand.Int64N(domain.MaxConfirmationNumber)
}
