package repository

import (
	"errors"

	"gorm.io/gorm"
)

// Требует gorm.Config{TranslateError: true}, иначе драйверные
// ошибки уникальности не схлопнутся в ErrDuplicatedKey
func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
