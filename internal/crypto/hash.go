package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword возвращается при попытке захешировать пустой пароль
var ErrEmptyPassword = errors.New("password cannot be empty")

// PasswordHasher хеширует пароли и проверяет их по сохраненному digest.
// Реализации обязаны использовать соль и адаптивную стоимость.
type PasswordHasher interface {
	// Hash возвращает digest для plaintext. Каждый вызов дает новый digest.
	Hash(plaintext string) (string, error)
	// Verify сообщает, соответствует ли plaintext сохраненному digest.
	Verify(plaintext, digest string) bool
}

// BcryptHasher реализует PasswordHasher поверх bcrypt
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher создает hasher с заданной стоимостью.
// Стоимость вне диапазона bcrypt заменяется на bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash хеширует пароль
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(digest), nil
}

// Verify проверяет пароль. Пустые значения и битый digest дают false.
func (h *BcryptHasher) Verify(plaintext, digest string) bool {
	if plaintext == "" || digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// Cost returns the bcrypt work factor in use.
func (h *BcryptHasher) Cost() int {
	return h.cost
}
