package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

const (
	// DefaultTTL время жизни токена по умолчанию
	DefaultTTL = 24 * time.Hour
	// Issuer значение claim iss
	Issuer = "gophsocial"
)

// ErrEmptySecret возвращается при создании сервиса без секрета
var ErrEmptySecret = errors.New("jwt secret cannot be empty")

// Service выпускает и проверяет подписанные session tokens (HS256).
// Секрет неизменяем после создания, сервис безопасен для конкурентного использования.
type Service struct {
	now    func() time.Time
	secret []byte
	ttl    time.Duration
}

// Option настраивает Service
type Option func(*Service)

// WithClock подменяет источник времени (для тестов)
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a token service.
// A non-positive ttl falls back to DefaultTTL.
func NewService(secret string, ttl time.Duration, opts ...Option) (*Service, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	s := &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue создает токен для subject (username) и возвращает момент его истечения
func (s *Service) Issue(subject string) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, fmt.Errorf("subject cannot be empty")
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := gojwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    Issuer,
		IssuedAt:  gojwt.NewNumericDate(now),
		ExpiresAt: gojwt.NewNumericDate(expiresAt),
	}

	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt.Truncate(time.Second), nil
}

// Validate проверяет подпись, алгоритм и срок действия токена.
// Любая ошибка разбора дает ("", false): метод не паникует и не возвращает ошибок.
func (s *Service) Validate(token string) (string, bool) {
	if token == "" {
		return "", false
	}

	claims := &gojwt.RegisteredClaims{}
	parsed, err := gojwt.ParseWithClaims(token, claims,
		func(t *gojwt.Token) (interface{}, error) {
			// Проверяем что используется правильный алгоритм подписи
			if _, ok := t.Method.(*gojwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		},
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithExpirationRequired(),
		gojwt.WithIssuer(Issuer),
		gojwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return "", false
	}

	if claims.Subject == "" {
		return "", false
	}

	return claims.Subject, true
}

// VerifyMatchesIdentity returns true only when token is valid and its subject
// equals expectedUsername.
func (s *Service) VerifyMatchesIdentity(token, expectedUsername string) bool {
	subject, ok := s.Validate(token)
	if !ok {
		return false
	}
	return subject == expectedUsername
}
