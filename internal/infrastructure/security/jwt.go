package security

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookie — имя куки, в которой фронт передает сессионный токен
const SessionCookie = "sid"

var ErrInvalidSession = errors.New("invalid session token")

type Session struct {
	UserID uuid.UUID
	Role   string
}

// SessionVerifier проверяет сессионные токены. Выпуском токенов
// занимается внешний identity provider с тем же секретом.
type SessionVerifier struct {
	secret []byte
}

func NewSessionVerifier(secret string) *SessionVerifier {
	return &SessionVerifier{secret: []byte(secret)}
}

func (v *SessionVerifier) Verify(tokenStr string) (*Session, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil {
		// Просроченный или битый токен — одно и то же для вызывающего
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSession
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, ErrInvalidSession
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalidSession
	}

	role, _ := claims["role"].(string)
	if role == "" {
		role = "student"
	}

	return &Session{UserID: userID, Role: role}, nil
}
