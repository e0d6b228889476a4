package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Tokens - пара токенов, выдаваемая при входе и обновлении сессии
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // access token seconds
}

type JWTManager struct {
	signingKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewJWTManager(signingKey string, accessTTL, refreshTTL time.Duration) *JWTManager {
	return &JWTManager{
		signingKey: []byte(signingKey),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Типы токенов: access и refresh подписаны одним ключом,
// поэтому тип зашит в клеймы и проверяется при парсинге
const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// SessionClaims - клеймы access токена: кто, с какой ролью, в каком муниципалитете
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID          string  `json:"user_id"`
	Role            string  `json:"role"` // user | driver | admin
	LocalGovernment *string `json:"local_government,omitempty"`
	TokenType       string  `json:"typ"`
}

type RefreshClaims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	JTI       string `json:"jti"`
	TokenType string `json:"typ"`
}

// Issue выдаёт пару access/refresh токенов для пользователя
func (m *JWTManager) Issue(userID uuid.UUID, role string, localGovernment *uuid.UUID) (Tokens, error) {
	now := time.Now()

	var lg *string
	if localGovernment != nil {
		s := localGovernment.String()
		lg = &s
	}

	sessionClaims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
		UserID:          userID.String(),
		Role:            role,
		LocalGovernment: lg,
		TokenType:       tokenTypeAccess,
	}
	access := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims)
	accessToken, err := access.SignedString(m.signingKey)
	if err != nil {
		return Tokens{}, err
	}

	refreshClaims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.refreshTTL)),
		},
		UserID:    userID.String(),
		Role:      role,
		JTI:       uuid.NewString(),
		TokenType: tokenTypeRefresh,
	}
	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshToken, err := refresh.SignedString(m.signingKey)
	if err != nil {
		return Tokens{}, err
	}

	return Tokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(m.accessTTL.Seconds()),
	}, nil
}

// ParseAccess валидирует access токен и возвращает его клеймы
func (m *JWTManager) ParseAccess(tokenStr string) (*SessionClaims, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return m.signingKey, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := tok.Claims.(*SessionClaims)
	if !ok || !tok.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.TokenType != tokenTypeAccess {
		return nil, fmt.Errorf("not an access token")
	}
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	return claims, nil
}

// ParseRefresh валидирует refresh токен
func (m *JWTManager) ParseRefresh(tokenStr string) (*RefreshClaims, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &RefreshClaims{}, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return m.signingKey, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := tok.Claims.(*RefreshClaims)
	if !ok || !tok.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.TokenType != tokenTypeRefresh {
		return nil, fmt.Errorf("not a refresh token")
	}
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	return claims, nil
}
