package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserClaim is the only application claim a session token carries.
type UserClaim struct {
	ID string `json:"id"`
}

// Claims is the JWT payload: {"user":{"id":...},"iat":...,"exp":...}.
type Claims struct {
	User UserClaim `json:"user"`
	jwt.RegisteredClaims
}

// JWTService signs HS256 tokens with a process-wide secret.
type JWTService struct {
	secret []byte
	now    func() time.Time
}

func NewJWTService(secret []byte) (*JWTService, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwt secret must not be empty")
	}
	return &JWTService{secret: secret, now: time.Now}, nil
}

func (s *JWTService) Issue(userID string, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", &SigningError{Err: errEmptySubject}
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		User: UserClaim{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", &SigningError{Err: err}
	}
	return signed, nil
}

func (s *JWTService) Verify(tokenStr string) (*TokenClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.User.ID == "" {
		return nil, ErrInvalidToken
	}

	out := &TokenClaims{UserID: claims.User.ID}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
