package auth

import (
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
)

// PasetoService handles PASETO token creation and validation.
// Uses v4.local (symmetric encryption with XChaCha20-Poly1305).
type PasetoService struct {
	symmetricKey paseto.V4SymmetricKey
	now          func() time.Time
}

func NewPasetoService(symmetricKey []byte) (*PasetoService, error) {
	if len(symmetricKey) != 32 {
		return nil, fmt.Errorf("symmetric key must be exactly 32 bytes, got %d", len(symmetricKey))
	}

	key, err := paseto.V4SymmetricKeyFromBytes(symmetricKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create symmetric key: %w", err)
	}

	return &PasetoService{symmetricKey: key, now: time.Now}, nil
}

// Issue encrypts a v4.local token carrying {"user":{"id":userID}}.
func (s *PasetoService) Issue(userID string, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", &SigningError{Err: errEmptySubject}
	}

	now := s.now()
	token := paseto.NewToken()
	token.SetIssuedAt(now)
	token.SetExpiration(now.Add(ttl))
	if err := token.Set("user", UserClaim{ID: userID}); err != nil {
		return "", &SigningError{Err: err}
	}

	return token.V4Encrypt(s.symmetricKey, nil), nil
}

// Verify decrypts the token and checks its expiry against the service clock.
func (s *PasetoService) Verify(tokenStr string) (*TokenClaims, error) {
	// Expiry is checked below so it can be told apart from tampering.
	parser := paseto.NewParserWithoutExpiryCheck()

	token, err := parser.ParseV4Local(s.symmetricKey, tokenStr, nil)
	if err != nil {
		return nil, ErrInvalidToken
	}

	expiresAt, err := token.GetExpiration()
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !s.now().Before(expiresAt) {
		return nil, ErrExpiredToken
	}

	var claim UserClaim
	if err := token.Get("user", &claim); err != nil || claim.ID == "" {
		return nil, ErrInvalidToken
	}

	issuedAt, err := token.GetIssuedAt()
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &TokenClaims{
		UserID:    claim.ID,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}
