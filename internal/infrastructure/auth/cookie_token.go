package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/saruni-spec/pin-registration/domain"
)

// CookieTokenService implements domain.TokenService. The cookie never
// carries the upstream bearer credential itself, only a signed pointer
// to the server-side session that holds it.
type CookieTokenService struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
}

// NewCookieTokenService creates a new cookie token service
func NewCookieTokenService(secretKey, issuer string, ttl time.Duration) domain.TokenService {
	return &CookieTokenService{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		ttl:       ttl,
	}
}

// IssueSessionToken implements domain.TokenService
func (s *CookieTokenService) IssueSessionToken(sessionID, msisdn string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"session_id": sessionID,
		"msisdn":     msisdn,
		"iss":        s.issuer,
		"iat":        now.Unix(),
		"exp":        now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// ParseSessionToken implements domain.TokenService
func (s *CookieTokenService) ParseSessionToken(tokenString string) (*domain.SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return s.secretKey, nil
	})

	if err != nil || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	sessionID, ok := claims["session_id"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	msisdn, ok := claims["msisdn"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, domain.ErrTokenExpired
	}

	return &domain.SessionClaims{
		SessionID: sessionID,
		MSISDN:    msisdn,
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}, nil
}
