package jwttoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"civicdesk/pkg/domain"
	dErrors "civicdesk/pkg/domain-errors"
)

// Claims is the token body issued by the external identity provider.
type Claims struct {
	Username string `json:"username"`
	IsStaff  bool   `json:"is_staff"`
	IsActive bool   `json:"is_active"`
	jwt.RegisteredClaims
}

// JWTService validates HS256 actor tokens. GenerateAccessToken exists for
// local tooling and tests; production tokens come from the identity provider.
type JWTService struct {
	signingKey []byte
	issuer     string
}

func NewJWTService(signingKey string, issuer string) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
	}
}

func (s *JWTService) GenerateAccessToken(actor domain.Actor, expiresIn time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username: actor.Username,
		IsStaff:  actor.Elevated,
		IsActive: actor.Active,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	})
	return token.SignedString(s.signingKey)
}

func (s *JWTService) ParseClaims(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	return claims, nil
}

// ValidateToken satisfies the auth middleware's TokenValidator.
func (s *JWTService) ValidateToken(tokenString string) (domain.Actor, error) {
	claims, err := s.ParseClaims(tokenString)
	if err != nil {
		return domain.Actor{}, err
	}
	userID, err := domain.ParseUserID(claims.Subject)
	if err != nil {
		return domain.Actor{}, dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid token subject")
	}
	return domain.Actor{
		ID:       userID,
		Username: claims.Username,
		Elevated: claims.IsStaff,
		Active:   claims.IsActive,
	}, nil
}
