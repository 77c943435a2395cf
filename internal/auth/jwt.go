// Package auth validates bearer tokens and resolves the calling user and role.
//
// Tokens are HS256 JWTs whose subject is the user id. The role claim is used
// when the user is not known locally; otherwise the stored role wins.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tbourn/go-irrigation-backend/internal/domain"
)

var (
	ErrEmptyToken   = errors.New("auth: empty token")
	ErrEmptySecret  = errors.New("auth: empty secret")
	ErrInvalidToken = errors.New("auth: invalid token")
	ErrNoSubject    = errors.New("auth: missing subject")
	ErrInvalidRole  = errors.New("auth: invalid role")
)

// Claims represents the JWT claims accepted by the API.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// NormalizeRole lowercases role and reports whether it is known. An empty
// role defaults to the regular user role.
func NormalizeRole(role string) (string, bool) {
	r := strings.ToLower(strings.TrimSpace(role))
	switch r {
	case "":
		return domain.RoleUser, true
	case domain.RoleUser, domain.RoleAdmin:
		return r, true
	}
	return "", false
}

var roleRank = map[string]int{
	domain.RoleUser:  1,
	domain.RoleAdmin: 2,
}

// Allows reports whether role grants at least required.
func Allows(role, required string) bool {
	return roleRank[role] >= roleRank[required] && roleRank[role] > 0
}

// ParseToken validates tokenString with secret and returns its claims.
func ParseToken(tokenString string, secret []byte) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrEmptyToken
	}
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, ErrNoSubject
	}
	role, ok := NormalizeRole(claims.Role)
	if !ok {
		return nil, ErrInvalidRole
	}
	claims.Role = role
	return claims, nil
}

// IssueToken signs a token for userID with role, valid for ttl.
func IssueToken(secret []byte, userID, role string, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", ErrEmptySecret
	}
	r, ok := NormalizeRole(role)
	if !ok {
		return "", ErrInvalidRole
	}
	now := time.Now()
	claims := Claims{
		Role: r,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
