package lib

import (
	"errors"
	"fmt"
	"net/http"
	"shop_admin_server/structs"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// GenerateAccessToken signs an HS256 token for the given identity
func GenerateAccessToken(sub int64, email, role, secret string, ttl time.Duration) (string, *structs.AuthClaims, error) {
	now := time.Now()
	claims := &structs.AuthClaims{
		Sub:   sub,
		Email: email,
		Role:  role,
		Iat:   now,
		Exp:   now.Add(ttl),
		Jti:   uuid.New(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   strconv.FormatInt(claims.Sub, 10),
		"email": claims.Email,
		"role":  claims.Role,
		"iat":   claims.Iat.Unix(),
		"exp":   claims.Exp.Unix(),
		"jti":   claims.Jti.String(),
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, claims, nil
}

// ParseToken parses and validates a JWT token string and returns the claims
func ParseToken(tokenStr string, secret string) (*structs.AuthClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	// Safely extract and validate claims
	subStr, ok := claims["sub"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: invalid sub claim", ErrInvalidToken)
	}
	sub, err := strconv.ParseInt(subStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid sub claim: %w", ErrInvalidToken, err)
	}

	email, ok := claims["email"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: invalid email claim", ErrInvalidToken)
	}

	role, ok := claims["role"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: invalid role claim", ErrInvalidToken)
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: invalid iat claim", ErrInvalidToken)
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: invalid exp claim", ErrInvalidToken)
	}

	jtiStr, ok := claims["jti"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: invalid jti claim", ErrInvalidToken)
	}
	jti, err := uuid.Parse(jtiStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid UUID in jti claim: %w", ErrInvalidToken, err)
	}

	return &structs.AuthClaims{
		Sub:   sub,
		Email: email,
		Role:  role,
		Iat:   time.Unix(int64(iat), 0),
		Exp:   time.Unix(int64(exp), 0),
		Jti:   jti,
	}, nil
}

// BearerToken returns the token from an "Authorization: Bearer <token>" header
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrMissingToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}
