package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más la sesión del almacén.
// SessionVersion permite invalidar tokens emitidos antes de un logout.
type Claims struct {
	jwt.RegisteredClaims
	UserID         string `json:"user_id"`
	Email          string `json:"email"`
	Role           string `json:"role"` // "Admin" | "Editor" | "Empleado"
	SessionVersion int    `json:"sv"`
}

// TokenInput datos de sesión que se firman en el token.
type TokenInput struct {
	UserID         string
	Email          string
	Role           string
	SessionVersion int
}

// Generate genera un token JWT HS256 firmado.
func Generate(secret, issuer string, expMinutes int, in TokenInput) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   in.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:         in.UserID,
		Email:          in.Email,
		Role:           in.Role,
		SessionVersion: in.SessionVersion,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma y expiración y devuelve los claims.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}
