// hospital/middlewares/token.go
package middlewares

import (
	"errors"
	"fmt"
	"time"

	"hospital/hospital/utils/types"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// IssueToken signs an HS256 token carrying the principal.
func IssueToken(secret string, ttl time.Duration, p types.Principal) (string, error) {
	claims := jwt.MapClaims{
		"user_id": p.UserID,
		"role":    p.Role,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies tokenStr and returns the principal it carries.
func ParseToken(secret, tokenStr string) (types.Principal, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return types.Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return types.Principal{}, ErrInvalidToken
	}
	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return types.Principal{}, ErrInvalidToken
	}
	role, _ := claims["role"].(string)
	if role != types.RoleDoctor && role != types.RolePatient {
		return types.Principal{}, ErrInvalidToken
	}
	return types.Principal{UserID: uint(userID), Role: role}, nil
}
