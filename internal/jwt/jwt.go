package jwt

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/boards-dev/boards/internal/domain"
	internal_errors "github.com/boards-dev/boards/internal/errors"
	"github.com/boards-dev/boards/internal/logger"
	"github.com/golang-jwt/jwt/v5"
)

type JwtService interface {
	NewToken(user domain.User) (string, error)
	DecodeToken(jwtStr string) (*jwt.Token, error)
}

type Jwt struct {
	secretKey string
	ttl       time.Duration
}

func New(secretKey string, ttl time.Duration) JwtService {
	return &Jwt{secretKey, ttl}
}

func (j *Jwt) NewToken(user domain.User) (string, error) {
	claims := jwt.MapClaims{}
	claims["uid"] = user.Id
	claims["username"] = user.Username
	claims["admin"] = user.Admin
	claims["exp"] = time.Now().Add(j.ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		logger.Log.Error("signing token", "error", err)
		return "", errors.New("Can't create token")
	}

	return tokenString, nil
}

func (j *Jwt) DecodeToken(jwtStr string) (*jwt.Token, error) {
	token, err := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
		// Verify signing algorithm
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, &internal_errors.ErrorWithStatusCode{Message: fmt.Sprintf("Unexpected signing method: %v", token.Header["alg"]), StatusCode: http.StatusUnauthorized}
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		logger.Log.Debug("decoding token", "error", err)
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid token signature", StatusCode: http.StatusUnauthorized}
	}

	if !token.Valid {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid access token", StatusCode: http.StatusUnauthorized}
	}

	return token, nil
}

// UserFromToken reads the identity claims back into a user.
func UserFromToken(token *jwt.Token) (*domain.User, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	uid, ok := claims["uid"].(float64)
	if !ok {
		return nil, errors.New("invalid uid claim")
	}
	username, ok := claims["username"].(string)
	if !ok {
		return nil, errors.New("invalid username claim")
	}
	admin, ok := claims["admin"].(bool)
	if !ok {
		return nil, errors.New("invalid admin claim")
	}
	return &domain.User{Id: int64(uid), Username: username, Admin: admin}, nil
}
