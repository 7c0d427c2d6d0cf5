package utils

import (
	"errors"
	"strconv"
	"time"

	"nosdois-service/config"

	"github.com/golang-jwt/jwt/v5"
)

// Tokens struct to describe tokens object.
type Tokens struct {
	Access  string
	Refresh string
}

// TokenMetadata struct to describe metadata in JWT. The identity claim is
// the couple id, shared by both paired devices.
type TokenMetadata struct {
	Couple string
	Device string
	Exp    int64
}

// GenerateTokens func for generate a new Access & Refresh tokens.
func GenerateTokens(couple string, device string) (*Tokens, error) {
	accessToken, err := generateToken(
		couple,
		device,
		"JWT_ACCESS_EXPIRE",
		"JWT_ACCESS_KEY",
	)
	if err != nil {
		return nil, err
	}

	refreshToken, err := generateToken(
		couple,
		device,
		"JWT_REFRESH_EXPIRE",
		"JWT_REFRESH_KEY",
	)
	if err != nil {
		return nil, err
	}

	return &Tokens{
		Access:  accessToken,
		Refresh: refreshToken,
	}, nil
}

func generateToken(couple string, device string, expire string, key string) (string, error) {
	minutesCount, _ := strconv.Atoi(config.Config(expire))

	claims := jwt.MapClaims{}

	claims["id"] = couple
	claims["device"] = device
	claims["exp"] = time.Now().Add(time.Minute * time.Duration(minutesCount)).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	t, err := token.SignedString([]byte(config.Config(key)))
	if err != nil {
		return "", err
	}

	return t, nil
}

func CheckAndExtractTokenMetadata(token string, key string) (*TokenMetadata, error) {
	t, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.Config(key)), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := t.Claims.(jwt.MapClaims); ok && t.Valid {
		couple, _ := claims["id"].(string)
		device, _ := claims["device"].(string)
		exp, _ := claims["exp"].(float64)
		if couple == "" {
			return nil, errors.New("token is missing the couple claim")
		}
		return &TokenMetadata{
			Couple: couple,
			Device: device,
			Exp:    int64(exp),
		}, nil
	}

	return nil, errors.New("invalid token claims")
}
