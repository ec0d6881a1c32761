package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"digisanchar/internal/utils"
)

var ErrInvalidOrExpiredToken = errors.New("invalid or expired token")

// Session token lifetime: a week when "remember me" is requested, otherwise
// one day.
const (
	sessionTTL  = 24 * time.Hour
	rememberTTL = 7 * 24 * time.Hour
)

type Claims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

type AuthService interface {
	HashPassword(password string) (string, error)
	CheckPassword(password, hash string) bool
	GenerateToken(userID int, remember bool) (string, error)
	ParseToken(tokenString string) (int, error)
	NewVerificationToken() (string, error)
}

type authService struct {
	jwtSecret []byte
}

func NewAuthService(jwtSecret []byte) AuthService {
	return &authService{jwtSecret: jwtSecret}
}

func (s *authService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *authService) CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *authService) GenerateToken(userID int, remember bool) (string, error) {
	ttl := sessionTTL
	if remember {
		ttl = rememberTTL
	}
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ParseToken validates signature and expiry and returns the user id carried
// by the token.
func (s *authService) ParseToken(tokenString string) (int, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		// HMAC only; reject tokens signed with anything else
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidOrExpiredToken
	}
	return claims.UserID, nil
}

func (s *authService) NewVerificationToken() (string, error) {
	return utils.NewVerificationToken(32)
}
