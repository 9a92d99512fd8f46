package service

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	placeholderEmailDomain = "karcher.by"
	tempPasswordPrefix     = "temp"
	tempPasswordLength     = 8
	tempPasswordAlphabet   = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Credentials учётные данные клиента, созданного без регистрации
type Credentials struct {
	Email        string
	Password     string
	PasswordHash string
}

// NewPlaceholderCredentials генерирует уникальный email-заглушку и временный пароль
func NewPlaceholderCredentials() (Credentials, error) {
	password, err := tempPassword()
	if err != nil {
		return Credentials{}, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return Credentials{}, err
	}

	return Credentials{
		Email:        placeholderEmail(),
		Password:     password,
		PasswordHash: hash,
	}, nil
}

func placeholderEmail() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("client_%s@%s", suffix, placeholderEmailDomain)
}

func tempPassword() (string, error) {
	buf := make([]byte, tempPasswordLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate temp password: %w", err)
	}
	for i, b := range buf {
		buf[i] = tempPasswordAlphabet[int(b)%len(tempPasswordAlphabet)]
	}
	return tempPasswordPrefix + string(buf), nil
}

// HashPassword хэширует пароль bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword сверяет пароль с хэшем
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
