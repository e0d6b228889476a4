package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const minLength = 6

// Validate проверяет парольную политику до хеширования
func Validate(pw string) error {
	if len(pw) < minLength {
		return fmt.Errorf("password must be at least %d characters", minLength)
	}
	return nil
}

// Hash хеширует пароль bcrypt-ом. Хеширование выполняется ровно один раз,
// на этом слое, и нигде больше.
func Hash(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare сравнивает пароль с хешем; true при совпадении
func Compare(hash string, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
