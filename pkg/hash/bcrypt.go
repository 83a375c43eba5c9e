package hash

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength 是后台账号密码的最小长度。
const MinPasswordLength = 6

// ErrPasswordTooShort 表示密码短于 MinPasswordLength。
var ErrPasswordTooShort = errors.New("password is too short")

// HashPassword 使用 bcrypt 对密码进行哈希
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPasswordHash 检查密码是否与哈希匹配
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
