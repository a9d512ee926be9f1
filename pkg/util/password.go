package util

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordHashCost bcrypt 计算成本
var PasswordHashCost = 10

// GeneratePasswordHash generates bcrypt hash of a password
// GeneratePasswordHash 生成密码的bcrypt哈希值
func GeneratePasswordHash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), PasswordHashCost)
	return string(bytes), err
}

// CheckPasswordHash verifies whether password matches the hash
// CheckPasswordHash 验证密码与哈希值是否匹配
func CheckPasswordHash(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
