package util

import (
	"crypto/rand"
	"math/big"
)

const randomCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GetRandomString 生成指定长度的随机字符串
// Used for freshly generated secrets, so it draws from crypto/rand.
func GetRandomString(length int) string {
	b := make([]byte, length)
	max := big.NewInt(int64(len(randomCharset)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			b[i] = randomCharset[i%len(randomCharset)]
			continue
		}
		b[i] = randomCharset[n.Int64()]
	}
	return string(b)
}
