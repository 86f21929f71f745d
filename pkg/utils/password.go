package utils

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// digest 先 SHA-256 再 base64：bcrypt 只看前 72 字节，
// 长密码不预压缩会直接被 GenerateFromPassword 拒掉
func digest(pw string) []byte {
	sum := sha256.Sum256([]byte(pw))
	out := make([]byte, base64.RawStdEncoding.EncodedLen(len(sum)))
	base64.RawStdEncoding.Encode(out, sum[:])
	return out
}

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword(digest(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword bcrypt 自带常数时间比较
func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), digest(pw)) == nil
}
