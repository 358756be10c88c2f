package utils

import (
	"crypto/md5"
	"fmt"
)

// HashBytes returns the MD5 hex digest of data. Used for HTTP ETags,
// not for anything security-sensitive.
func HashBytes(data []byte) string {
	hash := md5.Sum(data)
	return fmt.Sprintf("%x", hash)
}

func HashString(input string) string {
	return HashBytes([]byte(input))
}
