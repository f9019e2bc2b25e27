package services

import (
	"crypto/rand"
	"math/big"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func pageOrDefault(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

const orderCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// randomCode returns n characters drawn from orderCodeAlphabet.
func randomCode(n int) (string, error) {
	buf := make([]byte, n)
	max := big.NewInt(int64(len(orderCodeAlphabet)))
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = orderCodeAlphabet[idx.Int64()]
	}
	return string(buf), nil
}
