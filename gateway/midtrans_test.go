package gateway

import (
	"crypto/sha512"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signFor(orderID, statusCode, grossAmount, key string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + key))
	return hex.EncodeToString(sum[:])
}

func TestVerifySignature(t *testing.T) {
	const key = "SB-Mid-server-test"
	valid := signFor("RCP-1A2B3C4D5E6F", "200", "4850.00", key)

	t.Run("valid signature is accepted", func(t *testing.T) {
		assert.True(t, verifySignature("RCP-1A2B3C4D5E6F", "200", "4850.00", valid, key))
	})

	t.Run("uppercase hex is accepted", func(t *testing.T) {
		assert.True(t, verifySignature("RCP-1A2B3C4D5E6F", "200", "4850.00", strings.ToUpper(valid), key))
	})

	t.Run("tampered order id is rejected", func(t *testing.T) {
		assert.False(t, verifySignature("RCP-FFFFFFFFFFFF", "200", "4850.00", valid, key))
	})

	t.Run("tampered amount is rejected", func(t *testing.T) {
		assert.False(t, verifySignature("RCP-1A2B3C4D5E6F", "200", "1.00", valid, key))
	})

	t.Run("wrong server key is rejected", func(t *testing.T) {
		assert.False(t, verifySignature("RCP-1A2B3C4D5E6F", "200", "4850.00", valid, "other-key"))
	})

	t.Run("missing signature is rejected", func(t *testing.T) {
		assert.False(t, verifySignature("RCP-1A2B3C4D5E6F", "200", "4850.00", "", key))
	})
}
