package payprovider

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifySignature проверяет подпись callback'а провайдера.
// Провайдер подписывает строку orderID + "|" + paymentID алгоритмом
// HMAC-SHA256 с key secret и передает hex-представление подписи.
// Формат полезной нагрузки фиксирован - это wire-контракт с провайдером
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	// hmac.Equal - сравнение за постоянное время
	return hmac.Equal([]byte(expected), []byte(signature))
}
