package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
)

type normalizedPlaceOrder struct {
	MemberID int64            `json:"memberId"`
	Lines    []normalizedLine `json:"lines"`
}

type normalizedLine struct {
	ItemID int64 `json:"itemId"`
	Count  int64 `json:"count"`
}

// FingerprintPlaceOrder hashes the placement request without its idempotency
// key. Line order is significant: it is the order of the created order items.
func FingerprintPlaceOrder(input types.PlaceOrderInput) (string, error) {
	normalized := normalizedPlaceOrder{
		MemberID: input.MemberID,
		Lines:    make([]normalizedLine, 0, len(input.Lines)),
	}
	for _, line := range input.Lines {
		normalized.Lines = append(normalized.Lines, normalizedLine{ItemID: line.ItemID, Count: line.Count})
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
