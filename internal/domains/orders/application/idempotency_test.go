package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
)

func TestFingerprintPlaceOrder(t *testing.T) {
	base := types.PlaceOrderInput{
		MemberID:       1,
		Lines:          []types.OrderLine{{ItemID: 1, Count: 1}, {ItemID: 2, Count: 2}},
		IdempotencyKey: "a",
	}
	hash, err := FingerprintPlaceOrder(base)
	require.NoError(t, err)
	assert.Len(t, hash, 64)

	otherKey := base
	otherKey.IdempotencyKey = "b"
	same, err := FingerprintPlaceOrder(otherKey)
	require.NoError(t, err)
	assert.Equal(t, hash, same, "the key itself is not part of the fingerprint")

	reordered := base
	reordered.Lines = []types.OrderLine{{ItemID: 2, Count: 2}, {ItemID: 1, Count: 1}}
	different, err := FingerprintPlaceOrder(reordered)
	require.NoError(t, err)
	assert.NotEqual(t, hash, different)
}
