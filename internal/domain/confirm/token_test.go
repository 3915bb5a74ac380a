package confirm

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6"

func TestNewEmailToken(t *testing.T) {
	t.Run("creates token for user", func(t *testing.T) {
		userID := uuid.New()
		token, err := NewEmailToken(userID, testKey)
		require.NoError(t, err)

		assert.Equal(t, userID, token.UserID)
		assert.Equal(t, testKey, token.Key)
		assert.NotEmpty(t, token.ID)
	})

	t.Run("fails with nil user", func(t *testing.T) {
		_, err := NewEmailToken(uuid.Nil, testKey)
		require.Error(t, err)
	})

	t.Run("fails with short key", func(t *testing.T) {
		_, err := NewEmailToken(uuid.New(), "short")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "too short")
	})

	t.Run("fails with oversized key", func(t *testing.T) {
		_, err := NewEmailToken(uuid.New(), strings.Repeat("a", 65))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "too long")
	})
}

func TestNewOrderToken(t *testing.T) {
	t.Run("creates token carrying the pending address", func(t *testing.T) {
		orderID := uuid.New()
		token, err := NewOrderToken(orderID, testKey, "Moscow, Tverskaya, 7")
		require.NoError(t, err)

		assert.Equal(t, orderID, token.OrderID)
		assert.Equal(t, "Moscow, Tverskaya, 7", token.Address)
	})

	t.Run("fails without address", func(t *testing.T) {
		_, err := NewOrderToken(uuid.New(), testKey, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "address is required")
	})

	t.Run("fails with nil order", func(t *testing.T) {
		_, err := NewOrderToken(uuid.Nil, testKey, "Moscow, Tverskaya, 7")
		require.Error(t, err)
	})
}
