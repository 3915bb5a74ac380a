package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	t.Run("creates category with feed id", func(t *testing.T) {
		category, err := NewCategory(224, "Smartphones")
		require.NoError(t, err)
		assert.Equal(t, 224, category.ID)
		assert.Equal(t, "Smartphones", category.Name)
	})

	t.Run("fails with non-positive id", func(t *testing.T) {
		_, err := NewCategory(0, "Smartphones")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be positive")
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewCategory(224, "")
		require.Error(t, err)
	})
}

func TestCategoryRename(t *testing.T) {
	t.Run("applies new name", func(t *testing.T) {
		category, err := NewCategory(224, "Smartphones")
		require.NoError(t, err)

		require.NoError(t, category.Rename("Phones"))
		assert.Equal(t, "Phones", category.Name)
	})

	t.Run("ignores identical name", func(t *testing.T) {
		category, err := NewCategory(224, "Smartphones")
		require.NoError(t, err)

		before := category.UpdatedAt
		require.NoError(t, category.Rename("Smartphones"))
		assert.Equal(t, before, category.UpdatedAt)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		category, err := NewCategory(224, "Smartphones")
		require.NoError(t, err)
		require.Error(t, category.Rename(""))
	})
}
