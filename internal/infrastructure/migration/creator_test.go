package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	t.Run("creates up and down files", func(t *testing.T) {
		dir := t.TempDir()

		mf, err := CreateMigration(dir, "add order tokens")
		require.NoError(t, err)

		assert.Equal(t, "add order tokens", mf.Name)
		assert.Contains(t, filepath.Base(mf.UpPath), "add_order_tokens.up.sql")
		assert.Contains(t, filepath.Base(mf.DownPath), "add_order_tokens.down.sql")

		up, err := os.ReadFile(mf.UpPath)
		require.NoError(t, err)
		assert.Contains(t, string(up), "add order tokens")

		_, err = os.Stat(mf.DownPath)
		assert.NoError(t, err)
	})

	t.Run("creates missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "migrations")

		_, err := CreateMigration(dir, "init")
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})
}

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Create Shops Table", "create_shops_table"},
		{"add-email-tokens", "add_email_tokens"},
		{"weird!!chars##", "weirdchars"},
		{"trailing space ", "trailing_space"},
		{"UPPER", "upper"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, sanitizeName(tc.in), tc.in)
	}
}
