package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_OrdenadasYEmbebidas(t *testing.T) {
	migs, err := Migrations()
	require.NoError(t, err)
	require.Len(t, migs, 2)
	assert.Equal(t, "0001_init", migs[0].Version)
	assert.Equal(t, "0002_users", migs[1].Version)
	assert.Contains(t, migs[0].SQL, "ON DELETE CASCADE")
	assert.Contains(t, migs[0].SQL, "CHECK (quantity >= 0)")
}
