package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourname/cardpay-bot/internal/domain"
)

func TestDefault(t *testing.T) {
	c := Default()
	names := c.Names()

	require.Len(t, names, 12)
	assert.Equal(t, "Chase Sapphire Preferred", names[0])
	assert.Equal(t, "Barclays Arrival Plus", names[11])

	names[0] = "mutated"
	assert.Equal(t, "Chase Sapphire Preferred", c.Names()[0])
}

func TestMissing(t *testing.T) {
	c, err := Parse([]byte("cards:\n  - Apple Card\n  - Citi Double Cash\n  - Discover It Cashback\n"))
	require.NoError(t, err)

	owned := []domain.CreditCard{
		domain.NewCreditCard("citi double cash"),
		domain.NewCreditCard("My Store Card"),
	}
	assert.Equal(t, []string{"Apple Card", "Discover It Cashback"}, c.Missing(owned))
	assert.Equal(t, c.Names(), c.Missing(nil))
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte("cards:\n  - ' Apple Card '\n  - apple card\n  - ''\n  - Citi Double Cash\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple Card", "Citi Double Cash"}, c.Names())

	_, err = Parse([]byte("cards: []\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("cards: [unterminated"))
	assert.Error(t, err)

	_, err = Parse([]byte("cards:\n  - " + strings.Repeat("x", MaxNameBytes+1) + "\n"))
	assert.ErrorContains(t, err, "longer than")
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Names(), c.Names())

	path := filepath.Join(t.TempDir(), "cards.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cards:\n  - Apple Card\n"), 0o600))

	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple Card"}, c.Names())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
