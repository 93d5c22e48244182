// Package catalog holds the fixed list of card names offered by "Add a Card".
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yourname/cardpay-bot/internal/domain"
)

var defaultCards = []string{
	"Chase Sapphire Preferred",
	"Amazon Prime Rewards",
	"Bank of America Cash Rewards",
	"Discover It Cashback",
	"Apple Card",
	"Citi Double Cash",
	"Capital One Quicksilver",
	"American Express Platinum",
	"American Express Blue Cash Everyday",
	"Wells Fargo Active Cash",
	"US Bank Altitude Connect",
	"Barclays Arrival Plus",
}

// MaxNameBytes keeps "adjustCard_" + name within Telegram's 64-byte
// callback data limit.
const MaxNameBytes = 64 - len("adjustCard_")

// Catalog is read-only once built.
type Catalog struct {
	names []string
}

func Default() *Catalog {
	return &Catalog{names: append([]string(nil), defaultCards...)}
}

type file struct {
	Cards []string `yaml:"cards"`
}

// Load reads a YAML file of the form
//
//	cards:
//	  - Apple Card
//	  - Citi Double Cash
//
// An empty path returns the default catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(f.Cards))
	names := make([]string, 0, len(f.Cards))
	for _, n := range f.Cards {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if len(n) > MaxNameBytes {
			return nil, fmt.Errorf("parse catalog: %q is longer than %d bytes", n, MaxNameBytes)
		}
		low := strings.ToLower(n)
		if _, ok := seen[low]; ok {
			continue
		}
		seen[low] = struct{}{}
		names = append(names, n)
	}
	if len(names) == 0 {
		return nil, errors.New("parse catalog: no cards listed")
	}
	return &Catalog{names: names}, nil
}

func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Missing lists catalog names the user does not own yet, in catalog order.
func (c *Catalog) Missing(owned []domain.CreditCard) []string {
	have := make(map[string]struct{}, len(owned))
	for _, card := range owned {
		have[strings.ToLower(card.Name)] = struct{}{}
	}

	out := make([]string, 0, len(c.names))
	for _, n := range c.names {
		if _, ok := have[strings.ToLower(n)]; ok {
			continue
		}
		out = append(out, n)
	}
	return out
}
