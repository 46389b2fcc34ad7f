package game

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed cards.yaml
var defaultCatalogData []byte

// catalogFile is the top-level structure of a catalog document.
type catalogFile struct {
	Cards []cardEntry `yaml:"cards"`
}

// cardEntry is one catalog record. The document is YAML; since YAML is a
// superset of JSON, a JSON catalog parses unchanged.
type cardEntry struct {
	ID    int    `yaml:"id"`
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
	Stats []int  `yaml:"stats"` // up, left, right, down
	Attr  string `yaml:"attr"`
	Img   string `yaml:"img"`
}

// Catalog is the immutable set of card definitions a match draws from.
type Catalog struct {
	cards []*Card
	byID  map[int]*Card
}

// ParseCatalog validates and indexes a catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(cf.Cards) == 0 {
		return nil, fmt.Errorf("parse catalog: no cards")
	}

	cat := &Catalog{byID: make(map[int]*Card, len(cf.Cards))}
	for _, e := range cf.Cards {
		card, err := e.toCard()
		if err != nil {
			return nil, fmt.Errorf("parse catalog: %w", err)
		}
		if _, dup := cat.byID[card.ID]; dup {
			return nil, fmt.Errorf("parse catalog: duplicate card id %d", card.ID)
		}
		cat.byID[card.ID] = card
		cat.cards = append(cat.cards, card)
	}
	return cat, nil
}

// LoadCatalog reads and parses a catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// DefaultCatalog returns the embedded 110-card catalog. The embedded data
// is validated at build time by the package tests, so a parse failure here
// is a programmer error.
func DefaultCatalog() *Catalog {
	cat, err := ParseCatalog(defaultCatalogData)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return cat
}

func (e cardEntry) toCard() (*Card, error) {
	if e.ID <= 0 {
		return nil, fmt.Errorf("card %q: id must be positive, got %d", e.Name, e.ID)
	}
	if e.Name == "" {
		return nil, fmt.Errorf("card %d: empty name", e.ID)
	}
	if e.Level < 1 || e.Level > 10 {
		return nil, fmt.Errorf("card %d (%s): level %d out of range 1-10", e.ID, e.Name, e.Level)
	}
	if len(e.Stats) != 4 {
		return nil, fmt.Errorf("card %d (%s): want 4 stats, got %d", e.ID, e.Name, len(e.Stats))
	}
	var stats Stats
	for i, v := range e.Stats {
		if v < 1 || v > 10 {
			return nil, fmt.Errorf("card %d (%s): stat %d out of range 1-10", e.ID, e.Name, v)
		}
		stats[i] = v
	}
	elem, err := ParseElement(e.Attr)
	if err != nil {
		return nil, fmt.Errorf("card %d (%s): %w", e.ID, e.Name, err)
	}
	return &Card{
		ID:      e.ID,
		Name:    e.Name,
		Level:   e.Level,
		Stats:   stats,
		Element: elem,
		Image:   e.Img,
	}, nil
}

// Len returns the number of cards in the catalog.
func (c *Catalog) Len() int {
	return len(c.cards)
}

// Cards returns the definitions in document order. Callers must not
// mutate the returned cards.
func (c *Catalog) Cards() []*Card {
	return c.cards
}

// CardByID looks up a definition.
func (c *Catalog) CardByID(id int) (*Card, bool) {
	card, ok := c.byID[id]
	return card, ok
}
