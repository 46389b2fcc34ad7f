package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestDefaultCatalog: the embedded catalog carries the full card set, with
// unique ids, eleven cards per level, and every stat in range.
func TestDefaultCatalog(t *testing.T) {
	cat := DefaultCatalog()
	if cat.Len() != 110 {
		t.Fatalf("Expected 110 cards in the default catalog, got %d", cat.Len())
	}

	seen := make(map[int]string)
	perLevel := make(map[int]int)
	for _, c := range cat.Cards() {
		if prev, dup := seen[c.ID]; dup {
			t.Fatalf("Duplicate card id %d (%s and %s)", c.ID, prev, c.Name)
		}
		seen[c.ID] = c.Name
		perLevel[c.Level]++
		if c.Level < 1 || c.Level > 10 {
			t.Errorf("Card %d (%s) has level %d out of range", c.ID, c.Name, c.Level)
		}
		for side, v := range c.Stats {
			if v < 1 || v > 10 {
				t.Errorf("Card %d (%s) has stat %d = %d out of range", c.ID, c.Name, side, v)
			}
		}
		if c.Name == "" {
			t.Errorf("Card %d has an empty name", c.ID)
		}
	}
	for level := 1; level <= 10; level++ {
		if perLevel[level] != 11 {
			t.Errorf("Expected 11 cards at level %d, got %d", level, perLevel[level])
		}
	}
}

// TestParseCatalog: a small hand-written document parses with elements and
// stat order intact.
func TestParseCatalog(t *testing.T) {
	doc := `
cards:
  - id: 1
    name: Dune Strider
    level: 3
    stats: [4, 7, 2, 5]
    attr: earth
  - id: 2
    name: Pale Wisp
    level: 1
    stats: [1, 1, 1, 1]
`
	cat, err := ParseCatalog([]byte(doc))
	if err != nil {
		t.Fatalf("ParseCatalog failed: %v", err)
	}
	if cat.Len() != 2 {
		t.Fatalf("Expected 2 cards, got %d", cat.Len())
	}

	c, ok := cat.CardByID(1)
	if !ok {
		t.Fatal("Expected card 1 to be indexed")
	}
	if c.Name != "Dune Strider" || c.Level != 3 {
		t.Fatalf("Card 1 parsed as %q level %d", c.Name, c.Level)
	}
	if c.Stats != (Stats{4, 7, 2, 5}) {
		t.Fatalf("Expected stats 4/7/2/5, got %v", c.Stats)
	}
	if c.Element != ElementEarth {
		t.Fatalf("Expected earth attribute, got %v", c.Element)
	}

	c, ok = cat.CardByID(2)
	if !ok {
		t.Fatal("Expected card 2 to be indexed")
	}
	if c.Element != ElementNone {
		t.Fatalf("Expected card 2 unattributed, got %v", c.Element)
	}

	if _, ok := cat.CardByID(99); ok {
		t.Fatal("Expected lookup of unknown id to miss")
	}
}

// TestParseCatalogRejects: malformed documents fail with a descriptive error.
func TestParseCatalogRejects(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "empty document",
			doc:  "cards: []",
			want: "no cards",
		},
		{
			name: "level out of range",
			doc: `
cards:
  - {id: 1, name: Test, level: 11, stats: [1, 1, 1, 1]}
`,
			want: "level 11 out of range",
		},
		{
			name: "wrong stat count",
			doc: `
cards:
  - {id: 1, name: Test, level: 1, stats: [1, 1, 1]}
`,
			want: "want 4 stats",
		},
		{
			name: "stat out of range",
			doc: `
cards:
  - {id: 1, name: Test, level: 1, stats: [1, 0, 1, 1]}
`,
			want: "out of range 1-10",
		},
		{
			name: "duplicate id",
			doc: `
cards:
  - {id: 1, name: First, level: 1, stats: [1, 1, 1, 1]}
  - {id: 1, name: Second, level: 1, stats: [2, 2, 2, 2]}
`,
			want: "duplicate card id 1",
		},
		{
			name: "unknown attribute",
			doc: `
cards:
  - {id: 1, name: Test, level: 1, stats: [1, 1, 1, 1], attr: lava}
`,
			want: "unknown element",
		},
		{
			name: "missing id",
			doc: `
cards:
  - {name: Test, level: 1, stats: [1, 1, 1, 1]}
`,
			want: "id must be positive",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tc.doc))
			if err == nil {
				t.Fatal("Expected parse error, got none")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Expected error containing %q, got %q", tc.want, err)
			}
		})
	}
}

// TestLoadCatalog: round-trips a document through a file, and reports a
// missing path.
func TestLoadCatalog(t *testing.T) {
	doc := `
cards:
  - {id: 7, name: Marsh Croaker, level: 2, stats: [2, 3, 2, 4], attr: water}
`
	path := filepath.Join(t.TempDir(), "cards.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if cat.Len() != 1 {
		t.Fatalf("Expected 1 card, got %d", cat.Len())
	}
	if c, ok := cat.CardByID(7); !ok || c.Element != ElementWater {
		t.Fatalf("Expected water card 7, got %+v (ok=%v)", c, ok)
	}

	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Expected missing file to error")
	}
}
