// Package catalog implements the factor and character master data the
// filter core indexes into. Data is read from YAML; an embedded default
// set is used when no file is configured.
package catalog

import (
	"cmp"
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/ancestry"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/filter"
)

//go:embed default.yaml
var defaultData []byte

// file is the YAML layout of a master data file.
type file struct {
	Factors      map[string][]filter.Descriptor `yaml:"factors"`
	Characters   []ancestry.Profile             `yaml:"characters"`
	SupportCards []supportCard                  `yaml:"support_cards"`
}

type supportCard struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

// MasterData is an immutable, indexed copy of the master data.
// A nil *MasterData is an empty catalog.
type MasterData struct {
	factors    map[filter.Color][]filter.Descriptor
	characters map[int]ancestry.Profile
	supports   map[int]string
}

// Default returns the embedded master data.
func Default() *MasterData {
	md, err := Parse(defaultData)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded data: %v", err))
	}

	return md
}

// Load reads a master data file. An empty path returns [Default].
func Load(path string) (*MasterData, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogRead, err)
	}

	md, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return md, nil
}

// Parse decodes master data YAML.
func Parse(data []byte) (*MasterData, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogInvalid, err)
	}

	md := &MasterData{
		factors:    make(map[filter.Color][]filter.Descriptor, len(f.Factors)),
		characters: make(map[int]ancestry.Profile, len(f.Characters)),
		supports:   make(map[int]string, len(f.SupportCards)),
	}

	for name, descs := range f.Factors {
		color, err := filter.ParseColor(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCatalogInvalid, err)
		}

		seen := make(map[int]bool, len(descs))
		for _, d := range descs {
			if d.ID <= 0 {
				return nil, fmt.Errorf("%w: %s factor id %d", ErrCatalogInvalid, color, d.ID)
			}

			if seen[d.ID] {
				return nil, fmt.Errorf("%w: %s factor id %d listed twice", ErrCatalogInvalid, color, d.ID)
			}

			seen[d.ID] = true
		}

		md.factors[color] = descs
	}

	for _, p := range f.Characters {
		if p.ID <= 0 {
			return nil, fmt.Errorf("%w: character id %d", ErrCatalogInvalid, p.ID)
		}

		md.characters[p.ID] = p
	}

	for _, s := range f.SupportCards {
		if s.ID <= 0 {
			return nil, fmt.Errorf("%w: support card id %d", ErrCatalogInvalid, s.ID)
		}

		md.supports[s.ID] = s.Name
	}

	return md, nil
}

// Lookup returns the ordered descriptors for the colour class of c.
func (md *MasterData) Lookup(c filter.Category) []filter.Descriptor {
	if md == nil {
		return nil
	}

	return md.factors[c.Color()]
}

// Character implements [ancestry.Characters].
func (md *MasterData) Character(id int) (ancestry.Profile, bool) {
	if md == nil {
		return ancestry.Profile{}, false
	}

	p, ok := md.characters[id]

	return p, ok
}

// SupportCard returns the display name of a support card.
func (md *MasterData) SupportCard(id int) (string, bool) {
	if md == nil {
		return "", false
	}

	name, ok := md.supports[id]

	return name, ok
}

// ResolveFactor turns user input into a factor id for c. Input may be a
// numeric id, a case-insensitive display text, or "any"/"" for the
// wildcard. Numeric ids are accepted even when the catalog lacks them.
func (md *MasterData) ResolveFactor(c filter.Category, input string) (int, error) {
	input = strings.TrimSpace(input)

	if input == "" || strings.EqualFold(input, "any") {
		return filter.Wildcard, nil
	}

	if n, err := strconv.Atoi(input); err == nil {
		if !filter.ValidFactorID(n) {
			return 0, fmt.Errorf("%w: %d", ErrUnknownFactor, n)
		}

		return n, nil
	}

	for _, d := range md.Lookup(c) {
		if strings.EqualFold(d.Text, input) {
			return d.ID, nil
		}
	}

	return 0, fmt.Errorf("%w: %q in %s", ErrUnknownFactor, input, c)
}

// Characters returns every character profile sorted by id.
func (md *MasterData) Characters() []ancestry.Profile {
	if md == nil {
		return nil
	}

	out := make([]ancestry.Profile, 0, len(md.characters))
	for _, p := range md.characters {
		out = append(out, p)
	}

	slices.SortFunc(out, func(a, b ancestry.Profile) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return out
}

// ResolveCharacter turns user input into a character identity. Input may
// be a numeric identity or a case-insensitive character name; a name shared
// by several outfits resolves to the lowest identity.
func (md *MasterData) ResolveCharacter(input string) (int, error) {
	input = strings.TrimSpace(input)

	if n, err := strconv.Atoi(input); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("%w: %d", ErrUnknownCharacter, n)
		}

		return n, nil
	}

	for _, p := range md.Characters() {
		if strings.EqualFold(p.Name, input) {
			return p.ID, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownCharacter, input)
}
