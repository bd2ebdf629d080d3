// Package catalog provides the read-only word and sentence content.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/typemaster/internal/gating"
	"github.com/verte-zerg/typemaster/internal/model"
)

// CodingTheme marks entries that feed the coding mode.
const CodingTheme = "coding"

//go:embed builtin.yaml
var builtinPacks []byte

// Catalog is an immutable set of word packs.
type Catalog struct {
	packs []model.WordPack
	index map[string]int
}

type packFile struct {
	Packs []model.WordPack `yaml:"packs"`
}

// New validates packs and builds a Catalog. A later pack with the same id
// replaces an earlier one in place.
func New(packs []model.WordPack) (*Catalog, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	c := &Catalog{index: map[string]int{}}
	for _, pack := range packs {
		pack = fillDefaults(pack)
		if err := validate.Struct(pack); err != nil {
			return nil, fmt.Errorf("invalid pack %q: %w", pack.ID, err)
		}
		if i, ok := c.index[pack.ID]; ok {
			c.packs[i] = pack
			continue
		}
		c.index[pack.ID] = len(c.packs)
		c.packs = append(c.packs, pack)
	}
	return c, nil
}

// Builtin returns the catalog shipped with the binary.
func Builtin() (*Catalog, error) {
	packs, err := Decode(bytes.NewReader(builtinPacks))
	if err != nil {
		return nil, fmt.Errorf("failed to decode builtin packs: %w", err)
	}
	return New(packs)
}

// Load returns the builtin catalog extended with the packs in extraPath.
// An empty extraPath loads only the builtin packs.
func Load(extraPath string) (*Catalog, error) {
	packs, err := Decode(bytes.NewReader(builtinPacks))
	if err != nil {
		return nil, fmt.Errorf("failed to decode builtin packs: %w", err)
	}
	if strings.TrimSpace(extraPath) != "" {
		extra, err := LoadPacksFile(extraPath)
		if err != nil {
			return nil, err
		}
		packs = append(packs, extra...)
	}
	return New(packs)
}

// LoadPacksFile reads packs from path. Files ending in .txt are plain word
// lists; anything else is decoded as YAML.
func LoadPacksFile(path string) ([]model.WordPack, error) {
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		pack, err := LoadWordList(path)
		if err != nil {
			return nil, err
		}
		return []model.WordPack{pack}, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open packs: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	packs, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if len(packs) == 0 {
		return nil, fmt.Errorf("pack file %s is empty", path)
	}
	return packs, nil
}

// Decode parses a YAML document with a top-level packs list.
func Decode(r io.Reader) ([]model.WordPack, error) {
	var doc packFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return doc.Packs, nil
}

// Packs returns all packs in load order.
func (c *Catalog) Packs() []model.WordPack {
	out := make([]model.WordPack, len(c.packs))
	copy(out, c.packs)
	return out
}

// Pack looks up a pack by id.
func (c *Catalog) Pack(id string) (model.WordPack, bool) {
	i, ok := c.index[id]
	if !ok {
		return model.WordPack{}, false
	}
	return c.packs[i], true
}

// WordsByDifficulty lists every word of tier across all packs.
func (c *Catalog) WordsByDifficulty(tier model.Difficulty) []model.Word {
	out := []model.Word{}
	for _, pack := range c.packs {
		for _, w := range pack.Words {
			if w.Difficulty == tier {
				out = append(out, w)
			}
		}
	}
	return out
}

// SentencesByDifficulty lists every sentence of tier across all packs.
func (c *Catalog) SentencesByDifficulty(tier model.Difficulty) []model.Sentence {
	out := []model.Sentence{}
	for _, pack := range c.packs {
		for _, s := range pack.Sentences {
			if s.Difficulty == tier {
				out = append(out, s)
			}
		}
	}
	return out
}

// WordsByTheme lists every word tagged with theme.
func (c *Catalog) WordsByTheme(theme string) []model.Word {
	out := []model.Word{}
	for _, pack := range c.packs {
		for _, w := range pack.Words {
			if w.Theme == theme {
				out = append(out, w)
			}
		}
	}
	return out
}

// SentencesByTheme lists every sentence tagged with theme.
func (c *Catalog) SentencesByTheme(theme string) []model.Sentence {
	out := []model.Sentence{}
	for _, pack := range c.packs {
		for _, s := range pack.Sentences {
			if s.Theme == theme {
				out = append(out, s)
			}
		}
	}
	return out
}

// WordPacksUnlockedAtOrBelow lists packs a player at level may select.
func (c *Catalog) WordPacksUnlockedAtOrBelow(level int) []model.WordPack {
	return gating.Available(c.packs, level)
}

// WithThemeLevels returns a copy whose packs take the required level of their
// theme from themes. Packs with other themes keep their own level.
func (c *Catalog) WithThemeLevels(themes []gating.Unlock) *Catalog {
	levels := make(map[string]int, len(themes))
	for _, u := range themes {
		levels[u.ID] = u.Level
	}
	out := &Catalog{packs: c.Packs(), index: make(map[string]int, len(c.index))}
	for i := range out.packs {
		if level, ok := levels[out.packs[i].Theme]; ok {
			out.packs[i].RequiredLevel = level
		}
		out.index[out.packs[i].ID] = i
	}
	return out
}

// Entries inherit the pack difficulty and theme unless they set their own.
func fillDefaults(pack model.WordPack) model.WordPack {
	pack.ID = strings.TrimSpace(pack.ID)
	if pack.Theme == "" {
		pack.Theme = pack.ID
	}
	if pack.Name == "" {
		pack.Name = pack.ID
	}
	if pack.Difficulty == "" {
		pack.Difficulty = model.Easy
	}

	words := make([]model.Word, 0, len(pack.Words))
	for _, w := range pack.Words {
		w.Text = strings.TrimSpace(w.Text)
		if w.Difficulty == "" {
			w.Difficulty = pack.Difficulty
		}
		if w.Theme == "" {
			w.Theme = pack.Theme
		}
		words = append(words, w)
	}
	pack.Words = words

	sentences := make([]model.Sentence, 0, len(pack.Sentences))
	for _, s := range pack.Sentences {
		s.Text = strings.TrimSpace(s.Text)
		if s.Difficulty == "" {
			s.Difficulty = pack.Difficulty
		}
		if s.Theme == "" {
			s.Theme = pack.Theme
		}
		sentences = append(sentences, s)
	}
	pack.Sentences = sentences
	return pack
}
