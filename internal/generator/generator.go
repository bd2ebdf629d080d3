// Package generator builds typing text for a practice mode.
package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/verte-zerg/typemaster/internal/catalog"
	"github.com/verte-zerg/typemaster/internal/model"
)

// ModeCoding selects source code snippets.
const ModeCoding = "coding"

// ErrNoContent is returned when the catalog has nothing to offer for a request.
var ErrNoContent = errors.New("no content for mode")

// Source is the catalog view the generator reads from.
type Source interface {
	WordsByDifficulty(tier model.Difficulty) []model.Word
	SentencesByDifficulty(tier model.Difficulty) []model.Sentence
	WordsByTheme(theme string) []model.Word
	SentencesByTheme(theme string) []model.Sentence
	WordPacksUnlockedAtOrBelow(level int) []model.WordPack
}

// Request describes the text to produce.
type Request struct {
	Mode string
	// Themes limits word and sentence modes to these themes. Empty themes
	// and a zero Level mean any non-coding theme.
	Themes []string
	// Level adds the themes of every pack available at this level.
	Level int
	// Count is the number of words for word modes.
	Count int
	// Weak biases word selection toward words containing these runes.
	Weak       map[rune]struct{}
	WeakFactor float64
}

// Text is a generated target together with the catalog words it was built from.
type Text struct {
	Target string
	Words  []model.Word
}

// Generator produces randomized typing text.
type Generator struct {
	rnd *rand.Rand
	src Source
}

// New returns a Generator over src seeded with the current time.
func New(src Source) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano())), src: src}
}

// ParseMode splits a mode id like "words-medium" into its kind and tier.
func ParseMode(mode string) (kind string, tier model.Difficulty, err error) {
	if mode == ModeCoding {
		return ModeCoding, model.Hard, nil
	}
	kind, rawTier, ok := strings.Cut(mode, "-")
	if !ok || (kind != "words" && kind != "sentences") {
		return "", "", fmt.Errorf("unknown mode %q", mode)
	}
	tier, err = model.ParseDifficulty(rawTier)
	if err != nil {
		return "", "", fmt.Errorf("unknown mode %q: %w", mode, err)
	}
	return kind, tier, nil
}

// Text builds the target text for req.
func (g *Generator) Text(req Request) (Text, error) {
	kind, tier, err := ParseMode(req.Mode)
	if err != nil {
		return Text{}, err
	}
	switch kind {
	case ModeCoding:
		return g.coding()
	case "words":
		words := filterWords(g.src.WordsByDifficulty(tier), g.themes(req))
		if len(words) == 0 {
			return Text{}, fmt.Errorf("%w %q", ErrNoContent, req.Mode)
		}
		return g.words(words, req), nil
	default:
		sentences := filterSentences(g.src.SentencesByDifficulty(tier), g.themes(req))
		if len(sentences) == 0 {
			return Text{}, fmt.Errorf("%w %q", ErrNoContent, req.Mode)
		}
		s := sentences[g.rnd.Intn(len(sentences))]
		return Text{Target: s.Text}, nil
	}
}

// Review builds a word session from the player's mistake list.
func (g *Generator) Review(words []model.Word, count int) (Text, error) {
	if len(words) == 0 {
		return Text{}, fmt.Errorf("%w %q", ErrNoContent, "review")
	}
	return g.words(words, Request{Count: count}), nil
}

func (g *Generator) themes(req Request) []string {
	if req.Level <= 0 {
		return req.Themes
	}
	out := append([]string(nil), req.Themes...)
	for _, pack := range g.src.WordPacksUnlockedAtOrBelow(req.Level) {
		out = append(out, pack.Theme)
	}
	return out
}

func (g *Generator) coding() (Text, error) {
	words := g.src.WordsByTheme(catalog.CodingTheme)
	sentences := g.src.SentencesByTheme(catalog.CodingTheme)
	if len(words) == 0 && len(sentences) == 0 {
		return Text{}, fmt.Errorf("%w %q", ErrNoContent, ModeCoding)
	}
	if len(sentences) == 0 || (len(words) > 0 && g.rnd.Float64() > 0.5) {
		w := words[g.rnd.Intn(len(words))]
		return Text{Target: w.Text, Words: []model.Word{w}}, nil
	}
	return Text{Target: sentences[g.rnd.Intn(len(sentences))].Text}, nil
}

func (g *Generator) words(words []model.Word, req Request) Text {
	count := req.Count
	if count <= 0 {
		count = 1
	}
	var picked []model.Word
	if len(req.Weak) > 0 && req.WeakFactor > 0 {
		picked = g.weighted(words, count, req.Weak, req.WeakFactor)
	} else {
		picked = make([]model.Word, 0, count)
		for i := 0; i < count; i++ {
			picked = append(picked, words[g.rnd.Intn(len(words))])
		}
	}
	parts := make([]string, len(picked))
	for i, w := range picked {
		parts[i] = w.Text
	}
	return Text{Target: strings.Join(parts, " "), Words: picked}
}

func (g *Generator) weighted(words []model.Word, count int, weak map[rune]struct{}, factor float64) []model.Word {
	weights := make([]float64, len(words))
	total := 0.0
	for i, word := range words {
		weakCount := 0
		for _, r := range word.Text {
			if _, ok := weak[r]; ok {
				weakCount++
			}
		}
		w := 1.0 + float64(weakCount)*factor
		weights[i] = w
		total += w
	}

	result := make([]model.Word, 0, count)
	for i := 0; i < count; i++ {
		r := g.rnd.Float64() * total
		acc := 0.0
		idx := len(words) - 1
		for j, w := range weights {
			acc += w
			if r <= acc {
				idx = j
				break
			}
		}
		result = append(result, words[idx])
	}
	return result
}

func filterWords(words []model.Word, themes []string) []model.Word {
	out := make([]model.Word, 0, len(words))
	for _, w := range words {
		if allowedTheme(w.Theme, themes) {
			out = append(out, w)
		}
	}
	return out
}

func filterSentences(sentences []model.Sentence, themes []string) []model.Sentence {
	out := make([]model.Sentence, 0, len(sentences))
	for _, s := range sentences {
		if allowedTheme(s.Theme, themes) {
			out = append(out, s)
		}
	}
	return out
}

func allowedTheme(theme string, themes []string) bool {
	if theme == catalog.CodingTheme {
		return false
	}
	if len(themes) == 0 {
		return true
	}
	for _, t := range themes {
		if t == theme {
			return true
		}
	}
	return false
}

// MistakeWords returns, for each mistyped rune, the first word containing it.
// Each word appears at most once.
func MistakeWords(words []model.Word, mistakes []rune) []model.Word {
	var out []model.Word
	seen := map[string]struct{}{}
	for _, r := range mistakes {
		for _, w := range words {
			if !strings.ContainsRune(w.Text, r) {
				continue
			}
			if _, ok := seen[w.Text]; !ok {
				seen[w.Text] = struct{}{}
				out = append(out, w)
			}
			break
		}
	}
	return out
}
