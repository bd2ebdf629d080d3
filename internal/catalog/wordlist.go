package catalog

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/typemaster/internal/model"
)

// LoadWordList reads one word per line from path into a pack named after the file.
// Blank lines and entries with non-letter runes are skipped.
func LoadWordList(path string) (model.WordPack, error) {
	file, err := os.Open(path)
	if err != nil {
		return model.WordPack{}, fmt.Errorf("failed to open word list: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	pack := model.WordPack{
		ID:            id,
		Name:          id,
		Theme:         id,
		Difficulty:    model.Easy,
		RequiredLevel: 1,
	}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if !lettersOnly(word) {
			continue
		}
		pack.Words = append(pack.Words, model.Word{Text: word, Difficulty: DifficultyForWord(word)})
	}
	if err := scanner.Err(); err != nil {
		return model.WordPack{}, fmt.Errorf("failed to read word list: %w", err)
	}
	if len(pack.Words) == 0 {
		return model.WordPack{}, fmt.Errorf("word list %s is empty", path)
	}
	return pack, nil
}

// DifficultyForWord buckets a bare word by length.
func DifficultyForWord(word string) model.Difficulty {
	switch n := utf8.RuneCountInString(word); {
	case n <= 5:
		return model.Easy
	case n <= 8:
		return model.Medium
	default:
		return model.Hard
	}
}

func lettersOnly(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
