package model

// MistakeEntry is either a CharMistake or a WordMistake.
type MistakeEntry interface {
	mistakeEntry()
	// Key identifies the entry for set semantics.
	Key() string
}

// CharMistake is an expected character that was mistyped during a session.
type CharMistake struct {
	Char rune
}

// WordMistake is a vocabulary entry the player missed.
type WordMistake struct {
	Word Word
}

func (CharMistake) mistakeEntry() {}
func (WordMistake) mistakeEntry() {}

// Key returns the character as a string.
func (m CharMistake) Key() string { return string(m.Char) }

// Key returns the word text.
func (m WordMistake) Key() string { return m.Word.Text }
