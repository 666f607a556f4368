package vocabulary

import (
	"fmt"
	"strings"

	"greek-vocab-trainer/pkg/validator"
)

// Entry represents a vocabulary word with its accepted meanings
type Entry struct {
	Term     string   `json:"term" validate:"required"`
	Meaning  string   `json:"meaning" validate:"required"`
	Category Category `json:"category"`
}

// Category represents the grammatical category of a word
type Category string

const (
	CategoryNoun        Category = "noun"
	CategoryVerb        Category = "verb"
	CategoryAdjective   Category = "adjective"
	CategoryPreposition Category = "preposition"
	CategoryConjunction Category = "conjunction"
	CategoryParticle    Category = "particle"
	CategoryAdverb      Category = "adverb"
	CategoryPronoun     Category = "pronoun"
)

// Categories lists the well-known categories offered when adding a word.
// Entries may carry any other tag.
var Categories = []Category{
	CategoryNoun,
	CategoryVerb,
	CategoryAdjective,
	CategoryPreposition,
	CategoryConjunction,
	CategoryParticle,
	CategoryAdverb,
	CategoryPronoun,
}

// NewEntry creates a validated entry. Term and meaning are trimmed, the
// category is trimmed and lowercased.
func NewEntry(term, meaning, category string) (Entry, error) {
	e := Entry{Term: term, Meaning: meaning, Category: Category(category)}.Clean()

	if err := e.Validate(); err != nil {
		return Entry{}, err
	}

	return e, nil
}

// Clean returns e with term and meaning trimmed and the category normalized
func (e Entry) Clean() Entry {
	return Entry{
		Term:     strings.TrimSpace(e.Term),
		Meaning:  strings.TrimSpace(e.Meaning),
		Category: ParseCategory(string(e.Category)),
	}
}

// ParseCategory normalizes a free-form category tag
func ParseCategory(s string) Category {
	return Category(strings.ToLower(strings.TrimSpace(s)))
}

// Validate checks that the required fields are present
func (e Entry) Validate() error {
	if err := validator.ValidateStruct(e); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if strings.TrimSpace(e.Term) == "" || strings.TrimSpace(e.Meaning) == "" {
		return fmt.Errorf("%w: term and meaning must not be blank", ErrValidation)
	}
	return nil
}

// IsKnownCategory checks if a category is one of the predefined tags
func IsKnownCategory(category Category) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// String renders the entry the way the word list and search show it
func (e Entry) String() string {
	return fmt.Sprintf("%s — %s [%s]", e.Term, e.Meaning, e.Category)
}
