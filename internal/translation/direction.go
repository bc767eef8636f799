package translation

import (
	"fmt"
	"strings"
)

// Direction selects source and target language of a translation
type Direction int

const (
	EnglishToGerman Direction = iota
	GermanToEnglish
)

const (
	englishToGermanPrompt = "You are the perfect English to German translator."
	germanToEnglishPrompt = "You are the perfect German to English translator."

	userPromptPrefix = "Translate the following:\n\n"
)

// SystemPrompt returns the system instruction sent for this direction
func (d Direction) SystemPrompt() string {
	if d == GermanToEnglish {
		return germanToEnglishPrompt
	}
	return englishToGermanPrompt
}

// Source returns the language name of the input
func (d Direction) Source() string {
	if d == GermanToEnglish {
		return "German"
	}
	return "English"
}

// Target returns the language name of the output
func (d Direction) Target() string {
	if d == GermanToEnglish {
		return "English"
	}
	return "German"
}

// Reverse returns the opposite direction
func (d Direction) Reverse() Direction {
	if d == GermanToEnglish {
		return EnglishToGerman
	}
	return GermanToEnglish
}

func (d Direction) String() string {
	if d == GermanToEnglish {
		return "de-en"
	}
	return "en-de"
}

// ParseDirection accepts "en-de" or "de-en" (case-insensitive)
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "en-de", "en2de":
		return EnglishToGerman, nil
	case "de-en", "de2en":
		return GermanToEnglish, nil
	default:
		return EnglishToGerman, fmt.Errorf("unknown translation direction: %q", s)
	}
}

// userPrompt builds the user message; the text is passed through verbatim
func userPrompt(text string) string {
	return userPromptPrefix + text
}
