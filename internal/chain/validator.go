// apps/go-server/internal/chain/validator.go
//
// Word chain validator.
// A candidate is checked in a fixed order and the first failing check decides
// the verdict:
//   1. normalize (trim, lowercase, NFC)
//   2. character set (a–z plus á é í ó ú ñ)
//   3. already used
//   4. starting letter (only when one is required)
//   5. dictionary membership
//
// The validator is stateless: callers carry used words and the required
// letter between calls and feed back Verdict.NextLetter.

package chain

import (
	"unicode/utf8"

	"github.com/robalobadob/games/apps/go-server/internal/words"
)

// Reason is a machine-readable rejection code.
type Reason string

const (
	ReasonNone                Reason = ""
	ReasonInvalidCharacters   Reason = "invalid_characters"
	ReasonAlreadyUsed         Reason = "already_used"
	ReasonWrongStartingLetter Reason = "wrong_starting_letter"
	ReasonNotInDictionary     Reason = "not_in_dictionary"

	// ReasonTimeout is never produced by Validate; turn-based matches use it
	// when a player runs out of time.
	ReasonTimeout Reason = "timeout"
)

// Reasons lists every rejection code in check order.
var Reasons = []Reason{
	ReasonInvalidCharacters,
	ReasonAlreadyUsed,
	ReasonWrongStartingLetter,
	ReasonNotInDictionary,
}

// Verdict is the outcome of validating one candidate.
// Word and NextLetter are only set when Accepted.
type Verdict struct {
	Accepted   bool   `json:"accepted"`
	Reason     Reason `json:"reasonCode,omitempty"`
	Word       string `json:"normalizedWord,omitempty"`
	NextLetter string `json:"nextRequiredLetter,omitempty"`
	// Candidate and Required echo the normalized inputs for messages.
	Candidate string `json:"-"`
	Required  string `json:"-"`
}

// Validator checks candidates against an injected dictionary.
type Validator struct {
	dict words.Dictionary
}

// NewValidator returns a Validator backed by dict.
func NewValidator(dict words.Dictionary) *Validator {
	return &Validator{dict: dict}
}

// Validate runs the checks for candidate given the words already used and
// the letter the word must start with ("" when unconstrained).
func (v *Validator) Validate(candidate string, used []string, requiredFirst string) Verdict {
	return Validate(v.dict, candidate, used, requiredFirst)
}

// Validate is the call-time injection form of Validator.Validate.
func Validate(dict words.Dictionary, candidate string, used []string, requiredFirst string) Verdict {
	word := words.Normalize(candidate)
	required := words.Normalize(requiredFirst)

	if !ValidCharacters(word) {
		return reject(ReasonInvalidCharacters, word, required)
	}
	for _, u := range used {
		if words.Normalize(u) == word {
			return reject(ReasonAlreadyUsed, word, required)
		}
	}
	if required != "" && !startsWith(word, required) {
		return reject(ReasonWrongStartingLetter, word, required)
	}
	if dict == nil || !dict.Contains(word) {
		return reject(ReasonNotInDictionary, word, required)
	}

	return Verdict{
		Accepted:   true,
		Word:       word,
		NextLetter: LastLetter(word),
		Candidate:  word,
		Required:   required,
	}
}

func reject(r Reason, word, required string) Verdict {
	return Verdict{Reason: r, Candidate: word, Required: required}
}

// ValidCharacters reports whether w is non-empty and made only of
// lowercase a–z and the Spanish letters á é í ó ú ñ.
func ValidCharacters(w string) bool {
	if w == "" {
		return false
	}
	for _, r := range w {
		if r >= 'a' && r <= 'z' {
			continue
		}
		switch r {
		case 'á', 'é', 'í', 'ó', 'ú', 'ñ':
			continue
		}
		return false
	}
	return true
}

// startsWith compares the first rune of w with the first rune of letter.
func startsWith(w, letter string) bool {
	first, _ := utf8.DecodeRuneInString(w)
	want, _ := utf8.DecodeRuneInString(letter)
	return first == want
}

// LastLetter returns the final rune of w as a string ("" for empty input).
func LastLetter(w string) string {
	r, size := utf8.DecodeLastRuneInString(w)
	if size == 0 || r == utf8.RuneError {
		return ""
	}
	return string(r)
}
