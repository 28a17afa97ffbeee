package querier

import (
	"strings"
)

// Query is either a request for a random word or a literal word to look up.
// Zero value is an empty literal query.
type Query struct {
	random bool
	text   string
}

func Random() Query {
	return Query{random: true}
}

func Literal(text string) Query {
	return Query{text: text}
}

func (q Query) IsRandom() bool {
	return q.random
}

// Text returns literal text as it was given.
func (q Query) Text() string {
	return q.text
}

func (q Query) String() string {
	if q.random {
		return "<random>"
	}
	return q.text
}

// normalizeWord trims surrounding whitespace, inner spaces are kept.
func normalizeWord(text string) (string, error) {
	word := strings.TrimSpace(text)
	if word == "" {
		return "", ErrEmptyInput
	}
	return word, nil
}
