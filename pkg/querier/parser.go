package querier

import (
	"io"

	"github.com/darkclainer/wordgo/pkg/parser"
)

type Parser interface {
	ParseRandomWord(page io.Reader) (string, error)
	ParseDefinitions(page io.Reader) (*parser.Definitions, error)
	ParseSynonyms(page io.Reader) (*parser.Synonyms, error)
}

// JSONParser parses WordsAPI JSON responses.
type JSONParser struct{}

func (p *JSONParser) ParseRandomWord(page io.Reader) (string, error) {
	return parser.ParseRandomWord(page)
}

func (p *JSONParser) ParseDefinitions(page io.Reader) (*parser.Definitions, error) {
	return parser.ParseDefinitions(page)
}

func (p *JSONParser) ParseSynonyms(page io.Reader) (*parser.Synonyms, error) {
	return parser.ParseSynonyms(page)
}
