package parser

import (
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/gjson"
)

var ErrMalformed = errors.New("malformed response")

// ParseRandomWord extracts word from {"word": "..."} document.
func ParseRandomWord(page io.Reader) (string, error) {
	doc, err := readObject(page)
	if err != nil {
		return "", err
	}
	return requireString(doc, "word")
}

// ParseDefinitions parses {"word": "...", "definitions": [{"definition": "..."}, ...]}.
// Both word and definitions must be present, definitions may be empty.
func ParseDefinitions(page io.Reader) (*Definitions, error) {
	doc, err := readObject(page)
	if err != nil {
		return nil, err
	}
	word, err := requireString(doc, "word")
	if err != nil {
		return nil, err
	}
	items, err := requireArray(doc, "definitions")
	if err != nil {
		return nil, err
	}
	result := &Definitions{
		Word:        word,
		Definitions: make([]Definition, 0, len(items)),
	}
	for i, item := range items {
		if !item.IsObject() {
			return nil, fmt.Errorf("%w: definitions[%d] is not an object", ErrMalformed, i)
		}
		text, err := requireString(item, "definition")
		if err != nil {
			return nil, fmt.Errorf("definitions[%d]: %w", i, err)
		}
		result.Definitions = append(result.Definitions, Definition{
			Definition:   text,
			PartOfSpeech: item.Get("partOfSpeech").String(),
		})
	}
	return result, nil
}

// ParseSynonyms parses {"word": "...", "synonyms": ["...", ...]}.
func ParseSynonyms(page io.Reader) (*Synonyms, error) {
	doc, err := readObject(page)
	if err != nil {
		return nil, err
	}
	word, err := requireString(doc, "word")
	if err != nil {
		return nil, err
	}
	items, err := requireArray(doc, "synonyms")
	if err != nil {
		return nil, err
	}
	result := &Synonyms{
		Word:     word,
		Synonyms: make([]string, 0, len(items)),
	}
	for i, item := range items {
		if item.Type != gjson.String {
			return nil, fmt.Errorf("%w: synonyms[%d] is %s, expected string", ErrMalformed, i, item.Type)
		}
		result.Synonyms = append(result.Synonyms, item.String())
	}
	return result, nil
}

func readObject(page io.Reader) (gjson.Result, error) {
	raw, err := io.ReadAll(page)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("can not read page: %w", err)
	}
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, fmt.Errorf("%w: invalid json", ErrMalformed)
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return gjson.Result{}, fmt.Errorf("%w: expected object", ErrMalformed)
	}
	return doc, nil
}

func requireString(doc gjson.Result, field string) (string, error) {
	value := doc.Get(field)
	if !value.Exists() {
		return "", fmt.Errorf("%w: missing %q field", ErrMalformed, field)
	}
	if value.Type != gjson.String {
		return "", fmt.Errorf("%w: field %q is %s, expected string", ErrMalformed, field, value.Type)
	}
	return value.String(), nil
}

func requireArray(doc gjson.Result, field string) ([]gjson.Result, error) {
	value := doc.Get(field)
	if !value.Exists() {
		return nil, fmt.Errorf("%w: missing %q field", ErrMalformed, field)
	}
	if !value.IsArray() {
		return nil, fmt.Errorf("%w: field %q is not an array", ErrMalformed, field)
	}
	return value.Array(), nil
}
