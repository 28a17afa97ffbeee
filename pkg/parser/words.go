package parser

// Definition is a single sense of a word as returned by the definitions endpoint.
type Definition struct {
	Definition   string `json:"definition"`
	PartOfSpeech string `json:"partOfSpeech,omitempty"`
}

type Definitions struct {
	Word        string       `json:"word"`
	Definitions []Definition `json:"definitions"`
}

// First returns text of the first definition in API order.
func (d *Definitions) First() (string, bool) {
	if len(d.Definitions) == 0 {
		return "", false
	}
	return d.Definitions[0].Definition, true
}

type Synonyms struct {
	Word     string   `json:"word"`
	Synonyms []string `json:"synonyms"`
}
