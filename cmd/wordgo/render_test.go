package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkclainer/wordgo/pkg/querier"
)

func TestNewResponse(t *testing.T) {
	definition := `"feeling joy"`
	testCases := map[string]struct {
		result   *querier.Result
		err      error
		expected *Response
		code     int
	}{
		"full result": {
			result: &querier.Result{
				Word:       "happy",
				Definition: &definition,
				Synonyms:   []string{"glad", "joyful"},
			},
			expected: &Response{
				Word:       "happy",
				Definition: `"feeling joy"`,
				Synonyms:   []string{"glad", "joyful"},
				Status:     ResponseOK,
			},
		},
		"partial result": {
			result: &querier.Result{
				Word:          "happy",
				Synonyms:      []string{"glad"},
				DefinitionErr: querier.ErrParse,
			},
			expected: &Response{
				Word:     "happy",
				Synonyms: []string{"glad"},
				Errors:   []string{"definition unavailable: parse error"},
				Status:   ResponsePartial,
			},
		},
		"both failed": {
			result: &querier.Result{
				Word:          "qwzx",
				Synonyms:      []string{},
				DefinitionErr: querier.ErrNetwork,
				SynonymsErr:   querier.ErrNetwork,
			},
			expected: &Response{
				Word:     "qwzx",
				Synonyms: []string{},
				Errors: []string{
					"definition unavailable: network error",
					"synonyms unavailable: network error",
				},
				Status: ResponseError,
			},
			code: codeLookupFailed,
		},
		"empty input": {
			err: querier.ErrEmptyInput,
			expected: &Response{
				Errors: []string{"invalid input: word is empty"},
				Status: ResponseBadRequest,
			},
			code: codeLookupFailed,
		},
		"random failed": {
			err: fmt.Errorf("can not resolve random word: %w", querier.ErrNetwork),
			expected: &Response{
				Errors: []string{"can not resolve random word: network error"},
				Status: ResponseError,
			},
			code: codeLookupFailed,
		},
	}
	for name := range testCases {
		tc := testCases[name]
		t.Run(name, func(t *testing.T) {
			response := newResponse(tc.result, tc.err)
			assert.Equal(t, tc.expected, response)
			assert.Equal(t, tc.code, response.ExitCode())
		})
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	err := writeText(&buf, &Response{
		Word:       "happy",
		Definition: `"feeling joy"`,
		Synonyms:   []string{"glad", "joyful"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Word: happy\nDefinition: \"feeling joy\"\nSynonyms: glad, joyful\n", buf.String())

	buf.Reset()
	err = writeText(&buf, &Response{Status: ResponseBadRequest})
	require.NoError(t, err)
	assert.Equal(t, "Lookup failed (bad request)\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	err := writeJSON(&buf, &Response{Word: "happy", Synonyms: []string{"glad"}, Status: ResponsePartial})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "happy", decoded["word"])
	assert.Equal(t, []interface{}{"glad"}, decoded["synonyms"])
	assert.Equal(t, float64(ResponsePartial), decoded["status"])
	assert.NotContains(t, decoded, "definition")
}
