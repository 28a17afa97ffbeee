package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/darkclainer/wordgo/pkg/querier"
)

type ResponseStatus int

const (
	ResponseOK ResponseStatus = iota
	ResponsePartial
	ResponseBadRequest
	ResponseError
)

func (s ResponseStatus) String() string {
	switch s {
	case ResponseOK:
		return "ok"
	case ResponsePartial:
		return "partial"
	case ResponseBadRequest:
		return "bad request"
	default:
		return "error"
	}
}

type Response struct {
	Word       string         `json:"word,omitempty"`
	Definition string         `json:"definition,omitempty"`
	Synonyms   []string       `json:"synonyms,omitempty"`
	Errors     []string       `json:"errors,omitempty"`
	Status     ResponseStatus `json:"status"`
}

func newResponse(result *querier.Result, err error) *Response {
	if err != nil {
		status := ResponseError
		message := err.Error()
		if errors.Is(err, querier.ErrEmptyInput) {
			status = ResponseBadRequest
			message = "invalid input: word is empty"
		}
		return &Response{
			Errors: []string{message},
			Status: status,
		}
	}
	response := Response{
		Word:     result.Word,
		Synonyms: result.Synonyms,
	}
	if result.Definition != nil {
		response.Definition = *result.Definition
	}
	if result.DefinitionErr != nil {
		response.Errors = append(response.Errors, "definition unavailable: "+result.DefinitionErr.Error())
	}
	if result.SynonymsErr != nil {
		response.Errors = append(response.Errors, "synonyms unavailable: "+result.SynonymsErr.Error())
	}
	switch {
	case result.Failed():
		response.Status = ResponseError
	case result.Partial():
		response.Status = ResponsePartial
	default:
		response.Status = ResponseOK
	}
	return &response
}

func (r *Response) ExitCode() int {
	switch r.Status {
	case ResponseOK, ResponsePartial:
		return 0
	default:
		return codeLookupFailed
	}
}

func writeJSON(w io.Writer, r *Response) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "\t")
	return encoder.Encode(r)
}

func writeText(w io.Writer, r *Response) error {
	if r.Word == "" {
		_, err := fmt.Fprintf(w, "Lookup failed (%s)\n", r.Status)
		return err
	}
	_, err := fmt.Fprintf(w, "Word: %s\nDefinition: %s\nSynonyms: %s\n",
		r.Word,
		r.Definition,
		strings.Join(r.Synonyms, ", "),
	)
	return err
}
