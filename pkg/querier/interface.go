package querier

import (
	"context"

	"github.com/darkclainer/wordgo/pkg/parser"
)

//go:generate go run github.com/vektra/mockery/v2 --name Querier --output ../mocks/

// Querier is a single-call view of word-data API. Every method issues at most one
// logical request and returns echoed data untouched.
type Querier interface {
	RandomWord(ctx context.Context) (string, error)
	Definitions(ctx context.Context, word string) (*parser.Definitions, error)
	Synonyms(ctx context.Context, word string) (*parser.Synonyms, error)
	Close(ctx context.Context) error
}
