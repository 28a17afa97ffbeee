package querier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/darkclainer/wordgo/pkg/parser"
)

// Result is a merged outcome of definitions and synonyms lookups.
// Failed sub-lookup leaves its field empty and sets corresponding error.
type Result struct {
	// Word is the resolved word as API echoed it
	Word string
	// Definition is the first definition in quotes, nil if there is none
	Definition *string
	Synonyms   []string

	DefinitionErr error
	SynonymsErr   error
}

// Partial reports whether at least one sub-lookup failed.
func (r *Result) Partial() bool {
	return r.DefinitionErr != nil || r.SynonymsErr != nil
}

// Failed reports whether both sub-lookups failed.
func (r *Result) Failed() bool {
	return r.DefinitionErr != nil && r.SynonymsErr != nil
}

// Err joins sub-lookup errors, nil when both succeeded.
func (r *Result) Err() error {
	return errors.Join(r.DefinitionErr, r.SynonymsErr)
}

// Service combines single calls of Querier into word lookups.
// It keeps no state between calls and is safe for concurrent use.
type Service struct {
	q      Querier
	logger *zap.Logger
}

func NewService(q Querier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		q:      q,
		logger: logger,
	}
}

func (s *Service) ResolveRandomWord(ctx context.Context) (string, error) {
	word, err := s.q.RandomWord(ctx)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(word) == "" {
		return "", fmt.Errorf("%w: random word is empty", ErrParse)
	}
	return word, nil
}

// FetchDefinition returns first definition of word wrapped in quotes
// or nil if API knows no definitions.
func (s *Service) FetchDefinition(ctx context.Context, word string) (*string, error) {
	word, err := normalizeWord(word)
	if err != nil {
		return nil, err
	}
	definitions, err := s.q.Definitions(ctx, word)
	if err != nil {
		return nil, err
	}
	return quoteFirst(definitions), nil
}

func (s *Service) FetchSynonyms(ctx context.Context, word string) ([]string, error) {
	word, err := normalizeWord(word)
	if err != nil {
		return nil, err
	}
	synonyms, err := s.q.Synonyms(ctx, word)
	if err != nil {
		return nil, err
	}
	return synonymList(synonyms), nil
}

// Lookup resolves query and fetches definition and synonyms concurrently.
// Error is returned only when there is no word to look up: random word
// can not be resolved or literal query is blank. Sub-lookup failures are
// reported through Result.
func (s *Service) Lookup(ctx context.Context, query Query) (*Result, error) {
	logger := s.logger.With(
		zap.String("lookup_id", uuid.NewString()),
		zap.Stringer("query", query),
	)
	word, err := s.resolve(ctx, query)
	if err != nil {
		logger.Error("Can not resolve word", zap.Error(err))
		return nil, err
	}
	logger = logger.With(zap.String("word", word))

	var (
		definitions    *parser.Definitions
		definitionsErr error
		synonyms       *parser.Synonyms
		synonymsErr    error
		g              errgroup.Group
	)
	g.Go(func() error {
		definitions, definitionsErr = s.q.Definitions(ctx, word)
		return definitionsErr
	})
	g.Go(func() error {
		synonyms, synonymsErr = s.q.Synonyms(ctx, word)
		return synonymsErr
	})
	if err := g.Wait(); err != nil {
		if definitionsErr != nil {
			logger.Error("Definitions lookup failed", zap.Error(definitionsErr))
		}
		if synonymsErr != nil {
			logger.Error("Synonyms lookup failed", zap.Error(synonymsErr))
		}
	}

	result := &Result{
		Word:          word,
		Synonyms:      []string{},
		DefinitionErr: definitionsErr,
		SynonymsErr:   synonymsErr,
	}
	if synonymsErr == nil {
		result.Word = synonyms.Word
		result.Synonyms = synonymList(synonyms)
	}
	if definitionsErr == nil {
		if synonymsErr == nil && definitions.Word != synonyms.Word {
			logger.Warn("API echoed different words",
				zap.String("definitions_word", definitions.Word),
				zap.String("synonyms_word", synonyms.Word),
			)
		}
		result.Word = definitions.Word
		result.Definition = quoteFirst(definitions)
	}
	logger.Debug("Lookup finished",
		zap.String("resolved", result.Word),
		zap.Bool("partial", result.Partial()),
	)
	return result, nil
}

func (s *Service) Close(ctx context.Context) error {
	return s.q.Close(ctx)
}

func (s *Service) resolve(ctx context.Context, query Query) (string, error) {
	if query.IsRandom() {
		word, err := s.ResolveRandomWord(ctx)
		if err != nil {
			return "", fmt.Errorf("can not resolve random word: %w", err)
		}
		return word, nil
	}
	return normalizeWord(query.Text())
}

func quoteFirst(definitions *parser.Definitions) *string {
	first, ok := definitions.First()
	if !ok {
		return nil
	}
	quoted := `"` + first + `"`
	return &quoted
}

func synonymList(synonyms *parser.Synonyms) []string {
	if synonyms.Synonyms == nil {
		return []string{}
	}
	return synonyms.Synonyms
}
