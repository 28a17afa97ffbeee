package querier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v2"
	"go.uber.org/zap"

	"github.com/darkclainer/wordgo/pkg/parser"
)

type CachedConfig struct {
	// Enabled turns on process-local cache of definitions and synonyms
	Enabled bool
	// TTL limits lifetime of cached response, zero keeps it until exit
	TTL time.Duration
}

// Cached remembers successful definitions and synonyms responses of wrapped querier.
// Random words and failures always go to wrapped querier.
type Cached struct {
	querier Querier
	storage *Storage
	logger  *zap.Logger
}

func NewCached(querier Querier, config *CachedConfig, logger *zap.Logger) (*Cached, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("can not open cache: %w", err)
	}
	return &Cached{
		querier: querier,
		storage: &Storage{DB: db, TTL: config.TTL},
		logger:  logger.With(zap.String("querier", "cached")),
	}, nil
}

func (c *Cached) RandomWord(ctx context.Context) (string, error) {
	return c.querier.RandomWord(ctx)
}

func (c *Cached) Definitions(ctx context.Context, word string) (*parser.Definitions, error) {
	cached, err := c.storage.GetDefinitions(word)
	if err == nil {
		c.logger.Debug("Definitions served from cache", zap.String("word", word))
		return cached, nil
	}
	if !errors.Is(err, badger.ErrKeyNotFound) {
		c.logger.Warn("Cache read failed", zap.String("word", word), zap.Error(err))
	}
	definitions, err := c.querier.Definitions(ctx, word)
	if err != nil {
		return nil, err
	}
	if err := c.storage.PutDefinitions(word, definitions); err != nil {
		c.logger.Warn("Cache write failed", zap.String("word", word), zap.Error(err))
	}
	return definitions, nil
}

func (c *Cached) Synonyms(ctx context.Context, word string) (*parser.Synonyms, error) {
	cached, err := c.storage.GetSynonyms(word)
	if err == nil {
		c.logger.Debug("Synonyms served from cache", zap.String("word", word))
		return cached, nil
	}
	if !errors.Is(err, badger.ErrKeyNotFound) {
		c.logger.Warn("Cache read failed", zap.String("word", word), zap.Error(err))
	}
	synonyms, err := c.querier.Synonyms(ctx, word)
	if err != nil {
		return nil, err
	}
	if err := c.storage.PutSynonyms(word, synonyms); err != nil {
		c.logger.Warn("Cache write failed", zap.String("word", word), zap.Error(err))
	}
	return synonyms, nil
}

func (c *Cached) Close(ctx context.Context) error {
	c.logStats()
	var errs []error
	if closeErr := c.querier.Close(ctx); closeErr != nil {
		errs = append(errs, fmt.Errorf("querier close failed: %w", closeErr))
	}
	if closeErr := c.storage.Close(); closeErr != nil {
		errs = append(errs, fmt.Errorf("storage close failed: %w", closeErr))
	}
	if len(errs) != 0 {
		var strErrs []string
		for _, e := range errs {
			strErrs = append(strErrs, e.Error())
		}
		summary := strings.Join(strErrs, " AND ")
		return fmt.Errorf("while closing next errors happened: %s", summary)
	}
	return nil
}

func (c *Cached) logStats() {
	definitions, err := c.storage.Words(definitionsKey)
	if err != nil {
		c.logger.Warn("Can not collect cache stats", zap.Error(err))
		return
	}
	synonyms, err := c.storage.Words(synonymsKey)
	if err != nil {
		c.logger.Warn("Can not collect cache stats", zap.Error(err))
		return
	}
	c.logger.Debug("Cache closed",
		zap.Int("definitions", len(definitions)),
		zap.Int("synonyms", len(synonyms)),
	)
}
