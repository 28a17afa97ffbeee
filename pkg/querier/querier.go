package querier

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/gammazero/workerpool"
	"go.uber.org/zap"

	"github.com/darkclainer/wordgo/pkg/parser"
)

const (
	defaultHost       = "wordsapiv1.p.rapidapi.com"
	defaultProtocol   = "https"
	defaultHostHeader = "x-rapidapi-host"
	defaultKeyHeader  = "x-rapidapi-key"
	wordsPath         = "/words/"
	randomQuery       = "random=true"
	definitionsPath   = "/definitions"
	synonymsPath      = "/synonyms"
)

type RemoteConfig struct {
	// APIKey is sent in KeyHeader with every request
	APIKey string
	// HostHeader and KeyHeader are names of headers that carry Host and APIKey
	HostHeader string
	KeyHeader  string
	// ExtraHeader specifies what header will be added to each request
	ExtraHeader map[string]string
	// Timeout specifies maximum wait time for each request, zero means no limit
	Timeout time.Duration
	// Host specifies remote host to which request will be sent
	Host     string
	Protocol string
	// Retries is how many times failed request is repeated. Only transport errors
	// and 5xx responses are repeated. Zero value disables retries.
	Retries    int
	RetryDelay time.Duration
	// MaxWorkers specifies how many worker parse json content of responses
	// Zero value mean that it will be equal to number of logical CPU
	MaxWorkers int
}

// Remote queries API over HTTP. It must not be used after Close, calls
// made after it fail with ErrClosed.
type Remote struct {
	client *http.Client
	config *RemoteConfig
	pool   *workerpool.WorkerPool
	p      Parser
	logger *zap.Logger

	mu     sync.RWMutex
	closed bool
}

func NewRemote(client *http.Client, p Parser, config *RemoteConfig, logger *zap.Logger) *Remote {
	if client == nil {
		client = &http.Client{}
	}
	if p == nil {
		p = &JSONParser{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Host == "" {
		config.Host = defaultHost
	}
	if config.Protocol == "" {
		config.Protocol = defaultProtocol
	}
	if config.HostHeader == "" {
		config.HostHeader = defaultHostHeader
	}
	if config.KeyHeader == "" {
		config.KeyHeader = defaultKeyHeader
	}
	if config.Retries < 0 {
		config.Retries = 0
	}
	if config.MaxWorkers < 1 { // nolint:gomnd // if number not specified
		config.MaxWorkers = runtime.NumCPU()
	}
	return &Remote{
		client: client,
		config: config,
		pool:   workerpool.New(config.MaxWorkers),
		p:      p,
		logger: logger.With(zap.String("remote", config.Host)),
	}
}

func (q *Remote) RandomWord(ctx context.Context) (string, error) {
	body, err := q.get(ctx, q.newRandomURL())
	if err != nil {
		return "", fmt.Errorf("failed to get random word: %w", err)
	}
	var word string
	if poolErr := q.parse(func() {
		word, err = q.p.ParseRandomWord(bytes.NewReader(body))
	}); poolErr != nil {
		return "", poolErr
	}
	if err != nil {
		return "", fmt.Errorf("%w: random word: %w", ErrParse, err)
	}
	return word, nil
}

func (q *Remote) Definitions(ctx context.Context, word string) (*parser.Definitions, error) {
	body, err := q.get(ctx, q.newWordURL(word, definitionsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to get definitions of %q: %w", word, err)
	}
	var definitions *parser.Definitions
	if poolErr := q.parse(func() {
		definitions, err = q.p.ParseDefinitions(bytes.NewReader(body))
	}); poolErr != nil {
		return nil, poolErr
	}
	if err != nil {
		return nil, fmt.Errorf("%w: definitions of %q: %w", ErrParse, word, err)
	}
	return definitions, nil
}

func (q *Remote) Synonyms(ctx context.Context, word string) (*parser.Synonyms, error) {
	body, err := q.get(ctx, q.newWordURL(word, synonymsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to get synonyms of %q: %w", word, err)
	}
	var synonyms *parser.Synonyms
	if poolErr := q.parse(func() {
		synonyms, err = q.p.ParseSynonyms(bytes.NewReader(body))
	}); poolErr != nil {
		return nil, poolErr
	}
	if err != nil {
		return nil, fmt.Errorf("%w: synonyms of %q: %w", ErrParse, word, err)
	}
	return synonyms, nil
}

// get returns body of successful response, repeating request if config allows it.
func (q *Remote) get(ctx context.Context, urlGet string) ([]byte, error) {
	if q.isClosed() {
		return nil, ErrClosed
	}
	var lastErr error
	for attempt := 0; attempt <= q.config.Retries; attempt++ {
		if attempt > 0 {
			q.logger.Warn("Retrying request",
				zap.String("url", urlGet),
				zap.Int("attempt", attempt),
				zap.Error(lastErr),
			)
			if err := sleepContext(ctx, q.config.RetryDelay); err != nil {
				return nil, lastErr
			}
		}
		body, retryable, err := q.do(ctx, urlGet)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable || ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

func (q *Remote) do(ctx context.Context, urlGet string) (body []byte, retryable bool, err error) {
	if q.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.config.Timeout)
		defer cancel()
	}
	request, err := q.newRequest(ctx, urlGet)
	if err != nil {
		return nil, false, fmt.Errorf("can not assemble request: %w", err)
	}
	q.logger.Debug("Request", zap.String("url", urlGet))
	response, err := q.client.Do(request)
	if err != nil {
		return nil, true, fmt.Errorf("%w: failed to make request: %w", ErrNetwork, err)
	}
	defer response.Body.Close()
	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		// drain body so connection can be reused
		_, _ = io.Copy(io.Discard, response.Body)
		retryable = response.StatusCode >= http.StatusInternalServerError
		return nil, retryable, fmt.Errorf("%w: %w", ErrNetwork, &StatusError{Code: response.StatusCode})
	}
	body, err = io.ReadAll(response.Body)
	if err != nil {
		return nil, true, fmt.Errorf("%w: can not read response: %w", ErrNetwork, err)
	}
	q.logger.Debug("Response",
		zap.String("url", urlGet),
		zap.Int("status", response.StatusCode),
		zap.Int("size", len(body)),
	)
	return body, false, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// EncodeWord escapes word for usage as path segment. Only spaces are replaced,
// the way the API expects multi-word entries.
func EncodeWord(word string) string {
	return strings.ReplaceAll(word, " ", "%20")
}

func (q *Remote) newRandomURL() string {
	randomURL := q.newURL()
	randomURL.Path = wordsPath
	randomURL.RawQuery = randomQuery
	return randomURL.String()
}

// newWordURL keeps EncodeWord form of word when it is a valid path encoding,
// otherwise url package falls back to full percent-encoding.
func (q *Remote) newWordURL(word, suffix string) string {
	wordURL := q.newURL()
	wordURL.Path = wordsPath + word + suffix
	wordURL.RawPath = wordsPath + EncodeWord(word) + suffix
	return wordURL.String()
}

func (q *Remote) newURL() *url.URL {
	return &url.URL{
		Scheme: q.config.Protocol,
		Host:   q.config.Host,
	}
}

func (q *Remote) newRequest(ctx context.Context, urlRequest string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlRequest, nil)
	if err != nil {
		return nil, fmt.Errorf("can not form request: %w", err)
	}
	req.Header.Set(q.config.HostHeader, q.config.Host)
	req.Header.Set(q.config.KeyHeader, q.config.APIKey)
	for key, value := range q.config.ExtraHeader {
		req.Header.Add(key, value)
	}
	return req, nil
}

// parse runs fn on the worker pool and waits for it.
func (q *Remote) parse(fn func()) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrClosed
	}
	q.pool.SubmitWait(fn)
	return nil
}

func (q *Remote) isClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

// Close waits for running parse tasks until ctx is done. Repeated calls are no-op.
func (q *Remote) Close(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	q.mu.Unlock()

	q.client.CloseIdleConnections()
	stopped := make(chan struct{})
	go func() {
		q.pool.StopWait()
		close(stopped)
	}()
	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("pool is not stopped: %w", ctx.Err())
	}
}
