package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAPI(t *testing.T, calls *int32) *httptest.Server {
	routes := map[string]string{
		"/words/?random=true":            `{"word":"ice cream"}`,
		"/words/ice%20cream/definitions": `{"word":"ice cream","definitions":[{"definition":"frozen dessert"}]}`,
		"/words/ice%20cream/synonyms":    `{"word":"ice cream","synonyms":["gelato"]}`,
		"/words/happy/definitions":       `{"word":"happy","definitions":[{"definition":"feeling joy"}]}`,
		"/words/happy/synonyms":          `{"word":"happy","synonyms":["glad","joyful"]}`,
		"/words/qwzx/definitions":        `{"success":false}`,
		"/words/qwzx/synonyms":           `{"success":false}`,
	}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		if r.Header.Get("x-rapidapi-key") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		body, ok := routes[r.RequestURI]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
}

func newTestApp(t *testing.T, conf *Config) (*App, *int32) {
	calls := new(int32)
	server := newTestAPI(t, calls)
	t.Cleanup(server.Close)
	conf.Remote.Host = server.Listener.Addr().String()
	conf.Remote.Protocol = "http"
	conf.Remote.APIKey = "test-key"
	app, err := New(zap.NewNop(), conf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close(context.Background()) })
	return app, calls
}

func TestAppRunWord(t *testing.T) {
	app, _ := newTestApp(t, &Config{Words: []string{"happy"}})
	var out, errOut bytes.Buffer

	code := app.Run(context.Background(), nil, &out, &errOut)
	assert.Equal(t, 0, code)
	assert.Equal(t, "Word: happy\nDefinition: \"feeling joy\"\nSynonyms: glad, joyful\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestAppRunRandom(t *testing.T) {
	app, calls := newTestApp(t, &Config{Random: true, JSON: true})
	var out, errOut bytes.Buffer

	code := app.Run(context.Background(), nil, &out, &errOut)
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), `"word": "ice cream"`)
	assert.Contains(t, out.String(), `"definition": "\"frozen dessert\""`)
	assert.Equal(t, int32(3), atomic.LoadInt32(calls))
}

func TestAppRunFailure(t *testing.T) {
	app, _ := newTestApp(t, &Config{Words: []string{"qwzx"}})
	var out, errOut bytes.Buffer

	code := app.Run(context.Background(), nil, &out, &errOut)
	assert.Equal(t, codeLookupFailed, code)
	assert.Contains(t, errOut.String(), "warning: definition unavailable")
	assert.Contains(t, errOut.String(), "warning: synonyms unavailable")
}

func TestAppRunEmptyInput(t *testing.T) {
	app, calls := newTestApp(t, &Config{Words: []string{"  "}})
	var out, errOut bytes.Buffer

	code := app.Run(context.Background(), nil, &out, &errOut)
	assert.Equal(t, codeLookupFailed, code)
	assert.Equal(t, "Lookup failed (bad request)\n", out.String())
	assert.Contains(t, errOut.String(), "invalid input")
	assert.Zero(t, atomic.LoadInt32(calls))
}

func TestAppRunInteractiveCached(t *testing.T) {
	conf := &Config{Interactive: true}
	conf.Cached.Enabled = true
	app, calls := newTestApp(t, conf)
	var out, errOut bytes.Buffer

	in := strings.NewReader("happy\n\nhappy\nice cream\n")
	code := app.Run(context.Background(), in, &out, &errOut)
	assert.Equal(t, 0, code)
	assert.Equal(t, 3, strings.Count(out.String(), "Word: "))
	// second happy is served from cache
	assert.Equal(t, int32(4), atomic.LoadInt32(calls))
}
