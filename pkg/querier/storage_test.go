package querier

import (
	"testing"
	"time"

	"github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkclainer/wordgo/pkg/parser"
)

func getStorage(t *testing.T, ttl time.Duration) *Storage {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		t.Fatalf("can not open badger: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &Storage{DB: db, TTL: ttl}
}

func TestStorageRoundTrip(t *testing.T) {
	storage := getStorage(t, time.Hour)

	_, err := storage.GetDefinitions("happy")
	assert.ErrorIs(t, err, badger.ErrKeyNotFound)

	definitions := &parser.Definitions{
		Word:        "happy",
		Definitions: []parser.Definition{{Definition: "feeling joy"}},
	}
	require.NoError(t, storage.PutDefinitions("happy", definitions))
	cached, err := storage.GetDefinitions("happy")
	require.NoError(t, err)
	assert.Equal(t, definitions, cached)

	_, err = storage.GetSynonyms("happy")
	assert.ErrorIs(t, err, badger.ErrKeyNotFound)
}

func TestStorageTTL(t *testing.T) {
	storage := getStorage(t, 2*time.Second)
	synonyms := &parser.Synonyms{Word: "happy", Synonyms: []string{"glad"}}
	require.NoError(t, storage.PutSynonyms("happy", synonyms))

	_, err := storage.GetSynonyms("happy")
	require.NoError(t, err)

	// badger expiry has one second resolution
	time.Sleep(3100 * time.Millisecond)
	_, err = storage.GetSynonyms("happy")
	assert.ErrorIs(t, err, badger.ErrKeyNotFound)
}

func TestCachedKeys(t *testing.T) {
	testCases := map[string]struct {
		keyType  keyType
		keyRaw   string
		expected []byte
	}{
		"definitions key": {
			keyType:  definitionsKey,
			keyRaw:   "key",
			expected: []byte{byte(definitionsKey), 'k', 'e', 'y'},
		},
		"definitions empty": {
			keyType:  definitionsKey,
			keyRaw:   "",
			expected: []byte{byte(definitionsKey)},
		},
		"synonyms key": {
			keyType:  synonymsKey,
			keyRaw:   "ice cream",
			expected: append([]byte{byte(synonymsKey)}, "ice cream"...),
		},
	}
	for name := range testCases {
		tc := testCases[name]
		t.Run(name, func(t *testing.T) {
			binaryKey := marshalKey(tc.keyRaw, tc.keyType)
			assert.Equal(t, tc.expected, binaryKey)

			raw, err := unmarshalKey(binaryKey, tc.keyType)
			require.NoError(t, err)
			assert.Equal(t, tc.keyRaw, raw)
		})
	}
}

func TestUnmarshalKeyErrors(t *testing.T) {
	_, err := unmarshalKey(nil, definitionsKey)
	assert.Error(t, err)
	_, err = unmarshalKey([]byte{byte(synonymsKey), 'a'}, definitionsKey)
	assert.Error(t, err)
}

func TestStorageWords(t *testing.T) {
	storage := getStorage(t, time.Hour)

	words, err := storage.Words(definitionsKey)
	require.NoError(t, err)
	assert.Empty(t, words)

	require.NoError(t, storage.PutDefinitions("ice cream", &parser.Definitions{Word: "ice cream"}))
	require.NoError(t, storage.PutDefinitions("happy", &parser.Definitions{Word: "happy"}))
	require.NoError(t, storage.PutSynonyms("glad", &parser.Synonyms{Word: "glad"}))

	words, err = storage.Words(definitionsKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"happy", "ice cream"}, words)

	words, err = storage.Words(synonymsKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"glad"}, words)
}
