package querier

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v2"

	"github.com/darkclainer/wordgo/pkg/parser"
)

type keyType byte

const (
	definitionsKey keyType = iota + 1
	synonymsKey
)

// Storage keeps API responses in badger. Missing keys are reported
// with badger.ErrKeyNotFound.
type Storage struct {
	DB  *badger.DB
	TTL time.Duration
}

func (s *Storage) GetDefinitions(word string) (*parser.Definitions, error) {
	var definitions parser.Definitions
	if err := s.get(marshalKey(word, definitionsKey), &definitions); err != nil {
		return nil, err
	}
	return &definitions, nil
}

func (s *Storage) PutDefinitions(word string, definitions *parser.Definitions) error {
	return s.put(marshalKey(word, definitionsKey), definitions)
}

func (s *Storage) GetSynonyms(word string) (*parser.Synonyms, error) {
	var synonyms parser.Synonyms
	if err := s.get(marshalKey(word, synonymsKey), &synonyms); err != nil {
		return nil, err
	}
	return &synonyms, nil
}

func (s *Storage) PutSynonyms(word string, synonyms *parser.Synonyms) error {
	return s.put(marshalKey(word, synonymsKey), synonyms)
}

// Words lists words stored under kind, expired entries are skipped.
func (s *Storage) Words(kind keyType) ([]string, error) {
	var words []string
	err := s.DB.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte{byte(kind)}
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			word, err := unmarshalKey(it.Item().KeyCopy(nil), kind)
			if err != nil {
				return err
			}
			words = append(words, word)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("can not list cached words: %w", err)
	}
	return words, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) get(key []byte, v interface{}) error {
	return s.DB.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, v); err != nil {
				return fmt.Errorf("can not decode cached value: %w", err)
			}
			return nil
		})
	})
}

func (s *Storage) put(key []byte, v interface{}) error {
	value, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("can not encode value: %w", err)
	}
	return s.DB.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(key, value)
		if s.TTL > 0 {
			entry = entry.WithTTL(s.TTL)
		}
		return txn.SetEntry(entry)
	})
}

func marshalKey(k string, t keyType) []byte {
	result := make([]byte, 0, len(k)+1)
	result = append(result, byte(t))
	return append(result, []byte(k)...)
}

func unmarshalKey(data []byte, expected keyType) (string, error) {
	if len(data) < 1 {
		return "", errors.New("key length must be at least 1")
	}
	if data[0] != byte(expected) {
		return "", fmt.Errorf("key type %d doesn't equal to expected type %d", data[0], expected)
	}
	return string(data[1:]), nil
}
