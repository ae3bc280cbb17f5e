package store

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var selectionsBucket = []byte("selections")

// Selection is the property a subscriber picked from a search result,
// kept for downstream conversation steps. It is the only locally
// persisted record; guests and quotes live in the remote API.
type Selection struct {
	PropertyID   string    `json:"property_id"`
	PropertyName string    `json:"property_name"`
	SelectedAt   time.Time `json:"selected_at"`
}

type FieldStore interface {
	SaveSelection(subscriberID string, sel Selection) error
	GetSelection(subscriberID string) (*Selection, error)
	DeleteSelection(subscriberID string) error
	Close() error
}

type BoltStore struct {
	db *bolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(selectionsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating selections bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) SaveSelection(subscriberID string, sel Selection) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(sel)
		if err != nil {
			return err
		}
		return tx.Bucket(selectionsBucket).Put([]byte(subscriberID), data)
	})
}

func (s *BoltStore) GetSelection(subscriberID string) (*Selection, error) {
	var sel Selection
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(selectionsBucket).Get([]byte(subscriberID))
		if v == nil {
			return nil
		}
		found = true
		return json.Unmarshal(v, &sel)
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &sel, nil
}

func (s *BoltStore) DeleteSelection(subscriberID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(selectionsBucket).Delete([]byte(subscriberID))
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
