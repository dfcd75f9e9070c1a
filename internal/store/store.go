package store

import (
	"go.uber.org/zap"
)

// Store bundles the table and voter registry served by the RESP front end.
// It does no locking; the server confines all access to one event loop.
type Store struct {
	table   *HashTable[string]
	voters  Registry
	tracker *Tracker
}

func NewStore(size int, logger *zap.Logger, opts ...Option) (*Store, error) {
	table, err := NewHashTable[string](size, opts...)
	if err != nil {
		return nil, err
	}

	return &Store{
		table:   table,
		voters:  make(Registry),
		tracker: NewTracker(logger),
	}, nil
}

func (s *Store) Table() *HashTable[string] {
	return s.table
}

func (s *Store) Voters() Registry {
	return s.voters
}

func (s *Store) Vote(name string) bool {
	return s.tracker.CheckVoter(s.voters, name)
}

func (s *Store) Flush() {
	s.table.Clear()
	s.voters = make(Registry)
}
