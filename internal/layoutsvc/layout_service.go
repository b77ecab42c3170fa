// Package layoutsvc resolves HID report descriptors to report layout tables,
// caching results in memory and in badger. Descriptor decoding is
// deterministic, so a cached table is always valid for its descriptor hash.
package layoutsvc

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger"
	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"
	"golang.org/x/net/context"

	"github.com/hidtools/hidlayout/hiddesc"
)

var defaultOptions = serviceOptions{
	gcInterval:     5 * time.Minute,
	gcDiscardRatio: 0.5,
}

type serviceOptions struct {
	gcInterval     time.Duration
	gcDiscardRatio float64
}

type Option func(*serviceOptions)

func WithGCInterval(d time.Duration) Option {
	return func(o *serviceOptions) {
		o.gcInterval = d
	}
}

type Service struct {
	log     *zap.Logger
	db      *badger.DB
	options serviceOptions
	cache   *xsync.MapOf[uint64, hiddesc.LayoutTable]
	ready   chan struct{}
}

func New(db *badger.DB, log *zap.Logger, opts ...Option) *Service {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	return &Service{
		log:     log,
		db:      db,
		options: options,
		cache:   xsync.NewMapOf[uint64, hiddesc.LayoutTable](),
		ready:   make(chan struct{}),
	}
}

// Start runs periodic badger value-log GC until the context is cancelled.
func (s *Service) Start(ctx context.Context) error {
	close(s.ready)
	s.log.Info("Layout service started")
	ticker := time.NewTicker(s.options.gcInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := s.db.RunValueLogGC(s.options.gcDiscardRatio)
			if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
				s.log.Warn("Value log GC failed", zap.Error(err))
			}
		}
	}
}

func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

func layoutKey(hash uint64) []byte {
	return []byte(fmt.Sprintf("layout:%016x", hash))
}

func descriptorHash(desc []byte) uint64 {
	return xxhash.Sum64(desc)
}

// Resolve returns the layout table for a descriptor, from the in-memory
// cache, then the badger store, then a fresh decode (persisted afterwards).
func (s *Service) Resolve(desc []byte) (hiddesc.LayoutTable, error) {
	hash := descriptorHash(desc)
	if table, ok := s.cache.Load(hash); ok {
		return table, nil
	}

	table, found, err := s.loadStored(hash)
	if err != nil {
		return nil, fmt.Errorf("failed to load stored layout: %w", err)
	}
	if found {
		s.cache.Store(hash, table)
		return table, nil
	}

	table = hiddesc.Decode(desc)
	if err := s.store(hash, table); err != nil {
		return nil, fmt.Errorf("failed to store layout: %w", err)
	}
	s.cache.Store(hash, table)
	s.log.Debug("Decoded descriptor",
		zap.Uint64("hash", hash),
		zap.Int("descriptorBytes", len(desc)),
		zap.Int("reports", len(table)))
	return table, nil
}

func (s *Service) loadStored(hash uint64) (hiddesc.LayoutTable, bool, error) {
	var table hiddesc.LayoutTable
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(layoutKey(hash))
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
			return nil
		case err != nil:
			return err
		}
		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &table); err != nil {
				return fmt.Errorf("failed to unmarshal layout table: %w", err)
			}
			found = true
			return nil
		})
	})
	if err != nil {
		return nil, false, err
	}
	return table, found, nil
}

func (s *Service) store(hash uint64, table hiddesc.LayoutTable) error {
	jsonB, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("failed to marshal layout table: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(layoutKey(hash), jsonB)
	})
}
