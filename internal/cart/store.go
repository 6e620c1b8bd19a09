package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/nikolayk812/gomarketplace-cart/internal/domain"
	"github.com/nikolayk812/gomarketplace-cart/internal/port"
	"golang.org/x/text/currency"
)

// Store holds the cart in memory and mirrors every change to a KV store in
// the background. Mutations never wait for storage and never fail because of it.
type Store struct {
	mu    sync.RWMutex
	items []domain.CartItem

	kv      port.KVStore
	key     string
	mode    AddMode
	unit    currency.Unit
	logger  *slog.Logger
	onError func(error)

	persister *persister
}

func NewStore(kv port.KVStore, opts ...Option) *Store {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &Store{
		kv:      kv,
		key:     o.key,
		mode:    o.mode,
		unit:    o.unit,
		logger:  o.logger.With("key", o.key),
		onError: o.onError,
	}
	s.persister = newPersister(kv, o.key, o.writeTimeout, s.report)

	return s
}

// Load hydrates the cart from storage. A missing key or an empty value leaves
// the cart as is.
func (s *Store) Load(ctx context.Context) error {
	blob, found, err := s.kv.GetItem(ctx, s.key)
	if err != nil {
		return fmt.Errorf("kv.GetItem: %w", err)
	}
	if !found || blob == "" {
		s.logger.Debug("cart: nothing to hydrate")
		return nil
	}

	items, err := decodeItems(blob)
	if err != nil {
		return fmt.Errorf("decodeItems: %w", err)
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	s.logger.Info("cart: hydrated", "items", len(items))
	return nil
}

// Products returns a copy of the current cart.
func (s *Store) Products() []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.items)
}

func (s *Store) Summary() domain.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.Summarize(s.items, s.unit)
}

func (s *Store) AddToCart(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := domain.FindItem(s.items, p.ID)

	if s.mode == AddModeMerge {
		if idx >= 0 {
			s.items[idx].Quantity++
		} else {
			s.items = append(s.items, domain.NewCartItem(p, 1))
		}
		s.persistLocked(s.items)
		return
	}

	if idx >= 0 {
		// legacy: duplicate entry, not persisted
		dup := s.items[idx]
		dup.Quantity++
		s.items = append(s.items, dup)
		return
	}

	// legacy: the snapshot written is the cart before this item was appended;
	// cloned so the append cannot share its backing array
	before := s.items
	s.items = append(slices.Clone(s.items), domain.NewCartItem(p, 1))
	s.persistLocked(before)
}

// Increment bumps every entry with the given id. The cart is persisted even
// when nothing matched.
func (s *Store) Increment(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity++
		}
	}

	s.persistLocked(s.items)
}

// Decrement lowers every entry with the given id, but never below one.
func (s *Store) Decrement(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id && s.items[i].Quantity > 1 {
			s.items[i].Quantity--
		}
	}

	s.persistLocked(s.items)
}

// Flush waits until every write scheduled so far has been attempted.
func (s *Store) Flush(ctx context.Context) error {
	return s.persister.flush(ctx)
}

// Close flushes pending writes and stops the persister. Later mutations only
// change memory.
func (s *Store) Close(ctx context.Context) error {
	return s.persister.close(ctx)
}

func (s *Store) persistLocked(items []domain.CartItem) {
	blob, err := encodeItems(items)
	if err != nil {
		s.report(fmt.Errorf("encodeItems: %w", err))
		return
	}

	if err := s.persister.schedule(blob); err != nil {
		if errors.Is(err, ErrClosed) {
			s.logger.Warn("cart: write dropped after close")
			return
		}
		s.report(err)
	}
}

func (s *Store) report(err error) {
	s.logger.Error("cart: persist failed", "err", err)

	if s.onError != nil {
		s.onError(err)
	}
}
