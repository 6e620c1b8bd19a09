package cart

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/currency"
)

const (
	DefaultKey          = "@GoMarketPlace:products"
	DefaultWriteTimeout = 5 * time.Second
)

// AddMode selects how AddToCart treats a product that is already in the cart.
type AddMode int

const (
	// AddModeLegacy appends a second entry for an existing id with the old
	// quantity plus one and skips persistence for it. A brand new item is
	// persisted, but with the list as it was before the append.
	AddModeLegacy AddMode = iota
	// AddModeMerge bumps the existing entry and always persists the new list.
	AddModeMerge
)

func (m AddMode) String() string {
	switch m {
	case AddModeLegacy:
		return "legacy"
	case AddModeMerge:
		return "merge"
	default:
		return fmt.Sprintf("AddMode(%d)", int(m))
	}
}

func ParseAddMode(s string) (AddMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "legacy":
		return AddModeLegacy, nil
	case "merge":
		return AddModeMerge, nil
	default:
		return 0, fmt.Errorf("add mode[%s] is not valid", s)
	}
}

type options struct {
	key          string
	mode         AddMode
	unit         currency.Unit
	logger       *slog.Logger
	onError      func(error)
	writeTimeout time.Duration
}

type Option func(*options)

func WithKey(key string) Option {
	return func(o *options) { o.key = key }
}

func WithAddMode(mode AddMode) Option {
	return func(o *options) { o.mode = mode }
}

func WithCurrency(unit currency.Unit) Option {
	return func(o *options) { o.unit = unit }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithErrorHandler registers fn for failed background writes. fn runs on the
// persister goroutine.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) { o.onError = fn }
}

func WithWriteTimeout(d time.Duration) Option {
	return func(o *options) { o.writeTimeout = d }
}

func defaultOptions() options {
	return options{
		key:          DefaultKey,
		mode:         AddModeLegacy,
		unit:         currency.USD,
		logger:       slog.Default(),
		writeTimeout: DefaultWriteTimeout,
	}
}
