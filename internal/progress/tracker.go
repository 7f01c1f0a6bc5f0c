package progress

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/japanesestudent/kanji-service/internal/models"
	"go.uber.org/zap"
)

// Identity is the signed-in user followed by a Tracker
//
// UserID decides whether the identity changed; Token is only used to authenticate fetches.
type Identity struct {
	UserID string
	Token  string
}

// Fetcher retrieves the learned kanji set of the token owner
type Fetcher interface {
	FetchLearned(ctx context.Context, token string) (*models.LearnedKanjiList, error)
}

// State is a point-in-time copy of a Tracker
type State struct {
	Kanji         []string
	Count         int
	Loading       bool
	Authenticated bool
}

// ScopeCompletion is the completion of a kanji list as a progress widget shows it
//
// Visible is false for anonymous users. While loading the percentage stays 0.
type ScopeCompletion struct {
	models.Completion
	Visible bool
	Loading bool
}

// Tracker keeps the learned kanji set of the current session identity
//
// Each identity change starts a new generation: the previous fetch is cancelled and
// whatever it returns afterwards is dropped. Fetch failures are logged and leave the set empty.
type Tracker struct {
	fetcher Fetcher
	logger  *zap.Logger

	mu         sync.RWMutex
	generation uint64
	identity   *Identity
	learned    map[string]struct{}
	kanji      []string
	loading    bool
	cancel     context.CancelFunc
	settled    chan struct{}
}

// NewTracker creates a signed-out tracker
func NewTracker(fetcher Fetcher, logger *zap.Logger) *Tracker {
	return &Tracker{
		fetcher: fetcher,
		logger:  logger,
		learned: map[string]struct{}{},
		kanji:   []string{},
		settled: closedChan(),
	}
}

// SetSession switches the tracker to identity; nil signs out
//
// Nothing happens when the user stays the same, apart from adopting a new token.
func (t *Tracker) SetSession(identity *Identity) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.identity != nil && identity != nil && t.identity.UserID == identity.UserID {
		t.identity.Token = identity.Token
		return
	}
	if t.identity == nil && identity == nil {
		return
	}
	t.start(identity)
}

// Refresh refetches the learned set of the current identity
func (t *Tracker) Refresh() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.start(t.identity)
}

// start begins a new generation; mu must be held
func (t *Tracker) start(identity *Identity) {
	t.generation++
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	if t.loading {
		close(t.settled)
	}

	t.learned = map[string]struct{}{}
	t.kanji = []string{}
	t.loading = false
	t.settled = closedChan()

	if identity == nil {
		t.identity = nil
		return
	}

	id := *identity
	t.identity = &id
	t.loading = true
	t.settled = make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	go t.fetch(ctx, t.generation, id.Token)
}

func (t *Tracker) fetch(ctx context.Context, generation uint64, token string) {
	list, err := t.fetcher.FetchLearned(ctx, token)

	t.mu.Lock()
	defer t.mu.Unlock()

	if generation != t.generation {
		t.logger.Debug("discarding stale learned kanji response", zap.Uint64("generation", generation))
		return
	}

	t.cancel()
	t.cancel = nil
	t.loading = false
	defer close(t.settled)

	if errors.Is(err, ErrUnauthorized) {
		t.logger.Warn("session rejected while fetching learned kanji")
		t.identity = nil
		return
	}
	if err != nil {
		t.logger.Error("failed to fetch learned kanji", zap.Error(err))
		return
	}

	learned := make(map[string]struct{}, len(list.Kanji))
	for _, k := range list.Kanji {
		learned[k] = struct{}{}
	}
	t.learned = learned
	t.kanji = slices.Clone(list.Kanji)
}

// Wait blocks until no fetch is in flight or ctx is done
func (t *Tracker) Wait(ctx context.Context) error {
	for {
		t.mu.RLock()
		loading, settled := t.loading, t.settled
		t.mu.RUnlock()

		if !loading {
			return nil
		}
		select {
		case <-settled:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Snapshot returns a copy of the current state
func (t *Tracker) Snapshot() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return State{
		Kanji:         slices.Clone(t.kanji),
		Count:         len(t.kanji),
		Loading:       t.loading,
		Authenticated: t.identity != nil,
	}
}

// IsLearned reports whether kanji is in the learned set
func (t *Tracker) IsLearned(kanji string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.learned[kanji]
	return ok
}

// IsLoading reports whether a fetch is in flight
func (t *Tracker) IsLoading() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.loading
}

// IsAuthenticated reports whether the tracker follows a signed-in user
func (t *Tracker) IsAuthenticated() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.identity != nil
}

// Completion computes the completion of scope against the learned set
func (t *Tracker) Completion(scope []string) ScopeCompletion {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.identity == nil {
		return ScopeCompletion{}
	}
	if t.loading {
		return ScopeCompletion{
			Completion: models.Completion{Total: len(scope)},
			Visible:    true,
			Loading:    true,
		}
	}

	completion := Compute(func(k string) bool {
		_, ok := t.learned[k]
		return ok
	}, scope)
	return ScopeCompletion{Completion: completion, Visible: true}
}

func closedChan() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
