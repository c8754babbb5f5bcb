package collection

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Veraticus/skinvault/internal/common"
	"github.com/Veraticus/skinvault/internal/model"
)

// AccountSource lists the skins unlocked on the account behind a credential.
type AccountSource interface {
	AccountSkins(ctx context.Context, token string) ([]int, error)
}

// Request is one owned-set fetch, tagged with the generation it belongs to.
type Request struct {
	Credential string
	Generation uint64
}

// Result is the outcome of a Request.
type Result struct {
	Err        error
	Owned      model.OwnedSet
	Generation uint64
}

// Tracker owns the OwnedSet and re-derives it whenever the credential changes.
// Each change starts a new generation; results from older generations are
// dropped, so the latest credential wins regardless of completion order.
type Tracker struct {
	source     AccountSource
	owned      model.OwnedSet
	generation uint64
	mu         sync.Mutex
}

// NewTracker creates a tracker with an empty owned set.
func NewTracker(source AccountSource) *Tracker {
	return &Tracker{
		source: source,
		owned:  model.OwnedSet{},
	}
}

// Begin records a credential change and returns the request to fetch for it.
// A blank credential clears the owned set immediately.
func (t *Tracker) Begin(credential string) Request {
	credential = strings.TrimSpace(credential)

	t.mu.Lock()
	defer t.mu.Unlock()

	t.generation++
	if credential == "" {
		t.owned = model.OwnedSet{}
	}
	return Request{Credential: credential, Generation: t.generation}
}

// Fetch performs the account call for req. A blank credential makes no call.
func (t *Tracker) Fetch(ctx context.Context, req Request) Result {
	if req.Credential == "" {
		return Result{Generation: req.Generation, Owned: model.OwnedSet{}}
	}

	ids, err := t.source.AccountSkins(ctx, req.Credential)
	if err != nil {
		return Result{
			Generation: req.Generation,
			Err:        fmt.Errorf("%w: %w", common.ErrCredentialFetchFailed, err),
		}
	}
	return Result{Generation: req.Generation, Owned: model.NewOwnedSet(ids)}
}

// Apply installs res if it belongs to the current generation and reports
// whether it did. A failed fetch resets the owned set to empty.
func (t *Tracker) Apply(res Result) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if res.Generation != t.generation {
		common.LogDebug("Discarding stale account skins", common.Fields{
			"generation": res.Generation,
			"current":    t.generation,
		})
		return false
	}

	if res.Err != nil {
		common.LogWarn(res.Err, "Failed to fetch unlocked skins, showing none as unlocked", nil)
		t.owned = model.OwnedSet{}
		return true
	}

	t.owned = res.Owned
	if t.owned == nil {
		t.owned = model.OwnedSet{}
	}
	return true
}

// SetCredential runs Begin, Fetch and Apply in sequence.
// Fetch failures are absorbed; the owned set is left empty.
func (t *Tracker) SetCredential(ctx context.Context, credential string) Result {
	res := t.Fetch(ctx, t.Begin(credential))
	t.Apply(res)
	return res
}

// Owned returns the current owned set. Callers must not modify it.
func (t *Tracker) Owned() model.OwnedSet {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.owned
}

// Generation returns the current credential generation.
func (t *Tracker) Generation() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.generation
}
