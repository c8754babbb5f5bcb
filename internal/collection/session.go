package collection

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/skinvault/internal/model"
)

// CatalogLoader produces the canonical skin catalog.
type CatalogLoader interface {
	Load(ctx context.Context) ([]model.CanonicalSkin, error)
}

// Session holds one viewing session: the catalog and the owned set.
type Session struct {
	catalog CatalogLoader
	tracker *Tracker
	skins   []model.CanonicalSkin
	mu      sync.RWMutex
}

// NewSession creates a session reading the catalog from loader and owned
// skins through tracker.
func NewSession(loader CatalogLoader, tracker *Tracker) *Session {
	return &Session{
		catalog: loader,
		tracker: tracker,
	}
}

// Load fetches the catalog and the owned set concurrently. Only a catalog
// failure is returned; an owned-set failure leaves nothing unlocked.
func (s *Session) Load(ctx context.Context, credential string) error {
	g, gctx := errgroup.WithContext(ctx)

	var skins []model.CanonicalSkin
	g.Go(func() error {
		loaded, err := s.catalog.Load(gctx)
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		skins = loaded
		return nil
	})

	// Begin runs synchronously so a later SetCredential always supersedes this load.
	req := s.tracker.Begin(credential)
	g.Go(func() error {
		s.tracker.Apply(s.tracker.Fetch(gctx, req))
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	s.mu.Lock()
	s.skins = skins
	s.mu.Unlock()
	return nil
}

// SetCredential switches the session to another credential.
func (s *Session) SetCredential(ctx context.Context, credential string) Result {
	return s.tracker.SetCredential(ctx, credential)
}

// Tracker returns the session's owned-set tracker.
func (s *Session) Tracker() *Tracker {
	return s.tracker
}

// Skins returns the loaded catalog.
func (s *Session) Skins() []model.CanonicalSkin {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.skins
}

// View builds the collection view for f from the current catalog and owned set.
func (s *Session) View(f model.FilterState) View {
	return BuildView(s.Skins(), s.tracker.Owned(), f)
}
