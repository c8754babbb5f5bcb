package gw2

import (
	"context"
	"fmt"
	"sync"

	"github.com/Veraticus/skinvault/internal/model"
)

// MockClient is a scriptable stand-in for Client in tests.
type MockClient struct {
	// Functions that can be set by tests to control behavior.
	ItemIDsFn      func(ctx context.Context) ([]int, error)
	ItemsFn        func(ctx context.Context, ids []int) ([]model.RawItem, error)
	AccountSkinsFn func(ctx context.Context, token string) ([]int, error)

	// Call tracking.
	ItemsCalls        [][]int
	AccountSkinsCalls []string
	ItemIDsCalls      int

	mu sync.Mutex
}

// NewMockClient creates a mock that serves the given items as the whole catalog.
func NewMockClient(items ...model.RawItem) *MockClient {
	byID := make(map[int]model.RawItem, len(items))
	ids := make([]int, 0, len(items))
	for _, item := range items {
		byID[item.ID] = item
		ids = append(ids, item.ID)
	}

	return &MockClient{
		ItemIDsFn: func(context.Context) ([]int, error) {
			return ids, nil
		},
		ItemsFn: func(_ context.Context, batch []int) ([]model.RawItem, error) {
			out := make([]model.RawItem, 0, len(batch))
			for _, id := range batch {
				if item, ok := byID[id]; ok {
					out = append(out, item)
				}
			}
			return out, nil
		},
	}
}

// ItemIDs implements the catalog source.
func (m *MockClient) ItemIDs(ctx context.Context) ([]int, error) {
	m.mu.Lock()
	m.ItemIDsCalls++
	fn := m.ItemIDsFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	return []int{}, nil
}

// Items implements the catalog source.
func (m *MockClient) Items(ctx context.Context, ids []int) ([]model.RawItem, error) {
	if len(ids) > MaxIDsPerRequest {
		return nil, fmt.Errorf("%w: %d ids", ErrTooManyIDs, len(ids))
	}

	m.mu.Lock()
	m.ItemsCalls = append(m.ItemsCalls, append([]int(nil), ids...))
	fn := m.ItemsFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, ids)
	}
	return []model.RawItem{}, nil
}

// AccountSkins implements the account source.
func (m *MockClient) AccountSkins(ctx context.Context, token string) ([]int, error) {
	m.mu.Lock()
	m.AccountSkinsCalls = append(m.AccountSkinsCalls, token)
	fn := m.AccountSkinsFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, token)
	}
	return []int{}, nil
}

// AccountCalls returns how many account requests were made.
func (m *MockClient) AccountCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.AccountSkinsCalls)
}

// Reset clears all call tracking.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ItemsCalls = nil
	m.AccountSkinsCalls = nil
	m.ItemIDsCalls = 0
}
