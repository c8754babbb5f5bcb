package tui

import (
	"context"

	"github.com/Veraticus/skinvault/internal/collection"
	tea "github.com/charmbracelet/bubbletea"
)

func loadCatalog(ctx context.Context, loader collection.CatalogLoader) tea.Cmd {
	return func() tea.Msg {
		skins, err := loader.Load(ctx)
		return catalogLoadedMsg{skins: skins, err: err}
	}
}

func refreshCatalog(ctx context.Context, r CatalogRefresher) tea.Cmd {
	return func() tea.Msg {
		skins, err := r.Refresh(ctx)
		return catalogLoadedMsg{skins: skins, err: err}
	}
}

func fetchOwned(ctx context.Context, tracker *collection.Tracker, req collection.Request) tea.Cmd {
	return func() tea.Msg {
		return ownedLoadedMsg{result: tracker.Fetch(ctx, req)}
	}
}

func saveCredential(ctx context.Context, store CredentialStore, key string) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		if key == "" {
			return credentialSavedMsg{cleared: true, err: store.Clear(ctx)}
		}
		return credentialSavedMsg{err: store.Save(ctx, key)}
	}
}
