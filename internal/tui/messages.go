package tui

import (
	"github.com/Veraticus/skinvault/internal/collection"
	"github.com/Veraticus/skinvault/internal/model"
)

// catalogLoadedMsg carries the result of loading or refreshing the catalog.
type catalogLoadedMsg struct {
	err   error
	skins []model.CanonicalSkin
}

// ownedLoadedMsg carries the result of one owned-set fetch.
type ownedLoadedMsg struct {
	result collection.Result
}

// credentialSavedMsg reports whether the new key was persisted.
type credentialSavedMsg struct {
	err     error
	cleared bool
}
