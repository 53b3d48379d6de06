// Package recordstore persists the gateway's two JSON documents (identity
// state and user-published releases) behind a small key/value contract with
// change notification. Backends differ in durability only; the observable
// semantics are identical: whole-value replacement, last write wins, no
// cross-key transactions.
package recordstore

import (
	"context"
	"encoding/json"
)

// Key identifies one persisted document.
type Key string

const (
	// KeyIdentity holds the single identity verification record.
	KeyIdentity Key = "identity_state_v1"
	// KeyReleases holds the ordered list of user-published releases,
	// most recent first.
	KeyReleases Key = "releases_db_v1"
)

// Origin distinguishes who caused a change notification. Local changes are
// delivered synchronously after Save returns; external changes arrive from
// the backend's notification channel when another process writes the key.
// Subscribers handle both identically by re-loading.
type Origin int

const (
	OriginLocal Origin = iota
	OriginExternal
)

func (o Origin) String() string {
	if o == OriginExternal {
		return "external"
	}
	return "local"
}

// ChangeFunc receives change notifications. Notifications carry no payload:
// observers re-Load the key.
type ChangeFunc func(key Key, origin Origin)

// Store is the record store contract.
//
// Load returns sentinel.ErrNotFound when the key has never been written;
// consumers substitute their documented default value in that case and on
// malformed content, never surfacing a read error further.
type Store interface {
	Load(ctx context.Context, key Key) (json.RawMessage, error)
	Save(ctx context.Context, key Key, value json.RawMessage) error
	Subscribe(key Key, fn ChangeFunc) (cancel func())
}
