package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/models"
)

// Snapshot is the persisted session: the identity stored under
// common.SessionUserKey and the access token under common.SessionTokenKey.
type Snapshot struct {
	User  models.User
	Token string
}

// Backend is the durable slot holding at most one Snapshot.
type Backend interface {
	// Load returns (nil, nil) when nothing is stored and an error wrapping
	// common.ErrorMalformedSnapshot when the stored data cannot be decoded.
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, s Snapshot) error
	Clear(ctx context.Context) error
	Close() error
}

// encodeUser serialises the identity for the user slot.
func encodeUser(u models.User) ([]byte, error) {
	return json.Marshal(u)
}

// decodeSnapshot rebuilds a Snapshot from the two raw slot values. Both
// absent means no session; anything else that does not decode to an
// identity with an id plus a token is malformed.
func decodeSnapshot(user []byte, token []byte, userPresent, tokenPresent bool) (*Snapshot, error) {
	if !userPresent && !tokenPresent {
		return nil, nil
	}
	if !userPresent || !tokenPresent || len(token) == 0 {
		return nil, fmt.Errorf("incomplete session: %w", common.ErrorMalformedSnapshot)
	}

	var u models.User
	if err := json.Unmarshal(user, &u); err != nil {
		return nil, fmt.Errorf("decode %s: %w: %w", common.SessionUserKey, common.ErrorMalformedSnapshot, err)
	}
	if u.ID == "" {
		return nil, fmt.Errorf("identity without id: %w", common.ErrorMalformedSnapshot)
	}
	return &Snapshot{User: u, Token: string(token)}, nil
}
