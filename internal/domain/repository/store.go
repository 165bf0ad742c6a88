package repository

import (
	"context"
	"encoding/json"
)

// Names of the persisted record sets. They match the file names the ledger
// has always used, so existing data directories keep working.
const (
	SetLoyalty   = "loyalty"
	SetInventory = "inventory"
)

// RecordStore persists named record sets as opaque per-user blobs. Load
// returns the full persisted mapping for a set, creating an empty persisted
// set when none exists yet. Save overwrites the entire set; callers always
// pass the complete current mapping, never a patch.
type RecordStore interface {
	Load(ctx context.Context, set string) (map[string]json.RawMessage, error)
	Save(ctx context.Context, set string, records map[string]json.RawMessage) error
}
