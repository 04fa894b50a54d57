package player

import "context"

// Repo is the data-access boundary for the single player record.
//
// Load creates the record with defaults if it does not exist yet. Save
// replaces the whole record. Callers are expected to serialize their
// load-mutate-save sequences; the repo itself only guarantees that each
// individual call is atomic.
type Repo interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, s State) error
}
