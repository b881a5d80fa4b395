package MiniDB

import (
	"context"

	"github.com/nickyhof/MiniDB/db"
	"github.com/nickyhof/MiniDB/ps"
)

type Instance struct {
	Store ps.Store
}

func Open(store ps.Store) *Instance {
	return &Instance{
		Store: store,
	}
}

// OpenLocation opens the store named by location; see ps.Open for the
// accepted forms.
func OpenLocation(ctx context.Context, location string, opts ps.Options) (*Instance, error) {
	store, err := ps.Open(ctx, location, opts)
	if err != nil {
		return nil, err
	}
	return Open(store), nil
}

// Engine loads the stored snapshot and returns an engine over it.
func (instance *Instance) Engine(ctx context.Context, opts ...db.Option) (*db.Engine, error) {
	return db.NewEngine(ctx, instance.Store, opts...)
}
