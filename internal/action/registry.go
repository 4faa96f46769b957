package action

import (
	"context"
	"fmt"

	"github.com/gabapcia/walletsentry/internal/pkg/logger"
)

// Factory builds the backend described by cfg. A returned error only
// disables that backend.
type Factory func(ctx context.Context, cfg Config) (Action, error)

// Registry maps backend kinds to their factories.
type Registry struct {
	factories map[Kind]Factory
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[Kind]Factory),
	}
}

// Register binds kind to f, replacing any previous factory for kind.
func (r *Registry) Register(kind Kind, f Factory) {
	r.factories[kind] = f
}

func (r *Registry) build(ctx context.Context, cfg Config) (Action, error) {
	factory, ok := r.factories[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, cfg.Type)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return factory(ctx, cfg)
}

// Build constructs every configured backend in order. Backends that fail to
// build are logged and skipped; the rest are returned. It fails with
// ErrNoActions only when nothing could be built.
func (r *Registry) Build(ctx context.Context, cfgs []Config) ([]Action, error) {
	actions := make([]Action, 0, len(cfgs))
	for i, cfg := range cfgs {
		logger.Debug(ctx, "registering action", "action.type", cfg.Type, "action.index", i)

		action, err := r.build(ctx, cfg)
		if err != nil {
			logger.Warn(ctx, "could not register action",
				"action.type", cfg.Type,
				"action.index", i,
				"error", err,
			)
			continue
		}

		logger.Info(ctx, "registered action", "action.name", action.Name(), "action.index", i)
		actions = append(actions, action)
	}

	if len(actions) == 0 {
		return nil, ErrNoActions
	}

	return actions, nil
}
