package action

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gabapcia/walletsentry/internal/message"
	"github.com/gabapcia/walletsentry/internal/pkg/logger"
	"github.com/gabapcia/walletsentry/internal/pkg/telemetry"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type eventIDKey struct{}

// EventID returns the id of the dispatch ctx belongs to.
func EventID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(eventIDKey{}).(string)
	return id, ok
}

// Dispatcher runs every action of a fixed set concurrently for each
// notification. The set is read-only after construction.
type Dispatcher struct {
	actions []Action

	tracer     trace.Tracer
	executions metric.Int64Counter
}

// NewDispatcher returns a Dispatcher over actions.
func NewDispatcher(actions []Action) *Dispatcher {
	executions, err := telemetry.Meter().Int64Counter("walletsentry.action.executions",
		metric.WithDescription("Action executions by outcome."),
	)
	if err != nil {
		logger.Warn(context.Background(), "could not create action counter", "error", err)
	}

	return &Dispatcher{
		actions:    actions,
		tracer:     telemetry.Tracer(),
		executions: executions,
	}
}

// Actions returns the active action set.
func (d *Dispatcher) Actions() []Action {
	return d.actions
}

// Dispatch executes every action against mctx, which is nil for a dry run,
// and returns once all of them have finished. A failing or panicking action
// never affects its siblings. Failures are logged with the action name and
// also returned joined.
func (d *Dispatcher) Dispatch(ctx context.Context, mctx *message.Context) error {
	eventID := newEventID()
	ctx = context.WithValue(ctx, eventIDKey{}, eventID)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, action := range d.actions {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if err := d.execute(ctx, action, mctx); err != nil {
				logArgs := []any{"event.id", eventID, "action.name", action.Name(), "error", err}
				if mctx != nil {
					logArgs = append(logArgs, "wallet.name", mctx.Wallet, "tx.id", mctx.Transaction.ID)
				}
				logger.Error(ctx, "action failed", logArgs...)

				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", action.Name(), err))
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	return errors.Join(errs...)
}

// execute runs a single action inside its own span, turning a panic into
// ErrActionPanicked.
func (d *Dispatcher) execute(ctx context.Context, action Action, mctx *message.Context) (err error) {
	ctx, span := d.tracer.Start(ctx, "action.execute",
		trace.WithAttributes(attribute.String("action.name", action.Name())),
	)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrActionPanicked, r)
		}

		outcome := "success"
		if err != nil {
			outcome = "failure"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		if d.executions != nil {
			d.executions.Add(ctx, 1, metric.WithAttributes(
				attribute.String("action.name", action.Name()),
				attribute.String("outcome", outcome),
			))
		}
		span.End()
	}()

	logger.Debug(ctx, "running action", "action.name", action.Name())
	return action.Execute(ctx, mctx)
}

func newEventID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
