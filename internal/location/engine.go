package location

import (
	"context"
	"log/slog"

	"subgen/internal/logging"
	"subgen/internal/services"
)

// Failure records a location the engine could not reduce to files, either
// because no resolver matched or because its resolver failed.
type Failure struct {
	Location string
	Err      error
}

// Result is the outcome of draining the worklist for one batch of top-level
// locations. Files preserves discovery (breadth-first) order and is not
// deduplicated: overlapping inputs (a file plus a directory containing it)
// yield duplicates, and callers wanting set semantics must dedupe themselves.
type Result struct {
	Files    []string
	Failures []Failure
}

// Engine reduces arbitrary location strings to a flat list of local media
// files by breadth-first expansion over a FIFO worklist.
//
// Termination rests on directory trees being finite and downloads being
// terminal: directory walks do not follow symlinked directories, and no
// resolver re-enters a location it produced.
type Engine struct {
	resolvers []Resolver
	logger    *slog.Logger
}

// NewEngine builds an engine over the given resolver set, tried in order.
func NewEngine(resolvers []Resolver, logger *slog.Logger) *Engine {
	return &Engine{
		resolvers: resolvers,
		logger:    logging.NewComponentLogger(logger, "engine"),
	}
}

// Resolve drains the worklist seeded with the supplied locations. Locations
// are processed strictly sequentially; one resolver call (which may block on
// a walk or a download) completes before the next location is dequeued.
//
// A top-level location nothing can handle, or whose resolver fails, is
// recorded as a Failure and the batch continues.
func (e *Engine) Resolve(ctx context.Context, locations []string) Result {
	var result Result

	queue := make([]string, 0, len(locations))
	queue = append(queue, locations...)

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			for _, remaining := range queue {
				result.Failures = append(result.Failures, Failure{Location: remaining, Err: err})
			}
			return result
		}

		loc := queue[0]
		queue = queue[1:]

		resolution, resolver, err := e.resolveOne(ctx, loc)
		if err != nil {
			e.logger.Warn("location failed",
				logging.String("location", loc),
				logging.String("resolver", resolver),
				logging.Error(err))
			result.Failures = append(result.Failures, Failure{Location: loc, Err: err})
			continue
		}

		if path, ok := resolution.IsFile(); ok {
			e.logger.Debug("resolved file",
				logging.String("location", loc),
				logging.String("resolver", resolver),
				logging.String("path", path))
			result.Files = append(result.Files, path)
			continue
		}
		if more, ok := resolution.IsExpand(); ok {
			e.logger.Debug("expanded location",
				logging.String("location", loc),
				logging.String("resolver", resolver),
				logging.Int("children", len(more)))
			queue = append(queue, more...)
			continue
		}

		err = services.Wrap(services.ErrUnresolvable, "engine", "resolve", loc, nil)
		e.logger.Warn("could not handle location", logging.String("location", loc))
		result.Failures = append(result.Failures, Failure{Location: loc, Err: err})
	}

	return result
}

func (e *Engine) resolveOne(ctx context.Context, loc string) (Resolution, string, error) {
	for _, resolver := range e.resolvers {
		if !resolver.CanHandle(loc) {
			continue
		}
		resolution, err := resolver.Resolve(ctx, loc)
		return resolution, resolver.Name(), err
	}
	return Unhandled(), "", nil
}
