package runner

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Runnable represents a component that can be run with a context.
type Runnable interface {
	Run(ctx context.Context) error
}

// RunnableFunc adapts a plain function to a Runnable.
type RunnableFunc func(ctx context.Context) error

func (f RunnableFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// RunAll runs all the provided runnables concurrently and waits for all of them to finish.
//
// This method is blocking, the first error cancels the context given to the other runnables and is returned.
func RunAll(parentCtx context.Context, runnables ...Runnable) error {
	group, ctx := errgroup.WithContext(parentCtx)

	for _, runnable := range runnables {
		group.Go(func() error {
			return runnable.Run(ctx)
		})
	}

	return group.Wait()
}

// RunLimited behaves like RunAll, but never runs more than limit runnables at the same time.
// A limit lower than one means no limit.
func RunLimited(parentCtx context.Context, limit int, runnables ...Runnable) error {
	group, ctx := errgroup.WithContext(parentCtx)
	if limit > 0 {
		group.SetLimit(limit)
	}

	for _, runnable := range runnables {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return runnable.Run(ctx)
		})
	}

	return group.Wait()
}
