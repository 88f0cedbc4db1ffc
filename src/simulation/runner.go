package simulation

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

//ErrNoStateCh is returned by RunContext for the simulation created without the status channel
var ErrNoStateCh = errors.New("simulation has no state channel")

//RunContext runs the simulation until it finishes or ctx is cancelled
//onStatus is called for every status read from the state channel, may be nil
//returns the last received status
func (s *Simulation) RunContext(ctx context.Context, onStatus func(Status)) (Status, error) {
	if s.stateCh == nil {
		return s.Status(), ErrNoStateCh
	}
	if st := s.Status(); st.RunningMode == RunningStateFinished {
		return st, nil
	}
	//queued before the stop request of the watcher below
	s.Run()

	g, gctx := errgroup.WithContext(ctx)
	finished := make(chan struct{})
	var last Status

	g.Go(func() error {
		defer close(finished)
		for {
			st := <-s.stateCh
			last = st
			if onStatus != nil {
				onStatus(st)
			}
			switch {
			case st.RunningMode == RunningStateFinished:
				return nil
			case st.RunningMode == RunningStateManual && ctx.Err() != nil:
				//acknowledged stop request
				return ctx.Err()
			}
		}
	})

	g.Go(func() error {
		select {
		case <-gctx.Done():
			s.Stop()
		case <-finished:
		}
		return nil
	})

	err := g.Wait()
	return last, err
}
