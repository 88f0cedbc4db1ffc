package simulation

import (
	"context"
	"errors"
	"testing"
	"time"

	"glidelife/src/universe"
)

//constSource always draws the same value
type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

//refreshViewer signals every refresh
type refreshViewer struct {
	s       *Simulation
	refresh chan struct{}
}

func (v *refreshViewer) Refresh() {
	select {
	case v.refresh <- struct{}{}:
	default:
	}
}
func (v *refreshViewer) Register(s *Simulation) { v.s = s }
func (v *refreshViewer) Start()                 {}

func newTestOptions() *Options {
	o := DefaultOptions
	o.Width = 10
	o.Height = 10
	o.Interval = 0
	o.MaxSteps = 0
	return &o
}

func newTestSimulation(t *testing.T, o *Options, rnd universe.RandSource) *Simulation {
	t.Helper()
	s, err := New(o, rnd, make(chan Status, 10))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func waitFor(t *testing.T, ch chan Status, mode RunningState) Status {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case st := <-ch:
			if st.RunningMode == mode {
				return st
			}
		case <-timeout:
			t.Fatalf("timeout waiting for running mode %v", mode)
		}
	}
}

func waitRefresh(t *testing.T, v *refreshViewer) {
	t.Helper()
	select {
	case <-v.refresh:
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for refresh")
	}
}

func TestUnknownEngine(t *testing.T) {
	o := newTestOptions()
	o.Engine = "multithreaded"
	_, err := New(o, nil, nil)
	if !errors.Is(err, ErrUnknownEngine) {
		t.Fatalf("New with unknown engine: err = %v, expected ErrUnknownEngine", err)
	}
}

func TestStep(t *testing.T) {
	for name := range Engines {
		o := newTestOptions()
		o.Engine = name
		s := newTestSimulation(t, o, universe.NewRandSource(1))
		s.Step()
		waitFor(t, s.StateCh(), RunningStateStep)
		st := waitFor(t, s.StateCh(), RunningStateManual)
		if st.IterationNum != 1 {
			t.Fatalf("%s: IterationNum = %d, expected 1", name, st.IterationNum)
		}
		f := s.Snapshot()
		if f.Cells.Width() != 10 || f.Cells.Height() != 10 || f.Cells.WordCount() != 4 {
			t.Fatalf("%s: unexpected frame %dx%d with %d words", name, f.Cells.Width(), f.Cells.Height(), f.Cells.WordCount())
		}
	}
}

func TestRunContextMaxSteps(t *testing.T) {
	o := newTestOptions()
	o.MaxSteps = 5
	s := newTestSimulation(t, o, universe.NewRandSource(3))
	last, err := s.RunContext(context.Background(), nil)
	if err != nil {
		t.Fatalf("RunContext: %v", err)
	}
	if last.RunningMode != RunningStateFinished || last.IterationNum != 5 {
		t.Fatalf("last status %+v, expected finished after 5 iterations", last)
	}
	//the finished simulation does not run again
	last, err = s.RunContext(context.Background(), nil)
	if err != nil || last.IterationNum != 5 {
		t.Fatalf("second RunContext: %+v, %v", last, err)
	}
}

func TestRunContextCancel(t *testing.T) {
	o := newTestOptions()
	o.Interval = time.Millisecond
	s := newTestSimulation(t, o, universe.NewRandSource(4))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	last, err := s.RunContext(ctx, func(st Status) {
		if st.IterationNum >= 3 {
			cancel()
		}
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("RunContext: err = %v, expected context.Canceled", err)
	}
	if last.RunningMode != RunningStateManual {
		t.Fatalf("running mode %v, expected manual", last.RunningMode)
	}
}

func TestStopWhenStill(t *testing.T) {
	o := newTestOptions()
	o.StopWhenStill = true
	s := newTestSimulation(t, o, constSource(0))
	s.Clear()
	waitFor(t, s.StateCh(), RunningStateManual)
	last, err := s.RunContext(context.Background(), nil)
	if err != nil {
		t.Fatalf("RunContext: %v", err)
	}
	if last.IterationNum != 1 || last.LiveCells != 0 {
		t.Fatalf("last status %+v, expected finished after the first still iteration", last)
	}
}

func TestInjectionsCounted(t *testing.T) {
	o := newTestOptions()
	o.MaxSteps = 3
	s := newTestSimulation(t, o, constSource(0.95))
	last, err := s.RunContext(context.Background(), nil)
	if err != nil {
		t.Fatalf("RunContext: %v", err)
	}
	if last.Injections != 3 {
		t.Fatalf("Injections = %d, expected 3", last.Injections)
	}
}

func TestSpaceshipAndToggle(t *testing.T) {
	s := newTestSimulation(t, newTestOptions(), constSource(0))
	v := &refreshViewer{refresh: make(chan struct{}, 1)}
	s.RegisterViewer(v)
	if v.s != s {
		t.Fatal("RegisterViewer must register the simulation in the viewer")
	}

	s.Clear()
	waitFor(t, s.StateCh(), RunningStateManual)
	waitRefresh(t, v)

	s.Spaceship()
	waitRefresh(t, v)
	f := s.Snapshot()
	if f.Status.LiveCells != 5 || !f.Cells.AliveAt(0, 1) || !f.Cells.AliveAt(2, 2) {
		t.Fatalf("expected the glider after Spaceship, got\n%s", s.Render())
	}

	s.Toggle(5, 5)
	waitRefresh(t, v)
	if !s.Snapshot().Cells.AliveAt(5, 5) || s.Status().LiveCells != 6 {
		t.Fatalf("expected cell (5,5) alive after Toggle, got\n%s", s.Render())
	}
	if !f.Cells.AliveAt(0, 1) || f.Cells.AliveAt(5, 5) {
		t.Fatal("the retained frame must not follow the universe")
	}
}

func TestReset(t *testing.T) {
	o := newTestOptions()
	s := newTestSimulation(t, o, constSource(0))
	s.Step()
	waitFor(t, s.StateCh(), RunningStateManual)

	s.Reset(constSource(0.75))
	st := waitFor(t, s.StateCh(), RunningStateManual)
	if st.IterationNum != 0 {
		t.Fatalf("IterationNum = %d after Reset, expected 0", st.IterationNum)
	}
	//every cell is seeded alive, then the glider clears four of the top left cells
	if want := 100 - 4; st.LiveCells != want {
		t.Fatalf("LiveCells = %d after Reset, expected %d", st.LiveCells, want)
	}
}

func TestCommandsAfterClose(t *testing.T) {
	s, err := New(newTestOptions(), constSource(0), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Close()
	done := make(chan struct{})
	go func() {
		s.Close()
		s.Step()
		s.Run()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("commands after Close must not block")
	}
}
