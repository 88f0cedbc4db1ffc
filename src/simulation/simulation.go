package simulation

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"glidelife/src/universe"
)

//Options represents the simulation's configurable options
type Options struct {
	Width           uint32
	Height          uint32
	Seed            int64
	Engine          string
	Interval        time.Duration
	MaxSteps        int
	MaxSkippedTicks int
	StopWhenStill   bool
}

//Status represents the status of the simulation at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	LiveCells     int
	IterationTime time.Duration
	Injections    int //gliders injected by the engine while ticking
}

//Frame is the copy of the universe state which can be retained by the viewers
type Frame struct {
	Cells  universe.CellsView
	Status Status
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(s *Simulation)
	Start()
}

//Factory creates the universe of the concrete engine
type Factory func(width uint32, height uint32, rnd universe.RandSource) universe.Universe

//The simulation running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 1000
	DefWidth              = 64
	DefHeight             = 32
	DefMaxSkippedTicks    = 5
	DefEngine             = "base"
)

const (
	RunningStateManual   RunningState = 0x0
	RunningStateStep     RunningState = 0x1
	RunningStateRun      RunningState = 0x2
	RunningStateFinished RunningState = 0x3
)

var DefaultOptions = Options{
	Width:           DefWidth,
	Height:          DefHeight,
	Engine:          DefEngine,
	Interval:        DefSimulationInterval,
	MaxSteps:        DefMaxSteps,
	MaxSkippedTicks: DefMaxSkippedTicks,
}

//Engines is the registry of the available universe engines
var Engines = map[string]Factory{
	"base": func(width uint32, height uint32, rnd universe.RandSource) universe.Universe {
		return universe.NewBaseUniverse(width, height, rnd)
	},
	"double": func(width uint32, height uint32, rnd universe.RandSource) universe.Universe {
		return universe.NewDoubleBuffUniverse(width, height, rnd)
	},
}

//ErrUnknownEngine is returned for the engine name missing in Engines
var ErrUnknownEngine = errors.New("unknown engine")

//drawRecorder remembers the last value drawn by the universe
//Tick draws exactly once, so after a tick it holds the spaceship injection draw
type drawRecorder struct {
	universe.RandSource
	last float64
}

func (r *drawRecorder) Float64() float64 {
	r.last = r.RandSource.Float64()
	return r.last
}

//Simulation drives the universe
//all universe calls are executed one by one on the main loop goroutine
type Simulation struct {
	options Options
	factory Factory
	state   struct {
		Status
		sync.Mutex
	}
	universe struct {
		universe.Universe
		sync.Mutex
	}
	rnd       *drawRecorder
	stateCh   chan Status
	views     []Viewer
	controlCh chan func()
	closeCh   chan bool
	done      chan struct{}
}

//New creates the universe of the o.Engine engine seeded from rnd and the Simulation driving it
//stateCh receives the status on every running state switch, may be nil
func New(o *Options, rnd universe.RandSource, stateCh chan Status) (*Simulation, error) {
	if o == nil {
		o = &DefaultOptions
	}
	f, ok := Engines[o.Engine]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, o.Engine)
	}
	if rnd == nil {
		rnd = universe.NewRandSource(o.Seed)
	}
	s := Simulation{
		options:   *o,
		factory:   f,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan bool, 1),
		done:      make(chan struct{}),
		stateCh:   stateCh,
	}
	s.rnd = &drawRecorder{RandSource: rnd}
	s.universe.Universe = f(o.Width, o.Height, s.rnd)
	s.state.LiveCells = s.universe.LiveCells()
	go s.mainLoop()
	return &s, nil
}

//RegisterViewer registers the viewer - the simulation will call the viewer when the state is changed
func (s *Simulation) RegisterViewer(v Viewer) {
	s.views = append(s.views, v)
	v.Register(s)
}

//StateCh returns the channel with the simulation's status updates
func (s *Simulation) StateCh() chan Status {
	return s.stateCh
}

//Status returns current simulation status represented by Status struct
func (s *Simulation) Status() Status {
	s.state.Lock()
	defer s.state.Unlock()
	return s.state.Status
}

//Options returns current simulation configuration represented by Options struct
func (s *Simulation) Options() Options {
	return s.options
}

//Snapshot copies the current universe state, the frame stays valid after the following steps
func (s *Simulation) Snapshot() Frame {
	s.universe.Lock()
	cells := s.universe.Cells().Copy()
	s.universe.Unlock()
	return Frame{Cells: cells, Status: s.Status()}
}

//Render returns the text rendering of the current generation
func (s *Simulation) Render() string {
	s.universe.Lock()
	defer s.universe.Unlock()
	return s.universe.Render()
}

//Run starts the simulation, returns immediately
func (s *Simulation) Run() {
	s.exec(s.run)
}

//Stop stops the simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (s *Simulation) Stop() {
	s.exec(s.stop)
}

//Step do one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (s *Simulation) Step() {
	s.exec(s.step)
}

//Clear kills all cells and resets all counters, returns immediately
//the Status struct will be written to the stateCh on finish
func (s *Simulation) Clear() {
	s.exec(s.clear)
}

//Spaceship injects the glider to the top left corner, returns immediately
func (s *Simulation) Spaceship() {
	s.exec(func() {
		s.mutate(func() { s.universe.CreateSpaceship() })
	})
}

//Toggle inverses the cell state at row, col, returns immediately
func (s *Simulation) Toggle(row uint32, col uint32) {
	s.exec(func() {
		s.mutate(func() { s.universe.Toggle(row, col) })
	})
}

//Reset replaces the universe with the new one seeded from rnd, returns immediately
//only allowed when the simulation is not running
func (s *Simulation) Reset(rnd universe.RandSource) {
	s.exec(func() {
		mode := s.Status().RunningMode
		if mode != RunningStateManual && mode != RunningStateFinished {
			return
		}
		s.universe.Lock()
		s.rnd = &drawRecorder{RandSource: rnd}
		s.universe.Universe = s.factory(s.options.Width, s.options.Height, s.rnd)
		live := s.universe.LiveCells()
		s.universe.Unlock()
		s.state.Lock()
		s.state.IterationNum = 0
		s.state.Injections = 0
		s.state.LiveCells = live
		s.state.Unlock()
		s.switchRunningState(RunningStateManual)
		s.refreshView()
	})
}

//Close stops the main loop, close the channels, returns immediately
func (s *Simulation) Close() {
	select {
	case s.closeCh <- true:
	case <-s.done:
	}
}

//exec queues the command for the main loop, the command is dropped after Close
func (s *Simulation) exec(cmd func()) bool {
	select {
	case s.controlCh <- cmd:
		return true
	case <-s.done:
		return false
	}
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (s *Simulation) mainLoop() {
	var c = false
	for !c {
		select {
		case cmd := <-s.controlCh:
			cmd()
		case c = <-s.closeCh:

		}
	}
	close(s.done)
}

//mutate applies the universe edit and refreshes the counters and views
func (s *Simulation) mutate(f func()) {
	s.universe.Lock()
	f()
	live := s.universe.LiveCells()
	s.universe.Unlock()
	s.state.Lock()
	s.state.LiveCells = live
	s.state.Unlock()
	s.refreshView()
}

//switchRunningState switch the state of the simulation to RunningState
//also writes the new state to the stateCh to signal upper control software
func (s *Simulation) switchRunningState(to RunningState) {
	s.state.Lock()
	s.state.RunningMode = to
	st := s.state.Status
	s.state.Unlock()
	if s.stateCh != nil {
		s.stateCh <- st
	}
}

//run starts the simulation
//simulation will stop on Stop() calling or when the boundary conditions are reached
func (s *Simulation) run() {
	if s.Status().RunningMode == RunningStateFinished {
		return
	}
	s.switchRunningState(RunningStateRun)
	go func() {
		skipped := 0
		done := make(chan bool)
		defer close(done)
		for {
			mode := s.Status().RunningMode
			if mode != RunningStateRun && mode != RunningStateStep {
				break
			}
			if skipped > s.options.MaxSkippedTicks {
				s.switchRunningState(RunningStateFinished)
				break
			}
			//skip the tick if the simulation is still in the calculation mode
			if mode != RunningStateStep {
				skipped = 0
				if !s.exec(func() {
					if s.Status().RunningMode == RunningStateRun {
						s.step()
					}
					done <- true
				}) {
					break
				}
				<-done
			} else {
				skipped++
			}
			if s.options.Interval > 0 {
				time.Sleep(s.options.Interval)
			}
		}
	}()
}

//stop stops the simulation running cycle
func (s *Simulation) stop() {
	if s.Status().RunningMode == RunningStateRun {
		s.switchRunningState(RunningStateManual)
	}
}

//step does the new one generation calculation for entire universe
func (s *Simulation) step() {
	finished := false
	rm := s.Status().RunningMode
	if rm == RunningStateFinished {
		return
	}
	maxIter := s.options.MaxSteps
	defer func() {
		if finished {
			s.switchRunningState(RunningStateFinished)
		} else {
			s.switchRunningState(rm)
		}
		s.refreshView()
	}()

	s.switchRunningState(RunningStateStep)
	changed, injected, elapsed := s.tick()

	s.state.Lock()
	s.state.IterationNum++
	s.state.IterationTime = elapsed
	if injected {
		s.state.Injections++
	}
	iter := s.state.IterationNum
	s.state.Unlock()

	if maxIter != 0 && iter >= maxIter {
		finished = true
	}
	if s.options.StopWhenStill && !changed {
		finished = true
	}
}

//tick advances the universe and reports whether the generation has changed
//and whether the top left corner was overwritten with the glider before the generation
func (s *Simulation) tick() (changed bool, injected bool, elapsed time.Duration) {
	s.universe.Lock()
	defer s.universe.Unlock()
	start := time.Now()
	prev := s.universe.Cells().Copy()
	s.universe.Tick()
	elapsed = time.Since(start)
	cur := s.universe.Cells()
	changed = !slices.Equal(prev.Words(), cur.Words())
	injected = s.rnd.last > universe.SpaceshipThreshold
	s.state.Lock()
	s.state.LiveCells = s.universe.LiveCells()
	s.state.Unlock()
	return
}

//clear clears the universe data, reset all counters
func (s *Simulation) clear() {
	s.universe.Lock()
	s.universe.Clear()
	s.universe.Unlock()

	s.state.Lock()
	s.state.IterationNum = 0
	s.state.LiveCells = 0
	s.state.Injections = 0
	s.state.Unlock()
	s.switchRunningState(RunningStateManual)
	s.refreshView()
}

//refreshView calls Refresh event for all registered views
func (s *Simulation) refreshView() {
	for _, v := range s.views {
		v.Refresh()
	}
}
