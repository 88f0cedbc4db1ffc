package simulation

import (
	"sort"
	"testing"

	"glidelife/src/universe"
)

const (
	width  = 200
	height = 200
)

func simulationStep(s *Simulation, b *testing.B) {
	stateCh := s.StateCh()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		s.Reset(universe.NewRandSource(int64(i)))
		<-stateCh //wait for finish
		b.StartTimer()
		s.Step()
		for {
			st := <-stateCh
			if st.RunningMode == RunningStateManual {
				break
			}
		}
	}
	s.Close()
}

func simulationRun(s *Simulation, b *testing.B) {
	stateCh := s.StateCh()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		s.Reset(universe.NewRandSource(int64(i)))
		<-stateCh //wait for finish
		b.StartTimer()
		s.Run()
		for {
			st := <-stateCh
			if st.RunningMode == RunningStateFinished {
				break
			}
		}
	}
	s.Close()
}

func newBenchOptions(engine string) *Options {
	o := DefaultOptions
	o.Interval = 0
	o.MaxSteps = 100
	o.Width = width
	o.Height = height
	o.Engine = engine
	return &o
}

func engineNames() (engineNames []string) {
	engineNames = make([]string, 0, len(Engines))
	for k := range Engines {
		engineNames = append(engineNames, k)
	}
	sort.Strings(engineNames)
	return
}

func newBenchSimulation(b *testing.B, engine string) *Simulation {
	s, err := New(newBenchOptions(engine), universe.NewRandSource(1), make(chan Status, 10))
	if err != nil {
		b.Fatal(err)
	}
	return s
}

func Benchmark_Step(b *testing.B) {
	for _, e := range engineNames() {
		b.Run(e, func(b *testing.B) {
			simulationStep(newBenchSimulation(b, e), b)
		})
	}
}

func Benchmark_Simulation(b *testing.B) {
	for _, e := range engineNames() {
		b.Run(e, func(b *testing.B) {
			simulationRun(newBenchSimulation(b, e), b)
		})
	}
}
