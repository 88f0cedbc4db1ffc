package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/integrii/flaggy"

	"glidelife/src/simulation"
	"glidelife/src/view"
)

type EnvOptions struct {
	interactive bool
	gui         bool
	dump        bool
	scale       int
	greet       *flaggy.Subcommand
	greetName   string
}

func main() {
	eo, uo := initOptions()

	if eo.greet.Used {
		view.Greet(view.NewConsoleOut(os.Stdout, false), eo.greetName)
		return
	}

	if uo.Width < 3 || uo.Height < 3 {
		log.Printf("universe %vx%v is smaller than the 3x3 glider, the glider cells will overlap", uo.Width, uo.Height)
	}

	var stateCh chan simulation.Status
	if !eo.interactive && !eo.gui {
		stateCh = make(chan simulation.Status, 10) //the buffered channel to getting the simulation status
	}

	s, err := simulation.New(uo, nil, stateCh)
	if err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}
	defer s.Close()

	switch {
	case eo.gui:
		s.Run()
		if err := view.RunWindow(s, eo.scale); err != nil {
			log.Fatal(err)
		}
	case eo.interactive:
		v := view.NewViewTerminal()
		s.RegisterViewer(v)
		v.Start()
	default:
		v := view.NewConsoleOut(os.Stdout, eo.dump)
		s.RegisterViewer(v)
		v.Start()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if _, err := s.RunContext(ctx, nil); err != nil && !errors.Is(err, context.Canceled) {
			log.Fatal(err)
		}
	}
}

func initOptions() (eo *EnvOptions, uo *simulation.Options) {

	uo = &simulation.DefaultOptions
	uo.Seed = time.Now().UnixNano()
	engineNames := make([]string, 0, len(simulation.Engines))
	for k := range simulation.Engines {
		engineNames = append(engineNames, k)
	}
	sort.Strings(engineNames)
	eo = &EnvOptions{scale: 8}

	flaggy.SetName("glidelife")
	flaggy.SetDescription("\"The Life\" game on the torus with the gliders flying in")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.UInt32(&uo.Width, "x", "width", "Width of a simulation field")
	flaggy.UInt32(&uo.Height, "y", "height", "Height of a simulation field")
	flaggy.Duration(&uo.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&uo.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps, 0 - no limit")
	flaggy.Int64(&uo.Seed, "", "seed", "Seed of the random source")
	flaggy.Bool(&uo.StopWhenStill, "", "still", "Stop when the generation does not change")
	flaggy.String(&uo.Engine, "e", "engine", "Engine to use ["+strings.Join(engineNames, "|")+"]")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&eo.gui, "g", "gui", "Open the window (requires the ebiten build tag)")
	flaggy.Int(&eo.scale, "", "scale", "Pixels per cell in the window")
	flaggy.Bool(&eo.dump, "d", "dump", "Print the last generation when finished")

	eo.greet = flaggy.NewSubcommand("greet")
	eo.greet.Description = "Say hello"
	eo.greet.AddPositionalValue(&eo.greetName, "name", 1, true, "Who to greet")
	flaggy.AttachSubcommand(eo.greet, 1)

	flaggy.Parse()

	if _, ok := simulation.Engines[uo.Engine]; !ok {
		flaggy.ShowHelpAndExit("unknown engine")
	}
	if eo.scale <= 0 {
		eo.scale = 1
	}

	return
}
