package view

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/logrusorgru/aurora"

	"glidelife/src/simulation"
)

type ConsoleOut struct {
	s         *simulation.Simulation
	out       io.Writer
	startTime time.Time
	dump      bool
}

//NewConsoleOut creates the viewer writing the progress to out
//dump - print the final generation when the simulation is finished
func NewConsoleOut(out io.Writer, dump bool) *ConsoleOut {
	return &ConsoleOut{out: out, dump: dump}
}

func (c *ConsoleOut) Refresh() {
	st := c.s.Status()
	if st.RunningMode == simulation.RunningStateFinished {
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last iteration": st.IterationNum,
			"Total time":     totalTime,
			"Live cells":     st.LiveCells,
			"Spaceships":     st.Injections,
		}
		fmt.Fprintln(c.out, "\nFinished:")
		c.printHashData(resultData)
		if c.dump {
			fmt.Fprint(c.out, c.s.Render())
		}
	} else if st.RunningMode == simulation.RunningStateRun {
		if st.IterationNum%10 == 0 {
			fmt.Fprintf(c.out, "  Iterations done: %v\n", st.IterationNum)
		}
	}
}

func (c *ConsoleOut) Register(s *simulation.Simulation) {
	c.s = s
	o := c.s.Options()
	fmt.Fprintln(c.out, "Running configuration:")
	c.printHashData(map[string]interface{}{
		"Dimension":      fmt.Sprintf("%v x %v", o.Width, o.Height),
		"Interval":       o.Interval,
		"Max iterations": fmt.Sprintf("%v steps", o.MaxSteps),
		"Engine":         o.Engine,
		"Seed":           o.Seed,
	})
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	fmt.Fprintln(c.out, "\nSimulation started...")
}

//Alert prints the notification
func (c *ConsoleOut) Alert(msg string) {
	fmt.Fprintln(c.out, aurora.Bold(aurora.Cyan(msg)).String())
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(c.out, "  %s: %v\n", aurora.Green(propName), d[propName])
	}
}
