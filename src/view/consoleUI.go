package view

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"glidelife/src/simulation"
	"glidelife/src/universe"
)

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

type ConsoleUI struct {
	s          *simulation.Simulation
	g          *gocui.Gui
	k          []keyBindings
	liveFiller string
	deadFiller string
	alert      string
}

var (
	runningStateDescr = map[simulation.RunningState]string{
		simulation.RunningStateManual:   aurora.Colorize("waiting", aurora.BlueFg).String(),
		simulation.RunningStateStep:     "do the step",
		simulation.RunningStateRun:      aurora.Colorize("running", aurora.CyanFg).String(),
		simulation.RunningStateFinished: aurora.Colorize("finished", aurora.RedFg).String(),
	}
)

//NewViewTerminal creates the interactive terminal viewer
func NewViewTerminal() *ConsoleUI {

	var err error
	t := ConsoleUI{
		liveFiller: aurora.Green("█").BgBrightGreen().String(),
		deadFiller: "░",
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Panicln(err)
	}

	t.g.Mouse = true
	t.k = []keyBindings{
		{gocui.KeyCtrlC,
			"^C",
			"Exit",
			t.cmdQuit,
			""},
		{'n',
			"N",
			"Next step",
			t.cmdNextRound,
			""},
		{'r',
			"R",
			"Run",
			t.cmdRun,
			""},
		{'s',
			"S",
			"Stop",
			t.cmdStop,
			""},
		{'c',
			"C",
			"Clear",
			t.cmdClear,
			""},
		{'w',
			"W",
			"Reseed",
			t.cmdReseed,
			""},
		{'g',
			"G",
			"Glider",
			t.cmdSpaceship,
			""},
		{gocui.MouseLeft,
			"MOUSE",
			"Toggle the cell",
			t.cmdMouseClick,
			"battlefield"},
	}
	t.g.SetManagerFunc(t.layout)

	t.initKeyBindings(t.k)

	return &t
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			log.Panicln(err)
		}
	}
}

func (t *ConsoleUI) Register(s *simulation.Simulation) {
	t.s = s
}

func (t *ConsoleUI) Start() {
	if err := t.g.MainLoop(); err != nil && !errors.Is(err, gocui.ErrQuit) {
		log.Panicln(err)
	}
	t.g.Close()
}

func (t *ConsoleUI) Refresh() {
	f := t.s.Snapshot()
	t.renderField(f.Cells)
	t.renderConfiguration()
	t.renderStatus(f.Status)
}

//Alert shows the notification in the header until the next one
func (t *ConsoleUI) Alert(msg string) {
	t.alert = msg
	t.g.Update(func(g *gocui.Gui) error {
		if _, err := t.headerLayout(g, 3, msg); err != nil && !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		return nil
	})
}

func (t *ConsoleUI) renderField(c universe.CellsView) {

	t.g.Update(func(g *gocui.Gui) error {
		v, e := g.View("battlefield")
		if e != nil {
			return e
		}
		//the entire field is redrawing at once now
		//this terminal driver allows to redraw only changed chars
		//there is an opportunity to speed up with a selective redraw
		v.Clear()

		crop := false
		maxW, maxH := v.Size()
		w, h := int(c.Width()), int(c.Height())
		if w > maxW || h > maxH {
			crop = true
		}

		var b bytes.Buffer

		for row := 0; row < h; row++ {
			//discard the data outside the view area
			if row >= maxH {
				break
			}
			//line feed char
			if row != 0 {
				b.WriteByte(10)
			}
			if crop && row == (maxH-1) {
				b.WriteString(aurora.Red("The field size is larger than the viewing area").BgBlack().String())
				break
			}
			for col := 0; col < w && col < maxW; col++ {
				if c.Alive(row*w + col) {
					b.WriteString(t.liveFiller)
				} else {
					b.WriteString(t.deadFiller)
				}
			}
		}
		_, _ = fmt.Fprint(v, b.String())
		return nil
	})
}

func (t *ConsoleUI) renderStatus(s simulation.Status) {
	t.g.Update(func(g *gocui.Gui) error {
		if v, e := t.g.View("status"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Step", "%v", s.IterationNum))
			_, _ = fmt.Fprintln(v, t.renderProp("Live Cells", "%v", s.LiveCells))
			_, _ = fmt.Fprintln(v, t.renderProp("Spaceships", "%v", s.Injections))
			_, _ = fmt.Fprintln(v, t.renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)))
			_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", runningStateDescr[s.RunningMode]))
		}
		return nil
	})
}

func (t *ConsoleUI) renderConfiguration() {
	//it needs to call Update when calls from goroutine
	t.g.Update(func(g *gocui.Gui) error {
		c := t.s.Options()
		if v, e := g.View("configuration"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", c.Width, c.Height))
			_, _ = fmt.Fprintln(v, t.renderProp("Engine", "%v", c.Engine))
			_, _ = fmt.Fprintln(v, t.renderProp("Seed", "%v", c.Seed))
			_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", c.Interval))
			_, _ = fmt.Fprintln(v, t.renderProp("Iterations", "%v steps", c.MaxSteps))
		}
		return nil
	})
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {

	maxX, maxY := g.Size()
	leftColumnWidth := 28
	minWindowHeight := 20

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			if !errors.Is(err, gocui.ErrUnknownView) {
				return err
			}
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView("battlefield")
		return nil

	} else {
		if _, err := t.headerLayout(g, 3, t.headerText()); err != nil {
			if !errors.Is(err, gocui.ErrUnknownView) {
				return err
			}
		}
	}

	if v, err := g.SetView("configuration", 0, 3, leftColumnWidth, 3+(maxY-5-3)/2); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
		t.renderConfiguration()
	}

	if v, err := g.SetView("status", 0, 3+(maxY-5-3)/2+1, leftColumnWidth, maxY-5); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
		t.renderStatus(t.s.Status())
	}

	if v, err := g.SetView("battlefield", leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) || v == nil {
			return err
		}
		v.Title = "Universe"
		v.Frame = true
		t.renderField(t.s.Snapshot().Cells)
	} else {
		t.renderField(t.s.Snapshot().Cells)
	}

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-3); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) || v == nil {
			return err
		}
		v.Frame = false
		b := bytes.Buffer{}
		b.WriteString("KEYBINDINGS: ")
		for i, k := range t.k {
			if i != 0 {
				b.WriteString(", ")
			}
			b.WriteString(aurora.Green(k.name).String())
			b.WriteString(": ")
			b.WriteString(k.descr)
		}
		_, _ = fmt.Fprintln(v, b.String())
	}

	return nil
}

func (t *ConsoleUI) headerText() string {
	if t.alert != "" {
		return t.alert
	}
	return "This is \"The Life\" game simulation"
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if errors.Is(err, gocui.ErrUnknownView) && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		if maxX < len(text) {
			panic(fmt.Sprintf("Terminal width is too small: %v", maxX))
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", (maxX-len(text))/2)+text)
	}
	return
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdNextRound(_ *gocui.View) error {
	t.s.Step()
	return nil
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	t.s.Run()
	return nil
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.s.Stop()
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.s.Clear()
	return nil
}

func (t *ConsoleUI) cmdReseed(_ *gocui.View) error {
	t.s.Reset(universe.NewTimeRandSource())
	return nil
}

func (t *ConsoleUI) cmdSpaceship(_ *gocui.View) error {
	t.s.Spaceship()
	return nil
}

func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	if cx < 0 || cy < 0 {
		return nil
	}
	t.s.Toggle(uint32(cy), uint32(cx))
	return nil
}
