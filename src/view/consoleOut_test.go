package view

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"glidelife/src/simulation"
	"glidelife/src/universe"
)

func TestConsoleOut(t *testing.T) {
	o := simulation.DefaultOptions
	o.Width = 10
	o.Height = 6
	o.Interval = 0
	o.MaxSteps = 20
	s, err := simulation.New(&o, universe.NewRandSource(6), make(chan simulation.Status, 10))
	if err != nil {
		t.Fatalf("simulation.New: %v", err)
	}
	defer s.Close()

	var b bytes.Buffer
	c := NewConsoleOut(&b, true)
	//registered directly so the refresh runs on the test goroutine only
	c.Register(s)
	c.Start()
	if _, err := s.RunContext(context.Background(), nil); err != nil {
		t.Fatalf("RunContext: %v", err)
	}
	c.Refresh()

	out := b.String()
	for _, want := range []string{"Running configuration:", "10 x 6", "Simulation started...", "Finished:", "Last iteration", ": 20"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output has no %q:\n%s", want, out)
		}
	}
	trimmed := strings.TrimSuffix(out, "\n")
	field := trimmed[strings.LastIndex(trimmed, "\n")+1:]
	if n := len([]rune(field)); n != 10 {
		t.Fatalf("last dumped line %q has %d glyphs, expected 10", field, n)
	}
	if strings.Count(out, string(universe.DeadGlyph))+strings.Count(out, string(universe.AliveGlyph)) != 60 {
		t.Fatalf("dump must contain 60 glyphs:\n%s", out)
	}
}
