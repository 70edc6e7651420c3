package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gogpu/glstate"
	"github.com/gogpu/glstate/backend"
	"github.com/gogpu/glstate/backend/record"
	"github.com/gogpu/glstate/config"
	"github.com/gogpu/glstate/metrics"
)

func TestWriteCaps(t *testing.T) {
	d, release, err := backend.Open(backend.DriverCore33)
	if err != nil {
		t.Fatal(err)
	}
	defer release()
	ext := glstate.NewRegistry().Get(0, d)

	var buf bytes.Buffer
	if err := writeCaps(&buf, ext, true); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Record Core") {
		t.Errorf("caps output missing renderer:\n%s", out)
	}
	if !strings.Contains(out, "\nGL_ARB_vertex_array_object\n") {
		t.Errorf("caps output missing extension list:\n%s", out)
	}
	for label, want := range map[string]string{
		"core profile":   "true",
		"fixed function": "no",
		"GLSL":           "yes",
	} {
		if got := capsValue(out, label); got != want {
			t.Errorf("%s = %q, want %q", label, got, want)
		}
	}
}

// capsValue returns the last field of the line starting with label.
func capsValue(out, label string) string {
	for line := range strings.Lines(out) {
		if strings.HasPrefix(line, label+" ") {
			fields := strings.Fields(line)
			return fields[len(fields)-1]
		}
	}
	return ""
}

func TestBenchmarkSkipsRedundantState(t *testing.T) {
	for _, composed := range []bool{false, true} {
		p := config.Default()
		p.ShaderComposition = composed
		d := record.New(record.Core33())

		res, err := benchmark(d, p, 10, 16, nil)
		if err != nil {
			t.Fatal(err)
		}
		if res.Stats.Applies == 0 {
			t.Errorf("composed=%v: Applies = 0", composed)
		}
		if res.Stats.ModeSkips == 0 {
			t.Errorf("composed=%v: ModeSkips = 0, want redundant modes elided", composed)
		}
		if res.Stats.GLErrors != 0 {
			t.Errorf("composed=%v: GLErrors = %d, want 0", composed, res.Stats.GLErrors)
		}
		if d.Count("CreateProgram") == 0 {
			t.Errorf("composed=%v: no program created", composed)
		}
	}
}

func TestBenchmarkMetrics(t *testing.T) {
	c := metrics.NewCollector("")
	reg := prometheus.NewRegistry()
	reg.MustRegister(c)

	res, err := benchmark(record.New(record.Desktop46()), config.Default(), 2, 4, c)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := writeBenchResult(&buf, res); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "draws") {
		t.Errorf("result output missing draws:\n%s", buf.String())
	}
	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	if len(families) == 0 {
		t.Error("no metric families gathered")
	}
}
