package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/gogpu/glstate"
	"github.com/gogpu/glstate/attrib"
	"github.com/gogpu/glstate/backend"
	"github.com/gogpu/glstate/config"
	"github.com/gogpu/glstate/metrics"
	"github.com/gogpu/glstate/shadercomp"
)

var (
	benchFrames  int
	benchSets    int
	benchMetrics bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run a synthetic state-change workload and report GL call counts",
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().IntVarP(&benchFrames, "frames", "n", 1000, "number of frames to draw")
	benchCmd.Flags().IntVarP(&benchSets, "sets", "s", 64, "state sets drawn per frame")
	benchCmd.Flags().BoolVar(&benchMetrics, "metrics", false, "print the Prometheus exposition after the run")
}

const (
	benchVertex = `#version 330
uniform mat4 glstate_ModelViewProjectionMatrix;
in vec4 position;
void main() { gl_Position = glstate_ModelViewProjectionMatrix * position; }
`
	benchFragment = `#version 330
uniform float alpha;
out vec4 color;
void main() {
#ifdef USE_FOG
	color = vec4(0.5, 0.5, 0.5, alpha);
#else
	color = vec4(1.0, 1.0, 1.0, alpha);
#endif
}
`
)

// scene is a root state set and the leaf state sets drawn under it.
type scene struct {
	root   *glstate.StateSet
	leaves []*glstate.StateSet
}

// buildScene creates n leaves that vary blending, texturing, fog and a
// uniform, so consecutive draws share some state and differ in the rest.
func buildScene(n int, composed bool) *scene {
	root := glstate.NewStateSet("root")
	root.SetAttributeAndModes(attrib.NewDepth(gputypes.CompareFunctionLessEqual, true), glstate.On)
	root.SetAttributeAndModes(attrib.NewCullFace(gputypes.CullModeBack), glstate.On)
	if !composed {
		root.SetAttribute(attrib.NewProgram("bench",
			glstate.ShaderSource{Stage: glstate.StageVertex, Code: benchVertex},
			glstate.ShaderSource{Stage: glstate.StageFragment, Code: benchFragment}), glstate.On)
	}

	blend := attrib.NewBlendFunc(gputypes.BlendFactorSrcAlpha, gputypes.BlendFactorOneMinusSrcAlpha)
	fog := attrib.NewFog(attrib.FogLinear)
	fog.Start, fog.End = 10, 100

	sc := &scene{root: root}
	for i := range n {
		ss := glstate.NewStateSet(fmt.Sprintf("leaf%d", i))
		if i%2 == 0 {
			ss.SetAttributeAndModes(blend, glstate.On)
		}
		if i%3 == 0 {
			ss.SetTextureAttributeAndModes(i%4, attrib.NewTexture2D(uint32(i+1)), glstate.On)
		}
		if i%5 == 0 {
			ss.SetAttributeAndModes(fog, glstate.On)
			ss.SetDefine("USE_FOG", "", glstate.On)
		}
		if i%8 == 7 {
			ss.SetAttributeAndModes(attrib.NewPolygonOffset(1, 1), glstate.On|glstate.Override)
		}
		ss.AddUniform(glstate.NewFloatUniform("alpha", float32(i%4)/4), glstate.On)
		sc.leaves = append(sc.leaves, ss)
	}
	return sc
}

// draw traverses the scene once.
func (sc *scene) draw(s *glstate.State, frame int) {
	s.PushStateSet(sc.root)
	for i, leaf := range sc.leaves {
		s.PushStateSet(leaf)
		s.Apply()
		mv := mgl32.Translate3D(float32(i), float32(frame%16), -10)
		s.ApplyModelViewMatrix(&mv)
		s.PopStateSet()
	}
	s.PopStateSet()
	s.Apply()
	s.FrameCompleted()
}

type benchResult struct {
	Frames  int
	Sets    int
	Elapsed time.Duration
	Stats   glstate.Stats
}

// benchmark draws frames of a scene with sets leaves on a fresh context
// configured from p, and returns the context's counters.
func benchmark(d glstate.Driver, p *config.Profile, frames, sets int, collector *metrics.Collector) (benchResult, error) {
	opts := p.Options()
	if p.ShaderComposition {
		opts = append(opts, glstate.WithShaderComposer(shadercomp.New(p.ComposerOptions()...)))
	}
	cs := glstate.NewContextSet(glstate.NewRegistry(p.RegistryOptions()...), opts...)
	ctx, err := cs.Context(0, d)
	if err != nil {
		return benchResult{}, err
	}
	defer cs.Close(0)
	if collector != nil {
		collector.Track(ctx.State)
	}

	proj := mgl32.Perspective(mgl32.DegToRad(60), 4.0/3.0, 0.1, 1000)
	ctx.State.ApplyProjectionMatrix(&proj)

	sc := buildScene(sets, p.ShaderComposition)
	start := time.Now()
	for f := range frames {
		sc.draw(ctx.State, f)
	}
	return benchResult{
		Frames:  frames,
		Sets:    sets,
		Elapsed: time.Since(start),
		Stats:   ctx.State.Stats(),
	}, nil
}

func runBench(cmd *cobra.Command, _ []string) error {
	if benchFrames <= 0 || benchSets <= 0 {
		return fmt.Errorf("frames and sets must be positive")
	}
	p, err := loadProfile()
	if err != nil {
		return err
	}
	d, closeDriver, err := backend.Open(driverName)
	if err != nil {
		return err
	}
	defer closeDriver()

	var (
		collector *metrics.Collector
		reg       *prometheus.Registry
	)
	if benchMetrics {
		collector = metrics.NewCollector("")
		reg = prometheus.NewRegistry()
		reg.MustRegister(collector)
	}

	res, err := benchmark(d, p, benchFrames, benchSets, collector)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if err := writeBenchResult(out, res); err != nil {
		return err
	}
	if reg == nil {
		return nil
	}
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
			return err
		}
	}
	return nil
}

func writeBenchResult(out io.Writer, r benchResult) error {
	draws := uint64(r.Frames * r.Sets)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "frames\t%d\t\n", r.Frames)
	fmt.Fprintf(w, "draws\t%d\t\n", draws)
	fmt.Fprintf(w, "elapsed\t%s\t\n", r.Elapsed.Round(time.Microsecond))
	fmt.Fprintf(w, "applies\t%d\t\n", r.Stats.Applies)
	fmt.Fprintf(w, "mode calls\t%d\t\n", r.Stats.ModeCalls)
	fmt.Fprintf(w, "mode skips\t%d\t\n", r.Stats.ModeSkips)
	fmt.Fprintf(w, "attribute calls\t%d\t\n", r.Stats.AttributeCalls)
	fmt.Fprintf(w, "attribute skips\t%d\t\n", r.Stats.AttributeSkips)
	fmt.Fprintf(w, "uniform calls\t%d\t\n", r.Stats.UniformCalls)
	fmt.Fprintf(w, "texture unit switches\t%d\t\n", r.Stats.TextureUnitSwitches)
	fmt.Fprintf(w, "program switches\t%d\t\n", r.Stats.ProgramSwitches)
	fmt.Fprintf(w, "GL errors\t%d\t\n", r.Stats.GLErrors)
	if draws > 0 {
		fmt.Fprintf(w, "GL calls per draw\t%.2f\t\n",
			float64(r.Stats.ModeCalls+r.Stats.AttributeCalls+r.Stats.UniformCalls)/float64(draws))
	}
	return w.Flush()
}
