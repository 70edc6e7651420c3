// Package metrics exports the counters of glstate.State values to
// Prometheus.
//
//	c := metrics.NewCollector("")
//	c.Track(ctx.State)
//	prometheus.MustRegister(c)
package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gogpu/glstate"
)

type counter struct {
	desc  *prometheus.Desc
	value func(glstate.Stats) uint64
}

// Collector is a prometheus.Collector reporting the Stats of every
// tracked State, labeled by context ID.
type Collector struct {
	counters []counter

	mu     sync.Mutex
	states map[uint32]*glstate.State
}

// NewCollector returns a collector whose metric names start with
// namespace, "glstate" when empty.
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = "glstate"
	}
	newCounter := func(name, help string, value func(glstate.Stats) uint64) counter {
		return counter{
			desc:  prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, []string{"context"}, nil),
			value: value,
		}
	}
	return &Collector{
		states: make(map[uint32]*glstate.State),
		counters: []counter{
			newCounter("applies_total", "Apply and ApplyStateSet calls.",
				func(s glstate.Stats) uint64 { return s.Applies }),
			newCounter("mode_calls_total", "glEnable and glDisable calls issued.",
				func(s glstate.Stats) uint64 { return s.ModeCalls }),
			newCounter("mode_skips_total", "Mode applies elided by the cache.",
				func(s glstate.Stats) uint64 { return s.ModeSkips }),
			newCounter("attribute_calls_total", "Attribute applies issued.",
				func(s glstate.Stats) uint64 { return s.AttributeCalls }),
			newCounter("attribute_skips_total", "Attribute applies elided by the cache.",
				func(s glstate.Stats) uint64 { return s.AttributeSkips }),
			newCounter("uniform_calls_total", "Uniforms handed to programs.",
				func(s glstate.Stats) uint64 { return s.UniformCalls }),
			newCounter("texture_unit_switches_total", "glActiveTexture calls issued.",
				func(s glstate.Stats) uint64 { return s.TextureUnitSwitches }),
			newCounter("program_switches_total", "Changes of the bound program.",
				func(s glstate.Stats) uint64 { return s.ProgramSwitches }),
			newCounter("gl_errors_total", "GL errors reported by glGetError.",
				func(s glstate.Stats) uint64 { return s.GLErrors }),
		},
	}
}

// Track starts reporting s. A state with the same context ID replaces
// the previous one.
func (c *Collector) Track(s *glstate.State) {
	c.mu.Lock()
	c.states[s.ContextID()] = s
	c.mu.Unlock()
}

// Untrack stops reporting the state of a context.
func (c *Collector) Untrack(contextID uint32) {
	c.mu.Lock()
	delete(c.states, contextID)
	c.mu.Unlock()
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, m := range c.counters {
		ch <- m.desc
	}
}

// Collect implements prometheus.Collector. Stats are read atomically, so
// collection may run while the render thread applies state.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	stats := make(map[uint32]glstate.Stats, len(c.states))
	for id, s := range c.states {
		stats[id] = s.Stats()
	}
	c.mu.Unlock()

	for id, st := range stats {
		label := strconv.FormatUint(uint64(id), 10)
		for _, m := range c.counters {
			ch <- prometheus.MustNewConstMetric(m.desc, prometheus.CounterValue, float64(m.value(st)), label)
		}
	}
}
