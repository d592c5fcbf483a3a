package clamp

import (
	"errors"
	"fmt"

	"bennypowers.dev/clampwind/internal/cssast"
	"bennypowers.dev/clampwind/internal/log"
)

// Options seeds a Processor
type Options struct {
	// RootFontSize in px, used until the stylesheet declares one
	RootFontSize float64
	// Spacing unit in rem, used until the stylesheet declares one
	Spacing float64
	// Breakpoints are viewport breakpoints overlaid on the built-in ones
	Breakpoints map[string]string
	// ContainerBreakpoints are container breakpoints overlaid on the built-in
	// ones; names may be given with or without the leading @
	ContainerBreakpoints map[string]string
	// Precision is the number of decimals in generated numbers; zero rounds
	// to whole numbers
	Precision int
}

// DefaultOptions returns options with the built-in sizing and precision
func DefaultOptions() Options {
	return Options{
		RootFontSize: DefaultRootFontSize,
		Spacing:      DefaultSpacing,
		Precision:    DefaultPrecision,
	}
}

// Processor expands clamp placeholders in stylesheets
type Processor struct {
	opts Options
}

// Validate rejects negative sizing and precision. Zero sizing fields are
// valid and stand for the defaults.
func (o Options) Validate() error {
	var errs []error
	if o.RootFontSize < 0 {
		errs = append(errs, fmt.Errorf("root font size must not be negative, got %g", o.RootFontSize))
	}
	if o.Spacing < 0 {
		errs = append(errs, fmt.Errorf("spacing must not be negative, got %g", o.Spacing))
	}
	if o.Precision < 0 {
		errs = append(errs, fmt.Errorf("precision must not be negative, got %d", o.Precision))
	}
	return errors.Join(errs...)
}

// New creates a Processor. Sizing fields that are zero or negative fall back
// to the defaults, as does a negative precision; see Validate.
func New(opts Options) *Processor {
	if opts.RootFontSize <= 0 {
		opts.RootFontSize = DefaultRootFontSize
	}
	if opts.Spacing <= 0 {
		opts.Spacing = DefaultSpacing
	}
	if opts.Precision < 0 {
		opts.Precision = DefaultPrecision
	}
	return &Processor{opts: opts}
}

// Process rewrites root in place. Every call starts from the configured
// options; nothing learned from one stylesheet carries over to the next.
func (p *Processor) Process(root *cssast.Root) *Report {
	col, q := scan(root, p.opts)

	// Phase 2: finalize breakpoints, then rewrite
	viewport, containers := col.finalize()
	log.Debug("Viewport breakpoints: %s", viewport)
	log.Debug("Container breakpoints: %s", containers)
	log.Debug("Root font size %gpx, spacing %grem, %d placeholder groups", col.sizing.RootFontSize, col.sizing.Spacing, q.len())

	report := &Report{
		Breakpoints:          viewport,
		ContainerBreakpoints: containers,
		Sizing:               col.sizing,
	}
	w := &rewriter{
		synth: Synthesizer{
			Sizing:    col.sizing,
			Props:     col.props,
			Precision: p.opts.Precision,
		},
		viewport:   viewport,
		containers: containers,
		report:     report,
	}
	for _, queue := range q.ordered() {
		for _, pending := range queue {
			w.apply(pending)
		}
	}
	return report
}

// scan is the first phase: it collects sizing and breakpoint declarations
// and queues placeholders without mutating the tree
func scan(root *cssast.Root, opts Options) (*collector, *queues) {
	col := newCollector(root, opts)
	q := &queues{}

	cssast.Walk(root, func(n cssast.Node) bool {
		switch n := n.(type) {
		case *cssast.Rule:
			if isRootSelector(n.Selector) {
				col.collectRoot(n)
				return true
			}
			q.scanRule(n)
		case *cssast.AtRule:
			switch n.Name {
			case "layer":
				col.collectLayer(n)
			case mediaName, containerName:
				q.scanQuery(n)
			}
		}
		return true
	})
	return col, q
}
