package clamp

import (
	"strings"

	"bennypowers.dev/clampwind/internal/cssast"
	"bennypowers.dev/clampwind/internal/log"
	"bennypowers.dev/clampwind/internal/parser/css"
)

const (
	breakpointPrefix = "--breakpoint-"
	containerPrefix  = "--container-"
)

// origins holds one breakpoint kind as declared by each source, in
// ascending precedence
type origins struct {
	prior        map[string]string
	defaultLayer map[string]string
	rootElement  map[string]string
	themeLayer   map[string]string
}

func newOrigins(prior map[string]string) *origins {
	return &origins{
		prior:        prior,
		defaultLayer: map[string]string{},
		rootElement:  map[string]string{},
		themeLayer:   map[string]string{},
	}
}

func (o *origins) merged() map[string]string {
	return mergeBreakpoints(o.prior, o.defaultLayer, o.rootElement, o.themeLayer)
}

type origin int

const (
	fromDefaultLayer origin = iota
	fromRootElement
	fromThemeLayer
)

func (o *origins) target(from origin) map[string]string {
	switch from {
	case fromDefaultLayer:
		return o.defaultLayer
	case fromRootElement:
		return o.rootElement
	default:
		return o.themeLayer
	}
}

// collector gathers breakpoint, sizing and custom property declarations
// during the first phase
type collector struct {
	root       *cssast.Root
	sizing     BaseSizing
	props      CustomProperties
	viewport   *origins
	containers *origins
}

func newCollector(root *cssast.Root, opts Options) *collector {
	return &collector{
		root:       root,
		sizing:     BaseSizing{RootFontSize: opts.RootFontSize, Spacing: opts.Spacing},
		props:      CustomProperties{},
		viewport:   newOrigins(mergeBreakpoints(DefaultBreakpoints(), opts.Breakpoints)),
		containers: newOrigins(mergeBreakpoints(DefaultContainerBreakpoints(), prefixContainerNames(opts.ContainerBreakpoints))),
	}
}

// collectRoot records every declaration below a :root rule
func (c *collector) collectRoot(rule *cssast.Rule) {
	cssast.WalkDecls(rule, func(d *cssast.Declaration) {
		c.collectDeclaration(d.Prop, d.Value, fromRootElement)
	})
}

// collectLayer handles `@layer theme` and `@layer default`
func (c *collector) collectLayer(at *cssast.AtRule) {
	switch strings.TrimSpace(at.Params) {
	case "theme":
		cssast.WalkDecls(at, func(d *cssast.Declaration) {
			c.collectDeclaration(d.Prop, d.Value, fromThemeLayer)
		})
	case "default":
		c.collectDefaultLayer(at)
	}
}

// collectDefaultLayer records default-layer breakpoints once per kind. The
// declarations are read from the tree; when the tree holds none, the
// layer's raw source text is scanned instead.
func (c *collector) collectDefaultLayer(at *cssast.AtRule) {
	wantViewport := len(c.viewport.defaultLayer) == 0
	wantContainers := len(c.containers.defaultLayer) == 0
	if !wantViewport && !wantContainers {
		return
	}

	found := false
	record := func(prop, value string) {
		switch {
		case wantViewport && strings.HasPrefix(prop, breakpointPrefix):
			c.recordBreakpoint(c.viewport, prop, breakpointPrefix, "", value, fromDefaultLayer)
			found = true
		case wantContainers && strings.HasPrefix(prop, containerPrefix):
			c.recordBreakpoint(c.containers, prop, containerPrefix, ContainerPrefix, value, fromDefaultLayer)
			found = true
		}
	}

	cssast.WalkDecls(at, func(d *cssast.Declaration) {
		record(d.Prop, d.Value)
	})
	if found {
		return
	}

	text := c.root.SourceText(at)
	if text == "" {
		return
	}
	result, err := css.ExtractVariables(text)
	if err != nil {
		log.Debug("Could not scan default layer source: %v", err)
		return
	}
	for _, v := range result.Variables {
		record(v.Name, v.Value)
	}
}

func (c *collector) collectDeclaration(prop, value string, from origin) {
	switch {
	case strings.HasPrefix(prop, breakpointPrefix):
		c.recordBreakpoint(c.viewport, prop, breakpointPrefix, "", value, from)
	case strings.HasPrefix(prop, containerPrefix):
		c.recordBreakpoint(c.containers, prop, containerPrefix, ContainerPrefix, value, from)
	}

	switch prop {
	case "--text-base", "font-size":
		if strings.Contains(value, "px") {
			if size, ok := parseLeadingFloat(value); ok && size > 0 {
				c.sizing.RootFontSize = size
			}
		}
	case "--spacing":
		// spacing may be written in px against the current root font size,
		// but never in terms of itself
		if spacing, ok := Normalize(value, c.sizing, c.props); ok {
			c.sizing.Spacing = spacing
		}
	}

	if strings.HasPrefix(prop, "--") {
		if v, ok := Normalize(value, c.sizing, c.props); ok && v != 0 {
			c.props[prop] = v
		}
	}
}

func (c *collector) recordBreakpoint(o *origins, prop, prefix, namePrefix, value string, from origin) {
	name := strings.TrimPrefix(prop, prefix)
	if name == "" {
		return
	}
	o.target(from)[namePrefix+name] = value
}

// finalize merges every origin and converts the result into sorted sets
func (c *collector) finalize() (viewport, containers BreakpointSet) {
	viewport = convertBreakpoints(c.viewport.merged(), c.sizing, c.props)
	if len(viewport) == 0 {
		viewport = convertBreakpoints(DefaultBreakpoints(), DefaultSizing(), nil)
	}
	containers = convertBreakpoints(c.containers.merged(), c.sizing, c.props)
	if len(containers) == 0 {
		containers = convertBreakpoints(DefaultContainerBreakpoints(), DefaultSizing(), nil)
	}
	return viewport, containers
}

func prefixContainerNames(raw map[string]string) map[string]string {
	out := make(map[string]string, len(raw))
	for name, value := range raw {
		if !strings.HasPrefix(name, ContainerPrefix) {
			name = ContainerPrefix + name
		}
		out[name] = value
	}
	return out
}
