package tokens

import (
	"fmt"
	"maps"
	"strings"

	"bennypowers.dev/clampwind/internal/clamp"
	"bennypowers.dev/clampwind/internal/log"
)

const (
	breakpointPrefix = "breakpoint-"
	containerPrefix  = "container-"
)

// Breakpoints are the breakpoints declared by design tokens
type Breakpoints struct {
	// Viewport maps names like "md" to lengths
	Viewport map[string]string
	// Container maps names like "@card" to lengths
	Container map[string]string
}

// LoadBreakpoints reads every token file in paths, resolves aliases across
// all of them and collects the tokens named breakpoint-<name> and
// container-<name>. Later files win.
func LoadBreakpoints(paths []string) (*Breakpoints, error) {
	m := NewManager()
	for _, path := range paths {
		if err := m.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := m.Resolve(); err != nil {
		log.Warn("Failed to resolve token aliases: %v", err)
	}
	return m.Breakpoints(), nil
}

// Breakpoints extracts breakpoint tokens from a resolved manager. Tokens
// whose aliases are unresolved are skipped with a warning.
func (m *Manager) Breakpoints() *Breakpoints {
	b := &Breakpoints{
		Viewport:  map[string]string{},
		Container: map[string]string{},
	}
	for _, tok := range m.GetAll() {
		var target map[string]string
		var name string
		switch {
		case strings.HasPrefix(tok.Name, breakpointPrefix):
			target, name = b.Viewport, strings.TrimPrefix(tok.Name, breakpointPrefix)
		case strings.HasPrefix(tok.Name, containerPrefix):
			target, name = b.Container, clamp.ContainerPrefix+strings.TrimPrefix(tok.Name, containerPrefix)
		default:
			continue
		}
		if name == "" || name == clamp.ContainerPrefix {
			continue
		}

		value, err := m.Value(tok.Name)
		if err != nil {
			log.Warn("Skipping breakpoint token %s: %v", tok.Name, err)
			continue
		}
		target[name] = value
	}
	return b
}

// Len returns the number of breakpoints
func (b *Breakpoints) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Viewport) + len(b.Container)
}

// Overlay returns opts with the token breakpoints placed beneath the
// breakpoints opts already holds, so explicitly configured values win
func (b *Breakpoints) Overlay(opts clamp.Options) clamp.Options {
	if b.Len() == 0 {
		return opts
	}
	opts.Breakpoints = overlay(b.Viewport, opts.Breakpoints)
	opts.ContainerBreakpoints = overlay(b.Container, opts.ContainerBreakpoints)
	return opts
}

func overlay(base, top map[string]string) map[string]string {
	merged := maps.Clone(base)
	if merged == nil {
		merged = map[string]string{}
	}
	for name, value := range top {
		// configured container names may omit the prefix
		if _, ok := merged[clamp.ContainerPrefix+name]; ok && !strings.HasPrefix(name, clamp.ContainerPrefix) {
			delete(merged, clamp.ContainerPrefix+name)
		}
		merged[name] = value
	}
	return merged
}

func (b *Breakpoints) String() string {
	return fmt.Sprintf("%d viewport, %d container", len(b.Viewport), len(b.Container))
}
