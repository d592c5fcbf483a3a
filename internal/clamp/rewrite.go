package clamp

import (
	"bennypowers.dev/clampwind/internal/cssast"
)

// rewriter applies synthesized values to the tree during the second phase
type rewriter struct {
	synth      Synthesizer
	viewport   BreakpointSet
	containers BreakpointSet
	report     *Report
}

func (w *rewriter) apply(p Pending) {
	switch ctx := p.Context.(type) {
	case NoQuery:
		w.rewriteNoQuery(ctx, p.Decls)
	case SingleBound:
		w.rewriteSingle(ctx, p.Decls)
	case DoubleBound:
		w.rewriteDouble(ctx, p.Decls)
	case InvalidNesting:
		for _, d := range p.Decls {
			w.annotate(d, InvalidNestingComment, MixedNesting)
		}
	}
}

// rewriteNoQuery appends the fluid declaration to the rule and drops the placeholder
func (w *rewriter) rewriteNoQuery(ctx NoQuery, decls []*cssast.Declaration) {
	for _, d := range decls {
		ph, ok := ParsePlaceholder(d.Value)
		if !ok {
			continue
		}
		value, ok := w.synth.Synthesize(ph.Lower, ph.Upper, w.viewport.Min().Length(), w.viewport.Max().Length(), false)
		if !ok {
			w.annotate(d, InvalidValuesComment, UnresolvedValues)
			continue
		}
		ctx.Rule.Append(replacement(d, value))
		d.Remove()
		w.expanded()
	}
}

// rewriteSingle moves the expanded declarations into a new at-rule placed
// before the original one, which is removed once nothing is left in it
func (w *rewriter) rewriteSingle(ctx SingleBound, decls []*cssast.Declaration) {
	set := w.viewport
	if ctx.Container() {
		set = w.containers
	}

	var minBound, maxBound, params string
	switch ctx.Relation {
	case GreaterEqual:
		minBound, maxBound = ctx.Threshold, set.Max().Length()
		params = "(width >= " + ctx.Threshold + ")"
		if name := queryContainerName(ctx.AtRule.Params); ctx.Container() && name != "" {
			params = name + " " + params
		}
	case LessThan:
		minBound, maxBound = set.Min().Length(), ctx.Threshold
		params = ctx.AtRule.Params
	default:
		return
	}

	parent := ctx.AtRule.Parent()
	var generated *cssast.AtRule
	for _, d := range decls {
		ph, ok := ParsePlaceholder(d.Value)
		if !ok {
			continue
		}
		value, ok := w.synth.Synthesize(ph.Lower, ph.Upper, minBound, maxBound, ctx.Container())
		if !ok {
			w.annotate(d, InvalidValuesComment, UnresolvedValues)
			continue
		}
		if generated == nil {
			generated = cssast.NewAtRule(ctx.AtRule.Name, params)
			if parent == nil || !parent.InsertBefore(ctx.AtRule, generated) {
				return
			}
		}
		generated.Append(replacement(d, value))
		d.Remove()
		w.expanded()
	}

	if generated != nil && len(ctx.AtRule.Nodes()) == 0 {
		ctx.AtRule.Remove()
	}
}

// rewriteDouble replaces values in place; the nesting stays as authored
func (w *rewriter) rewriteDouble(ctx DoubleBound, decls []*cssast.Declaration) {
	for _, d := range decls {
		if ctx.Lower == "" || ctx.Upper == "" {
			w.annotate(d, InvalidValuesComment, MissingBound)
			continue
		}
		ph, ok := ParsePlaceholder(d.Value)
		if !ok {
			continue
		}
		value, ok := w.synth.Synthesize(ph.Lower, ph.Upper, ctx.Lower, ctx.Upper, ctx.Container())
		if !ok {
			w.annotate(d, InvalidValuesComment, UnresolvedValues)
			continue
		}
		d.Value = value
		w.expanded()
	}
}

func (w *rewriter) annotate(d *cssast.Declaration, comment string, kind DiagnosticKind) {
	src := d.Source()
	w.report.Diagnostics = append(w.report.Diagnostics, Diagnostic{
		Kind:     kind,
		Property: d.Prop,
		Value:    d.Value,
		Line:     src.Start.Line,
		Column:   src.Start.Column,
	})
	d.Value = d.Value + " " + comment
	w.report.Changed = true
}

func (w *rewriter) expanded() {
	w.report.Expanded++
	w.report.Changed = true
}

func replacement(d *cssast.Declaration, value string) *cssast.Declaration {
	decl := cssast.NewDeclaration(d.Prop, value)
	decl.Important = d.Important
	return decl
}
