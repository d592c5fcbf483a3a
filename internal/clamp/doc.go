// Package clamp expands two-argument clamp(lower, upper) placeholders into
// fluid CSS clamp() expressions.
//
// A Processor runs in two phases over one stylesheet. The first walks the
// tree without mutating it, collecting breakpoint, root font size, spacing
// and custom property declarations from :root rules and theme/default
// layers, and queueing every placeholder with the size-query context it
// was found in. The second merges and sorts the breakpoints, then drains the
// queues: each placeholder becomes
//
//	clamp(<min>rem, calc(<intercept>rem + <slope>vw), <max>rem)
//
// interpolating linearly between two breakpoints, and single-sided
// @media/@container queries are rebuilt around the result. Values that
// cannot be resolved are never dropped; they are annotated in place with a
// comment and reported as a Diagnostic.
package clamp
