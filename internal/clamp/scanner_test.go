package clamp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/clampwind/internal/cssast"
)

func TestScanClassifiesPlaceholders(t *testing.T) {
	root := mustParse(t, `
.plain {
  font-size: clamp(1rem, 2rem);
  color: red;
}
@media (width >= 40rem) {
  .a { padding: 1rem; }
  margin: clamp(1rem, 2rem);
}
@media (width < 48rem) {
  gap: clamp(1rem, 2rem);
}
@container card (width > 20rem) {
  gap: clamp(4, 8);
}
@media (width >= 40rem) {
  @media (width < 80rem) {
    width: clamp(1rem, 3rem);
  }
}
@container (width >= 20rem) {
  @container (width < 40rem) {
    width: clamp(1rem, 3rem);
  }
}
@container (width >= 20rem) {
  @media (width < 40rem) {
    width: clamp(1rem, 3rem);
  }
}
@media print {
  width: clamp(1rem, 3rem);
}
`)
	_, q := scan(root, DefaultOptions())

	require.Len(t, q.noQuery, 1)
	assert.Equal(t, ".plain", q.noQuery[0].Context.(NoQuery).Rule.Selector)
	assert.Len(t, q.noQuery[0].Decls, 1)

	require.Len(t, q.singleMedia, 2)
	assert.Equal(t, GreaterEqual, q.singleMedia[0].Context.(SingleBound).Relation)
	assert.Equal(t, "40rem", q.singleMedia[0].Context.(SingleBound).Threshold)
	assert.Equal(t, LessThan, q.singleMedia[1].Context.(SingleBound).Relation)
	assert.Equal(t, "48rem", q.singleMedia[1].Context.(SingleBound).Threshold)

	require.Len(t, q.singleContainer, 1)
	single := q.singleContainer[0].Context.(SingleBound)
	assert.True(t, single.Container())
	assert.Equal(t, "20rem", single.Threshold)

	require.Len(t, q.nestedMedia, 1)
	double := q.nestedMedia[0].Context.(DoubleBound)
	assert.Equal(t, "40rem", double.Lower)
	assert.Equal(t, "80rem", double.Upper)
	assert.False(t, double.Container())

	require.Len(t, q.nestedContainer, 1)
	assert.True(t, q.nestedContainer[0].Context.(DoubleBound).Container())

	require.Len(t, q.invalidNesting, 1)
	assert.Equal(t, "media", q.invalidNesting[0].Context.(InvalidNesting).AtRule.Name)

	// the outer rules of the nested pairs hold no placeholders, and @media
	// print has no width comparison
	assert.Equal(t, 7, q.len())
}

func TestScanSkipsRuleWithMediaChild(t *testing.T) {
	root := mustParse(t, `
.card {
  width: clamp(1rem, 2rem);
  @media (width >= 40rem) {
    height: clamp(1rem, 2rem);
  }
}
`)
	_, q := scan(root, DefaultOptions())

	assert.Empty(t, q.noQuery)
	require.Len(t, q.singleMedia, 1)
	assert.Equal(t, "height", q.singleMedia[0].Decls[0].Prop)
}

func TestScanDoesNotMutate(t *testing.T) {
	source := `.a { width: clamp(1rem, 2rem); }
@media (width >= 40rem) { gap: clamp(1rem, 2rem); }
`
	root := mustParse(t, source)
	before := cssast.Stringify(root)

	scan(root, DefaultOptions())

	assert.Equal(t, before, cssast.Stringify(root))
}

func TestScanRootRulesAreNotQueued(t *testing.T) {
	root := mustParse(t, `:root, :host { --size: clamp(1rem, 2rem); }`)
	_, q := scan(root, DefaultOptions())

	assert.Zero(t, q.len())
}

func TestParseRelation(t *testing.T) {
	tests := []struct {
		params    string
		relation  Relation
		threshold string
	}{
		{params: "(width >= 40rem)", relation: GreaterEqual, threshold: "40rem"},
		{params: "(width > 640px)", relation: GreaterEqual, threshold: "640px"},
		{params: "(width < 48rem)", relation: LessThan, threshold: "48rem"},
		{params: "(width <= 30rem)", relation: LessThan, threshold: "30rem"},
		{params: "card (width >= 20rem)", relation: GreaterEqual, threshold: "20rem"},
		{params: "(40rem < width)", relation: LessThan, threshold: "width"},
		{params: "screen and (min-width: 40rem)", relation: NoRelation},
		{params: "print", relation: NoRelation},
	}

	for _, tt := range tests {
		t.Run(tt.params, func(t *testing.T) {
			relation, threshold := parseRelation(tt.params)
			assert.Equal(t, tt.relation, relation)
			assert.Equal(t, tt.threshold, threshold)
		})
	}
}

func TestNestedBounds(t *testing.T) {
	lower, upper := nestedBounds("(width < 80rem)", "(width >= 40rem)")
	assert.Equal(t, "40rem", lower)
	assert.Equal(t, "80rem", upper)

	lower, upper = nestedBounds("(width >= 40rem)", "(width >= 60rem)")
	assert.Equal(t, "40rem", lower)
	assert.Empty(t, upper)
}

func TestQueryContainerName(t *testing.T) {
	assert.Equal(t, "card", queryContainerName("card (width >= 20rem)"))
	assert.Equal(t, "", queryContainerName("(width >= 20rem)"))
}

func TestIsRootSelector(t *testing.T) {
	assert.True(t, isRootSelector(":root"))
	assert.True(t, isRootSelector(":root, :host"))
	assert.False(t, isRootSelector(":root .a"))
	assert.False(t, isRootSelector("html"))
}
