package css_test

import (
	"testing"

	"bennypowers.dev/clampwind/internal/cssast"
	"bennypowers.dev/clampwind/internal/parser/css"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRulesAndDeclarations(t *testing.T) {
	root, err := css.Parse(`.card {
  color: red;
  padding: 1rem 2rem !important;
}`)
	require.NoError(t, err)
	require.Len(t, root.Nodes(), 1)

	rule, ok := root.Nodes()[0].(*cssast.Rule)
	require.True(t, ok, "first node should be a rule")
	assert.Equal(t, ".card", rule.Selector)
	assert.Same(t, root, rule.Parent())

	decls := cssast.Declarations(rule)
	require.Len(t, decls, 2)
	assert.Equal(t, "color", decls[0].Prop)
	assert.Equal(t, "red", decls[0].Value)
	assert.False(t, decls[0].Important)
	assert.Equal(t, "padding", decls[1].Prop)
	assert.Equal(t, "1rem 2rem", decls[1].Value)
	assert.True(t, decls[1].Important)

	assert.Equal(t, 2, decls[0].Source().Start.Line)
	assert.Equal(t, 3, decls[0].Source().Start.Column)
}

func TestParseAtRules(t *testing.T) {
	t.Run("nested media inside a rule", func(t *testing.T) {
		root, err := css.Parse(`.title { @media (width   >= 40rem) { font-size: clamp(1rem, 2rem); } }`)
		require.NoError(t, err)

		rule := root.Nodes()[0].(*cssast.Rule)
		require.Len(t, rule.Nodes(), 1)
		media, ok := rule.Nodes()[0].(*cssast.AtRule)
		require.True(t, ok)
		assert.Equal(t, "media", media.Name)
		assert.Equal(t, "(width >= 40rem)", media.Params, "params whitespace is collapsed")
		assert.True(t, media.Block)

		decls := cssast.Declarations(media)
		require.Len(t, decls, 1)
		assert.Equal(t, "clamp(1rem, 2rem)", decls[0].Value)
	})

	t.Run("statement at-rule", func(t *testing.T) {
		root, err := css.Parse(`@layer theme, base; @import "a;b.css";`)
		require.NoError(t, err)
		require.Len(t, root.Nodes(), 2)

		layer := root.Nodes()[0].(*cssast.AtRule)
		assert.Equal(t, "layer", layer.Name)
		assert.Equal(t, "theme, base", layer.Params)
		assert.False(t, layer.Block)

		imp := root.Nodes()[1].(*cssast.AtRule)
		assert.Equal(t, `"a;b.css"`, imp.Params, "semicolons inside strings do not end the statement")
	})

	t.Run("source text of a layer", func(t *testing.T) {
		src := `a{} @layer default { :root { --breakpoint-sm: 40rem; } }`
		root, err := css.Parse(src)
		require.NoError(t, err)
		layer := root.Nodes()[1].(*cssast.AtRule)
		assert.Equal(t, `@layer default { :root { --breakpoint-sm: 40rem; } }`, root.SourceText(layer))
	})
}

func TestParseComments(t *testing.T) {
	root, err := css.Parse(`/* header */
a { /* inside */ color: blue; background: url("x;y.png"); }`)
	require.NoError(t, err)
	require.Len(t, root.Nodes(), 2)

	comment, ok := root.Nodes()[0].(*cssast.Comment)
	require.True(t, ok)
	assert.Equal(t, " header ", comment.Text)

	rule := root.Nodes()[1].(*cssast.Rule)
	require.Len(t, rule.Nodes(), 3)
	assert.Equal(t, cssast.CommentKind, rule.Nodes()[0].Kind())
	decls := cssast.Declarations(rule)
	assert.Equal(t, `url("x;y.png")`, decls[1].Value)
}

func TestParseDeclarationWithoutSemicolon(t *testing.T) {
	root, err := css.Parse(`a { color: red }`)
	require.NoError(t, err)
	decls := cssast.Declarations(root.Nodes()[0].(*cssast.Rule))
	require.Len(t, decls, 1)
	assert.Equal(t, "red", decls[0].Value)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		css     string
		message string
	}{
		{name: "unclosed block", css: "a { color: red;", message: `unclosed block "a"`},
		{name: "stray brace", css: "a {} }", message: "unexpected }"},
		{name: "missing colon", css: "a { color red; }", message: `invalid declaration "color red"`},
		{name: "unterminated comment", css: "a {} /* oops", message: "unterminated comment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := css.Parse(tt.css)
			require.Error(t, err)
			require.NotNil(t, root, "the tree is returned even when there are errors")

			var list css.ErrorList
			require.ErrorAs(t, err, &list)
			assert.Contains(t, list[0].Message, tt.message)
		})
	}
}
