package clamp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePlaceholder(t *testing.T) {
	tests := []struct {
		value string
		want  Placeholder
		ok    bool
	}{
		{value: "clamp(1rem, 3rem)", want: Placeholder{Lower: "1rem", Upper: "3rem"}, ok: true},
		{value: "clamp(16px,48px)", want: Placeholder{Lower: "16px", Upper: "48px"}, ok: true},
		{value: "  clamp( 4 , 8 )  ", want: Placeholder{Lower: "4", Upper: "8"}, ok: true},
		{value: "clamp(var(--a), --b)", want: Placeholder{Lower: "var(--a)", Upper: "--b"}, ok: true},
		{value: "CLAMP(1rem, 2rem)", want: Placeholder{Lower: "1rem", Upper: "2rem"}, ok: true},
		{value: "clamp(1foo, 2rem)", want: Placeholder{Lower: "1foo", Upper: "2rem"}, ok: true},
		{value: "clamp(1rem, 2vw, 3rem)"},
		{value: "clamp(1rem)"},
		{value: "clamp(, 2rem)"},
		{value: "clamp(1rem, calc(2rem + 1vw))"},
		{value: "clamp(1rem) + clamp(2rem)"},
		{value: "clamp(1rem, 3rem) /* Invalid clamp() values */"},
		{value: "min(1rem, 2rem)"},
		{value: "1rem"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, ok := ParsePlaceholder(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
