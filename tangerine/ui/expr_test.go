package ui

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpression(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"42", 42},
		{" 1.5 ", 1.5},
		{"1,5", 1.5},
		{"-3", -3},
		{"2*(3+4)", 14},
		{"10/4", 2.5},
		{"7 % 3", 1},
		{"pi", math.Pi},
		{"cos(0) * 10", 10},
		{"max(2, 5) - min(2, 5)", 3},
		{"rad(180)", math.Pi},
		{".5e1", 5},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseExpression(tt.text)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseExpressionErrors(t *testing.T) {
	for _, text := range []string{"", "1+", "foo", "bar(1)", "1/0", "\"s\"", "sqrt(1, 2)", "x.y", "sqrt(-1)"} {
		t.Run(text, func(t *testing.T) {
			_, err := ParseExpression(text)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSyntax), "error %v should wrap ErrSyntax", err)
		})
	}
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "1.5", FormatFloat(1.5))
	assert.Equal(t, "2", FormatFloat(2))
	assert.Equal(t, "0.333", FormatFloat(1.0/3))
	assert.Equal(t, "0", FormatFloat(-0.0001))
}
