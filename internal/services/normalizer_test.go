package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	n := NewTextNormalizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercase and collapse whitespace",
			input: "  Python   Data\tAnalysis\n",
			want:  "python data analysis",
		},
		{
			name:  "punctuation becomes separators",
			input: "Python, SQL; Excel!",
			want:  "python sql excel",
		},
		{
			name:  "tech tokens survive",
			input: "C++ and C# developer",
			want:  "c++ and c# developer",
		},
		{
			name:  "empty input maps to sentinel",
			input: "",
			want:  "",
		},
		{
			name:  "blank input maps to sentinel",
			input: "   \t\n ",
			want:  "",
		},
		{
			name:  "punctuation only maps to sentinel",
			input: "...,!?",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.input))
		})
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	n := NewTextNormalizer()

	input := "Screen Reader  compatible, Remote!"
	first := n.Normalize(input)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, n.Normalize(input))
	}
}
