package fanout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreviewRays(t *testing.T) {
	tests := []struct {
		style Style
		angle float64
		want  []Vector
	}{
		{Angled, 0, []Vector{{X: 1, Y: 0}}},
		{Angled, 90, []Vector{{X: 0, Y: 1}}},
		{Diagonal, 45, []Vector{{X: -1, Y: -1}, {X: 1, Y: 1}}},
		{Quadrant, 0, []Vector{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: -1}}},
		{Quadrant, 90, []Vector{{X: 0, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: -1}, {X: 1, Y: 0}}},
		{SquareQuadrant, 0, []Vector{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}},
		{SquareQuadrant, 90, []Vector{{X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: -1}}},
	}
	for _, tt := range tests {
		got := PreviewRays(tt.style, tt.angle)
		if !assert.Len(t, got, len(tt.want), "%s %v", tt.style, tt.angle) {
			continue
		}
		for i := range got {
			assert.InDelta(t, tt.want[i].X, got[i].X, 1e-12, "%s %v ray %d", tt.style, tt.angle, i)
			assert.InDelta(t, tt.want[i].Y, got[i].Y, 1e-12, "%s %v ray %d", tt.style, tt.angle, i)
		}
	}

	assert.Nil(t, PreviewRays(Style(12), 0))
}
