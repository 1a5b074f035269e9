package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointToSegmentDistance(t *testing.T) {
	tests := []struct {
		name                   string
		px, py, ax, ay, bx, by float64
		want                   float64
	}{
		{"point on segment", 5, 0, 0, 0, 10, 0, 0},
		{"perpendicular above middle", 5, 3, 0, 0, 10, 0, 3},
		{"beyond end clamps to B", 13, 4, 0, 0, 10, 0, 5},
		{"before start clamps to A", -3, -4, 0, 0, 10, 0, 5},
		{"degenerate segment", 3, 4, 0, 0, 0, 0, 5},
		{"diagonal segment", 0, 10, 0, 0, 10, 10, math.Sqrt(50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PointToSegmentDistance(tt.px, tt.py, tt.ax, tt.ay, tt.bx, tt.by)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

// 零长度线段不能出现除零
func TestPointToSegmentDistanceDegenerateIsFinite(t *testing.T) {
	d := PointToSegmentDistance(1, 1, 1, 1, 1, 1)
	assert.False(t, math.IsNaN(d))
	assert.Equal(t, 0.0, d)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 1))
	assert.Equal(t, 1.0, Clamp(2, 0, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#ff9800")
	assert.NoError(t, err)
	assert.Equal(t, uint8(0xff), c.R)
	assert.Equal(t, uint8(0x98), c.G)
	assert.Equal(t, uint8(0x00), c.B)
	assert.Equal(t, uint8(255), c.A)

	short, err := ParseHexColor("#0ff")
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x00), short.R)
	assert.Equal(t, uint8(0xff), short.G)

	_, err = ParseHexColor("cyan")
	assert.Error(t, err)
}
