package segment

import (
	"testing"

	"arcade_backend/internal/config/env"
	"arcade_backend/internal/model"
)

func TestWinProbAdjust(t *testing.T) {
	p := NewPolicy(env.DefaultGamesConfig().Segments())

	cases := []struct {
		seg  model.Segment
		want float64
	}{
		{model.SegmentLow, -0.02},
		{model.SegmentMedium, 0.0},
		{model.SegmentWhale, 0.02},
		{model.Segment("unknown"), 0.0},
	}

	for _, tc := range cases {
		if got := p.WinProbAdjust(tc.seg); got != tc.want {
			t.Errorf("WinProbAdjust(%q) = %v, want %v", tc.seg, got, tc.want)
		}
	}
}

func TestHouseEdge(t *testing.T) {
	p := NewPolicy(env.DefaultGamesConfig().Segments())

	cases := []struct {
		seg  model.Segment
		want float64
	}{
		{model.SegmentLow, 0.15},
		{model.SegmentMedium, 0.10},
		{model.SegmentWhale, 0.05},
		{model.Segment("unknown"), 0.10},
	}

	for _, tc := range cases {
		if got := p.HouseEdge(tc.seg); got != tc.want {
			t.Errorf("HouseEdge(%q) = %v, want %v", tc.seg, got, tc.want)
		}
	}
}
