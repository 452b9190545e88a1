package renderer

import (
	"fmt"
	"image/color"

	"github.com/catyyy/hp-catyyy/config"
)

// Style holds the resolved colours and sizes for one engine variant.
type Style struct {
	Background color.NRGBA

	LineColor color.NRGBA
	LineWidth float64

	PointColor  color.NRGBA
	PointRadius float64
	PointAlpha  float64
	HaloRadius  float64 // 0 = no halo
	HaloAlpha   float64
}

// StyleFromConfig resolves a variant's colours.
func StyleFromConfig(v config.VariantConfig) (Style, error) {
	bg, err := ParseHex(v.Background)
	if err != nil {
		return Style{}, fmt.Errorf("background: %w", err)
	}
	line, err := ParseHex(v.Graph.Color)
	if err != nil {
		return Style{}, fmt.Errorf("graph color: %w", err)
	}
	point, err := ParseHex(v.Points.Color)
	if err != nil {
		return Style{}, fmt.Errorf("points color: %w", err)
	}
	return Style{
		Background:  bg,
		LineColor:   line,
		LineWidth:   v.Graph.LineWidth,
		PointColor:  point,
		PointRadius: v.Points.Radius,
		PointAlpha:  v.Points.Opacity,
		HaloRadius:  v.Points.HaloRadius,
		HaloAlpha:   v.Points.HaloOpacity,
	}, nil
}
