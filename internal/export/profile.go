package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/rodfield/internal/field"
)

// ProfileToSVG plots magnitude against distance as a single path.
func ProfileToSVG(samples []field.Sample, width, height int, strokeColor string) string {
	if len(samples) < 2 {
		return ""
	}

	minX, maxX := samples[0].Distance, samples[0].Distance
	minY, maxY := samples[0].Magnitude, samples[0].Magnitude
	for _, s := range samples {
		minX = min(minX, s.Distance)
		maxX = max(maxX, s.Distance)
		minY = min(minY, s.Magnitude)
		maxY = max(maxY, s.Magnitude)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, s := range samples {
		x := (s.Distance - minX) / rangeX * float64(width)
		y := float64(height) - (s.Magnitude-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
