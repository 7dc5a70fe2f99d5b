package render

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Palette holds every color the renderer paints with.
type Palette struct {
	Background  Color `yaml:"background"`
	Grid        Color `yaml:"grid"`
	Label       Color `yaml:"label"`
	Axis        Color `yaml:"axis"`
	Crosshair   Color `yaml:"crosshair"`
	Bullish     Color `yaml:"bullish"`
	Bearish     Color `yaml:"bearish"`
	Badge       Color `yaml:"badge"`
	BadgeText   Color `yaml:"badge_text"`
	Tooltip     Color `yaml:"tooltip"`
	TooltipText Color `yaml:"tooltip_text"`
	Timestamp   Color `yaml:"timestamp"`
}

// Metrics are the sizes and offsets of everything that is not a candle.
// Pixel and terminal surfaces need very different values.
type Metrics struct {
	GridBands int `yaml:"grid_bands"`

	LabelFont     Font `yaml:"label_font"`
	BadgeFont     Font `yaml:"badge_font"`
	TooltipFont   Font `yaml:"tooltip_font"`
	TimestampFont Font `yaml:"timestamp_font"`

	GridWidth      float64   `yaml:"grid_width"`
	WickWidth      float64   `yaml:"wick_width"`
	AxisWidth      float64   `yaml:"axis_width"`
	CrosshairWidth float64   `yaml:"crosshair_width"`
	CrosshairDash  []float64 `yaml:"crosshair_dash"`
	MinBodyHeight  float64   `yaml:"min_body_height"`

	// PriceLabelGap is the distance between a price label's right edge
	// and the left plot edge.
	PriceLabelGap float64 `yaml:"price_label_gap"`
	// TimeLabelOffset is the distance below the plot of the time labels'
	// vertical middle.
	TimeLabelOffset float64 `yaml:"time_label_offset"`

	BadgeWidth  float64 `yaml:"badge_width"`
	BadgeHeight float64 `yaml:"badge_height"`
	BadgeGap    float64 `yaml:"badge_gap"`
	BadgeInset  float64 `yaml:"badge_inset"`

	TooltipMargin float64 `yaml:"tooltip_margin"`
	TooltipWidth  float64 `yaml:"tooltip_width"`
	TooltipHeight float64 `yaml:"tooltip_height"`
	TooltipInset  float64 `yaml:"tooltip_inset"`
	TooltipColumn float64 `yaml:"tooltip_column"`
	TooltipRow1   float64 `yaml:"tooltip_row1"`
	TooltipRow2   float64 `yaml:"tooltip_row2"`
}

// Theme is a palette plus metrics.
type Theme struct {
	Palette Palette `yaml:"palette"`
	Metrics Metrics `yaml:"metrics"`
}

func darkPalette() Palette {
	return Palette{
		Background:  "#0a0a0a",
		Grid:        "#1f1f1f",
		Label:       "#94a3b8",
		Axis:        "#334155",
		Crosshair:   "#64748b",
		Bullish:     "#26a69a",
		Bearish:     "#ef5350",
		Badge:       "#1e293b",
		BadgeText:   "#e2e8f0",
		Tooltip:     "#0f172a",
		TooltipText: "#94a3b8",
		Timestamp:   "#64748b",
	}
}

// DefaultTheme is the dark theme sized for pixel surfaces.
func DefaultTheme() Theme {
	return Theme{
		Palette: darkPalette(),
		Metrics: Metrics{
			GridBands:       8,
			LabelFont:       Font{Size: 13},
			BadgeFont:       Font{Size: 13, Bold: true},
			TooltipFont:     Font{Size: 15, Bold: true},
			TimestampFont:   Font{Size: 13},
			GridWidth:       1,
			WickWidth:       1.5,
			AxisWidth:       2,
			CrosshairWidth:  1,
			CrosshairDash:   []float64{6, 6},
			MinBodyHeight:   1,
			PriceLabelGap:   12,
			TimeLabelOffset: 20,
			BadgeWidth:      80,
			BadgeHeight:     28,
			BadgeGap:        10,
			BadgeInset:      15,
			TooltipMargin:   15,
			TooltipWidth:    360,
			TooltipHeight:   56,
			TooltipInset:    15,
			TooltipColumn:   90,
			TooltipRow1:     18,
			TooltipRow2:     39,
		},
	}
}

// TerminalTheme is the dark theme sized in character cells.
func TerminalTheme() Theme {
	return Theme{
		Palette: darkPalette(),
		Metrics: Metrics{
			GridBands:       8,
			LabelFont:       Font{Size: 1},
			BadgeFont:       Font{Size: 1, Bold: true},
			TooltipFont:     Font{Size: 1, Bold: true},
			TimestampFont:   Font{Size: 1},
			GridWidth:       1,
			WickWidth:       1,
			AxisWidth:       1,
			CrosshairWidth:  1,
			CrosshairDash:   []float64{1, 1},
			MinBodyHeight:   1,
			PriceLabelGap:   2,
			TimeLabelOffset: 1,
			BadgeWidth:      10,
			BadgeHeight:     1,
			BadgeGap:        1,
			BadgeInset:      2,
			TooltipMargin:   1,
			TooltipWidth:    56,
			TooltipHeight:   2,
			TooltipInset:    1,
			TooltipColumn:   14,
			TooltipRow1:     0,
			TooltipRow2:     1,
		},
	}
}

// LoadTheme overlays the YAML file at path on base. Fields missing from the
// file keep their base values.
func LoadTheme(path string, base Theme) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read theme: %w", err)
	}
	th := base
	if err := yaml.Unmarshal(data, &th); err != nil {
		return base, fmt.Errorf("parse theme: %w", err)
	}
	return th, nil
}
