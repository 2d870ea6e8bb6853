package barchart

// Margin is the space reserved around the plot area, in pixels.
type Margin struct {
	Top    float64 `mapstructure:"top" yaml:"top" json:"top"`
	Right  float64 `mapstructure:"right" yaml:"right" json:"right"`
	Bottom float64 `mapstructure:"bottom" yaml:"bottom" json:"bottom"`
	Left   float64 `mapstructure:"left" yaml:"left" json:"left"`
}

// Options controls chart geometry and styling. Zero-valued fields fall
// back to DefaultOptions, except Margin which is used as given.
type Options struct {
	Width  float64
	Height float64
	Margin Margin

	// Padding is the band padding between bars, as a fraction of the step.
	Padding float64
	// PixelsPerTick controls the requested x tick count: Width / PixelsPerTick.
	PixelsPerTick float64
	// GridOpacity is the stroke opacity of the gridlines.
	GridOpacity float64

	BarColor          string
	LabelColor        string // value label inside a bar
	OutsideLabelColor string // value label drawn past a short bar
	FontFamily        string
	FontSize          float64

	// LabelInset is the gap between a bar end and its value label.
	LabelInset float64
	// MinInsideWidth is the narrowest bar, in pixels, that holds its label.
	MinInsideWidth float64

	Caption string
	Style   string
}

// DefaultOptions returns the standard 600x300 layout.
func DefaultOptions() Options {
	return Options{
		Width:             600,
		Height:            300,
		Margin:            Margin{Top: 30, Right: 0, Bottom: 30, Left: 50},
		Padding:           0.1,
		PixelsPerTick:     80,
		GridOpacity:       0.1,
		BarColor:          "steelblue",
		LabelColor:        "white",
		OutsideLabelColor: "black",
		FontFamily:        "sans-serif",
		FontSize:          10,
		LabelInset:        4,
		MinInsideWidth:    20,
		Caption:           "Count →",
		Style:             "max-width: 100%; height: auto; height: intrinsic;",
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width == 0 {
		o.Width = d.Width
	}
	if o.Height == 0 {
		o.Height = d.Height
	}
	if o.Padding == 0 {
		o.Padding = d.Padding
	}
	if o.PixelsPerTick == 0 {
		o.PixelsPerTick = d.PixelsPerTick
	}
	if o.GridOpacity == 0 {
		o.GridOpacity = d.GridOpacity
	}
	if o.BarColor == "" {
		o.BarColor = d.BarColor
	}
	if o.LabelColor == "" {
		o.LabelColor = d.LabelColor
	}
	if o.OutsideLabelColor == "" {
		o.OutsideLabelColor = d.OutsideLabelColor
	}
	if o.FontFamily == "" {
		o.FontFamily = d.FontFamily
	}
	if o.FontSize == 0 {
		o.FontSize = d.FontSize
	}
	if o.LabelInset == 0 {
		o.LabelInset = d.LabelInset
	}
	if o.MinInsideWidth == 0 {
		o.MinInsideWidth = d.MinInsideWidth
	}
	if o.Caption == "" {
		o.Caption = d.Caption
	}
	if o.Style == "" {
		o.Style = d.Style
	}
	return o
}
