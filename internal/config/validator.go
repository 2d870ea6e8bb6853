package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // config key, e.g. "layout.width"
	Value   any
	Message string
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Validate checks the Config for invalid values and returns all errors found
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError
	positive := func(field string, v float64) {
		if v <= 0 {
			errs = append(errs, ValidationError{Field: field, Value: v, Message: "must be greater than 0"})
		}
	}
	nonNegative := func(field string, v float64) {
		if v < 0 {
			errs = append(errs, ValidationError{Field: field, Value: v, Message: "must not be negative"})
		}
	}

	l := c.Layout
	positive("layout.width", l.Width)
	positive("layout.height", l.Height)
	nonNegative("layout.margin.top", l.Margin.Top)
	nonNegative("layout.margin.right", l.Margin.Right)
	nonNegative("layout.margin.bottom", l.Margin.Bottom)
	nonNegative("layout.margin.left", l.Margin.Left)
	positive("layout.pixels_per_tick", l.PixelsPerTick)
	// Zero means "use the default" in barchart.Options, so it is rejected here.
	positive("layout.label_inset", l.LabelInset)
	positive("layout.min_inside_width", l.MinInsideWidth)

	if l.Padding <= 0 || l.Padding >= 1 {
		errs = append(errs, ValidationError{Field: "layout.padding", Value: l.Padding, Message: "must be in (0, 1)"})
	}
	if l.Width > 0 && l.Margin.Left+l.Margin.Right >= l.Width {
		errs = append(errs, ValidationError{Field: "layout.margin", Value: l.Margin, Message: "horizontal margins leave no plot area"})
	}
	if l.Height > 0 && l.Margin.Top+l.Margin.Bottom >= l.Height {
		errs = append(errs, ValidationError{Field: "layout.margin", Value: l.Margin, Message: "vertical margins leave no plot area"})
	}

	positive("theme.font_size", c.Theme.FontSize)
	if c.Theme.GridOpacity <= 0 || c.Theme.GridOpacity > 1 {
		errs = append(errs, ValidationError{Field: "theme.grid_opacity", Value: c.Theme.GridOpacity, Message: "must be in (0, 1]"})
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, ValidationError{Field: "server.port", Value: c.Server.Port, Message: "must be between 1 and 65535"})
	}
	if c.Server.DebounceMs < 0 {
		errs = append(errs, ValidationError{Field: "server.debounce_ms", Value: c.Server.DebounceMs, Message: "must not be negative"})
	}
	if c.Cache.Size < 1 {
		errs = append(errs, ValidationError{Field: "cache.size", Value: c.Cache.Size, Message: "must be at least 1"})
	}

	return errs
}
