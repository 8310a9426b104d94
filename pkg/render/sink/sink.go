package sink

import (
	"strings"

	"github.com/matzehuels/waterfall/pkg/errors"
	"github.com/matzehuels/waterfall/pkg/render"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// Formats lists the supported output formats.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	switch format {
	case FormatSVG, FormatPNG, FormatPDF, FormatJSON:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(Formats, ", "))
}

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/json"
	}
}

// Options bundles the per-format options used by [Render].
type Options struct {
	Background string  // canvas color for SVG, PNG and PDF ("white")
	Scale      float64 // PNG scale factor (1)
}

// Render dispatches f to the sink for format.
func Render(f *render.Figure, format string, opts Options) ([]byte, error) {
	var svgOpts []SVGOption
	if opts.Background != "" {
		svgOpts = append(svgOpts, WithBackground(opts.Background))
	}

	switch format {
	case FormatSVG:
		return RenderSVG(f, svgOpts...)
	case FormatPNG:
		pngOpts := []PNGOption{}
		if opts.Background != "" {
			pngOpts = append(pngOpts, WithPNGBackground(opts.Background))
		}
		if opts.Scale > 0 {
			pngOpts = append(pngOpts, WithScale(opts.Scale))
		}
		return RenderPNG(f, pngOpts...)
	case FormatPDF:
		return RenderPDF(f, WithPDFSVGOptions(svgOpts...))
	case FormatJSON:
		return RenderJSON(f)
	default:
		return nil, ValidateFormat(format)
	}
}
