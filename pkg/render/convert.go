package render

import (
	"bytes"
	"os/exec"
	"strings"

	"github.com/matzehuels/waterfall/pkg/errors"
)

// RSVGConvert names the librsvg command-line converter used by ToPDF. It is
// looked up on PATH unless it is an absolute path.
var RSVGConvert = "rsvg-convert"

var pdfMagic = []byte("%PDF")

// ToPDF converts an SVG document to PDF with rsvg-convert. The page keeps the
// SVG's size. A missing converter is reported as UNSUPPORTED.
func ToPDF(svg []byte) ([]byte, error) {
	bin, err := exec.LookPath(RSVGConvert)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err,
			"PDF export needs %s from librsvg (brew install librsvg, apt install librsvg2-bin)", RSVGConvert)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(bin, "--format=pdf", "--keep-aspect-ratio")
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "convert SVG to PDF: %s", strings.TrimSpace(stderr.String()))
	}

	if !bytes.HasPrefix(stdout.Bytes(), pdfMagic) {
		return nil, errors.New(errors.ErrCodeInternal, "%s did not produce a PDF", RSVGConvert)
	}
	return stdout.Bytes(), nil
}
