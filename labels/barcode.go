package labels

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/boombuler/barcode/code128"
	"github.com/disintegration/imaging"
)

// BarcodeSpec describes one barcode image request.
type BarcodeSpec struct {
	Text string
	// Scale multiplies the width of a single bar module in pixels.
	Scale int
	// ModuleHeight is the bar height in millimeters before scaling.
	ModuleHeight int
	IncludeText  bool
}

// Barcoder renders a Code128 barcode as a PNG image.
type Barcoder interface {
	Encode(ctx context.Context, spec BarcodeSpec) ([]byte, error)
}

// Code128Barcoder renders barcodes with boombuler/barcode and scales them with imaging.
type Code128Barcoder struct{}

var _ Barcoder = Code128Barcoder{}

// Encode implements Barcoder
func (Code128Barcoder) Encode(ctx context.Context, spec BarcodeSpec) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if spec.IncludeText {
		return nil, errors.New("human-readable barcode text is not supported")
	}

	bc, err := code128.Encode(spec.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to encode code128 %q: %w", spec.Text, err)
	}

	scale := spec.Scale
	if scale < 1 {
		scale = 1
	}
	moduleHeight := spec.ModuleHeight
	if moduleHeight < 1 {
		moduleHeight = 1
	}

	// Bar height follows the millimeter convention at 72 dpi.
	width := bc.Bounds().Dx() * scale
	height := int(math.Round(float64(moduleHeight) * PointsPerMM * float64(scale)))
	img := imaging.Resize(bc, width, height, imaging.NearestNeighbor)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode barcode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
