// Package labels lays out and paginates printable barcode labels.
package labels

import "strings"

// PointsPerMM converts millimeters to PDF points.
const PointsPerMM = 2.83464567

// Profile is one of the supported physical label sizes.
type Profile int

const (
	Profile58x40 Profile = iota
	Profile30x20
)

func (p Profile) String() string {
	if p == Profile30x20 {
		return "30x20"
	}
	return "58x40"
}

// ParseProfile maps a label size selector to a profile. Anything other than
// "30x20" selects the default 58x40 profile.
func ParseProfile(selector string) Profile {
	if strings.TrimSpace(selector) == "30x20" {
		return Profile30x20
	}
	return Profile58x40
}

// Geometry is the absolute layout of one label page, in points.
type Geometry struct {
	Profile Profile

	PageWidth  float64
	PageHeight float64

	BarcodeX      float64
	BarcodeY      float64
	BarcodeWidth  float64
	BarcodeHeight float64
	// BarcodeModuleHeight is passed to the barcode renderer and scales the bar height of the image.
	BarcodeModuleHeight int
	BarcodeScale        int

	TextX     float64
	TextWidth float64

	CodeFontSize float64
	FlipFontSize float64
	NameFontSize float64

	CodeY float64
	FlipY float64
	NameY float64
}

type profileSpec struct {
	widthMM, heightMM float64
	barcodeHeight     float64
	moduleHeight      int
	margin            float64
	barcodeY          float64
	codeFont          float64
	flipFont          float64
	nameFont          float64
	codeOffset        float64
	flipOffset        float64
	nameOffset        float64
}

var profileSpecs = map[Profile]profileSpec{
	Profile30x20: {
		widthMM: 30, heightMM: 20,
		barcodeHeight: 25, moduleHeight: 10, margin: 10, barcodeY: 2,
		codeFont: 6, flipFont: 6, nameFont: 4,
		codeOffset: 2, flipOffset: 10, nameOffset: 17,
	},
	Profile58x40: {
		widthMM: 58, heightMM: 40,
		barcodeHeight: 50, moduleHeight: 20, margin: 20, barcodeY: 5,
		codeFont: 8, flipFont: 10, nameFont: 8,
		codeOffset: 5, flipOffset: 15, nameOffset: 27,
	},
}

const (
	barcodeScale = 2
	textInset    = 2
)

// LayoutFor computes the geometry for a profile. Unknown profiles use the 58x40 layout.
func LayoutFor(p Profile) Geometry {
	spec, ok := profileSpecs[p]
	if !ok {
		p = Profile58x40
		spec = profileSpecs[p]
	}

	width := spec.widthMM * PointsPerMM
	height := spec.heightMM * PointsPerMM
	barcodeWidth := width - spec.margin

	return Geometry{
		Profile:             p,
		PageWidth:           width,
		PageHeight:          height,
		BarcodeX:            (width - barcodeWidth) / 2,
		BarcodeY:            spec.barcodeY,
		BarcodeWidth:        barcodeWidth,
		BarcodeHeight:       spec.barcodeHeight,
		BarcodeModuleHeight: spec.moduleHeight,
		BarcodeScale:        barcodeScale,
		TextX:               textInset,
		TextWidth:           width - 2*textInset,
		CodeFontSize:        spec.codeFont,
		FlipFontSize:        spec.flipFont,
		NameFontSize:        spec.nameFont,
		CodeY:               spec.barcodeHeight + spec.codeOffset,
		FlipY:               spec.barcodeHeight + spec.flipOffset,
		NameY:               spec.barcodeHeight + spec.nameOffset,
	}
}
