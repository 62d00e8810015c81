package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseProfile(t *testing.T) {
	assert.Equal(t, Profile30x20, ParseProfile("30x20"))
	assert.Equal(t, Profile58x40, ParseProfile("58x40"))
	assert.Equal(t, Profile58x40, ParseProfile(""))
	assert.Equal(t, Profile58x40, ParseProfile("100x150"))
}

func TestUnknownSelectorMatchesDefaultGeometry(t *testing.T) {
	assert.Equal(t, LayoutFor(Profile58x40), LayoutFor(ParseProfile("A4")))
	assert.Equal(t, LayoutFor(Profile58x40), LayoutFor(Profile(42)))
}

func TestLayoutSmallProfile(t *testing.T) {
	g := LayoutFor(Profile30x20)

	assert.InDelta(t, 85.0393701, g.PageWidth, 1e-6)
	assert.InDelta(t, 56.6929134, g.PageHeight, 1e-6)
	assert.InDelta(t, g.PageWidth-10, g.BarcodeWidth, 1e-9)
	assert.InDelta(t, 5, g.BarcodeX, 1e-9)
	assert.Equal(t, 2.0, g.BarcodeY)
	assert.Equal(t, 25.0, g.BarcodeHeight)
	assert.Equal(t, 10, g.BarcodeModuleHeight)
	assert.Equal(t, []float64{6, 6, 4}, []float64{g.CodeFontSize, g.FlipFontSize, g.NameFontSize})
	assert.Equal(t, []float64{27, 35, 42}, []float64{g.CodeY, g.FlipY, g.NameY})
	assert.Equal(t, 2.0, g.TextX)
	assert.InDelta(t, g.PageWidth-4, g.TextWidth, 1e-9)
}

func TestLayoutLargeProfile(t *testing.T) {
	g := LayoutFor(Profile58x40)

	assert.InDelta(t, 58*PointsPerMM, g.PageWidth, 1e-9)
	assert.InDelta(t, 40*PointsPerMM, g.PageHeight, 1e-9)
	assert.InDelta(t, g.PageWidth-20, g.BarcodeWidth, 1e-9)
	assert.InDelta(t, 10, g.BarcodeX, 1e-9)
	assert.Equal(t, 5.0, g.BarcodeY)
	assert.Equal(t, 50.0, g.BarcodeHeight)
	assert.Equal(t, 20, g.BarcodeModuleHeight)
	assert.Equal(t, []float64{8, 10, 8}, []float64{g.CodeFontSize, g.FlipFontSize, g.NameFontSize})
	assert.Equal(t, []float64{55, 65, 77}, []float64{g.CodeY, g.FlipY, g.NameY})
}

func TestProfileString(t *testing.T) {
	assert.Equal(t, "30x20", Profile30x20.String())
	assert.Equal(t, "58x40", Profile58x40.String())
}
