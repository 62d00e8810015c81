package utils

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCoerceInt(t *testing.T) {
	cases := map[string]int{
		"3":                    3,
		" 12 ":                 12,
		"+7":                   7,
		"3abc":                 3,
		"3.7":                  3,
		"":                     0,
		"abc":                  0,
		"-2":                   0,
		"-":                    0,
		"99999999999999999999": 0,
	}
	for in, want := range cases {
		assert.Equal(t, want, CoerceInt(in), "input %q", in)
	}
}

func TestCoercePrice(t *testing.T) {
	cases := map[string]int{
		"1 500":                 1500,
		"1500 ₸":                1500,
		"₸ 2,340":               2340,
		"abc":                   0,
		"":                      0,
		"999999999999999999999": 0,
	}
	for in, want := range cases {
		assert.Equal(t, want, CoercePrice(in), "input %q", in)
	}
}

func TestSanitizeProductName(t *testing.T) {
	assert.Equal(t, "Widget", SanitizeProductName("  Widget\n"))
	assert.Equal(t, "Soap Lux", SanitizeProductName(`«Soap» "Lux"`))
	assert.Equal(t, "Salt  and  Pepper", SanitizeProductName("Salt & Pepper"))
	assert.Equal(t, "line one line two", SanitizeProductName("line one\r\nline two"))
	assert.Equal(t, "", SanitizeProductName(""))
}

func TestSanitizeProductNameIdempotent(t *testing.T) {
	inputs := []string{
		"Widget",
		"  «Big» & \"Bold\"\n",
		"&",
		"a&b&c",
		"\n\n",
		"Сок «Добрый» 1л & трубочка",
	}
	for _, in := range inputs {
		once := SanitizeProductName(in)
		assert.Equal(t, once, SanitizeProductName(once), "input %q", in)
	}
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", TruncateRunes("abcdef", 3))
	assert.Equal(t, "abc", TruncateRunes("abc", 50))
	assert.Equal(t, "Сок", TruncateRunes("Сок яблочный", 3))
	assert.Equal(t, "", TruncateRunes("abc", 0))
}

func TestFormatOrderDate(t *testing.T) {
	d := time.Date(2025, time.March, 7, 15, 4, 0, 0, time.UTC)
	assert.Equal(t, "07.03.2025", FormatOrderDate(d))
}

func TestAddCapped(t *testing.T) {
	assert.Equal(t, 5, AddCapped(2, 3))
	assert.Equal(t, math.MaxInt, AddCapped(math.MaxInt, 1))
	assert.Equal(t, math.MaxInt, AddCapped(1<<62, 1<<62))
	assert.Equal(t, math.MaxInt, AddCapped(math.MaxInt, 0))
}

func TestMulCapped(t *testing.T) {
	assert.Equal(t, 6, MulCapped(2, 3))
	assert.Equal(t, 0, MulCapped(0, math.MaxInt))
	assert.Equal(t, 0, MulCapped(math.MaxInt, 0))
	assert.Equal(t, math.MaxInt, MulCapped(10000000000, 10000000000))
	assert.Equal(t, math.MaxInt, MulCapped(math.MaxInt, 2))
}
