package priority

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fixed(v float64) func() float64 {
	return func() float64 { return v }
}

func TestColorFor_UnsetIsAlwaysGray(t *testing.T) {
	for i := 0; i < 20; i++ {
		assert.Equal(t, NeutralGray, ColorFor(Unset).String())
	}
	assert.Equal(t, NeutralGray, ColorFor("").String())
	assert.Equal(t, NeutralGray, ColorFor(Unset).Hex())
}

func TestColorFor_NonNumericIsGray(t *testing.T) {
	assert.Equal(t, NeutralGray, ColorFor("soon").String())
}

func TestColorFor_LowerHalfIsDeterministic(t *testing.T) {
	tests := []struct {
		p    Priority
		want string
	}{
		{p: "9", want: "rgb(255, 7, 58)"},
		{p: "5", want: "rgb(255, 255, 84)"},
		// t < 0 extrapolates past red; negative channels are kept.
		{p: "10", want: "rgb(238, -62, 47)"},
	}
	for _, tt := range tests {
		t.Run(string(tt.p), func(t *testing.T) {
			for i := 0; i < 5; i++ {
				assert.Equal(t, tt.want, ColorFor(tt.p).String())
			}
		})
	}
}

func TestColorFor_UpperHalfEndpoint(t *testing.T) {
	green := NewPalette(fixed(0.9)).ColorFor("1")
	cyan := NewPalette(fixed(0.1)).ColorFor("1")

	assert.Equal(t, "rgb(118, 255, 39)", green.String())
	assert.Equal(t, "rgb(74, 255, 222)", cyan.String())
}

func TestColorFor_UpperHalfIsOneOfTwo(t *testing.T) {
	accepted := map[string]bool{
		"rgb(118, 255, 39)": true,
		"rgb(74, 255, 222)": true,
	}
	for i := 0; i < 50; i++ {
		got := ColorFor("1").String()
		assert.True(t, accepted[got], "unexpected colour %s", got)
	}
}

func TestColorFor_ExtremesDiffer(t *testing.T) {
	assert.NotEqual(t, ColorFor("1").String(), ColorFor("10").String())
}

func TestColorFor_ClampsOutOfRange(t *testing.T) {
	pl := NewPalette(fixed(0.9))
	assert.Equal(t, pl.ColorFor("1"), pl.ColorFor("-4"))
	assert.Equal(t, pl.ColorFor("10"), pl.ColorFor("99"))
}

func TestColor_HexClampsChannels(t *testing.T) {
	assert.Equal(t, "#ee002f", ColorFor("10").Hex())
	assert.Equal(t, "#ff073a", ColorFor("9").Hex())
}
