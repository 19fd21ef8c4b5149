package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyDefaultBoundaries(t *testing.T) {
	cases := []struct {
		complexity int
		want       Band
	}{
		{1, BandLow},
		{5, BandLow},
		{6, BandMedium},
		{10, BandMedium},
		{11, BandHigh},
		{15, BandHigh},
		{16, BandCritical},
		{100, BandCritical},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.complexity), "complexity %d", tc.complexity)
	}
}

func TestClassifyIsTotalAndMonotonic(t *testing.T) {
	prev := BandLow
	for c := 0; c <= 200; c++ {
		band := Classify(c)
		assert.GreaterOrEqual(t, band, BandLow)
		assert.LessOrEqual(t, band, BandCritical)
		assert.GreaterOrEqual(t, band, prev, "band must not decrease at complexity %d", c)
		prev = band
	}
}

func TestClassifyCustomThresholds(t *testing.T) {
	strict := Thresholds{Low: 2, Medium: 4, High: 6}
	require.NoError(t, strict.Validate())

	assert.Equal(t, BandLow, strict.Classify(2))
	assert.Equal(t, BandMedium, strict.Classify(3))
	assert.Equal(t, BandHigh, strict.Classify(5))
	assert.Equal(t, BandCritical, strict.Classify(7))
}

func TestThresholdsValidate(t *testing.T) {
	assert.NoError(t, DefaultThresholds().Validate())
	assert.Error(t, Thresholds{Low: 0, Medium: 10, High: 15}.Validate())
	assert.Error(t, Thresholds{Low: 10, Medium: 10, High: 15}.Validate())
	assert.Error(t, Thresholds{Low: 5, Medium: 20, High: 15}.Validate())
}

func TestBandString(t *testing.T) {
	assert.Equal(t, "LOW", BandLow.String())
	assert.Equal(t, "MEDIUM", BandMedium.String())
	assert.Equal(t, "HIGH", BandHigh.String())
	assert.Equal(t, "CRITICAL", BandCritical.String())
}

func TestMapToDescriptorIsStable(t *testing.T) {
	first := MapToDescriptor(BandHigh)
	second := MapToDescriptor(BandHigh)
	assert.Equal(t, first, second)

	// Mutating a returned copy must not leak into the table.
	first.Effects[0] = "mutated"
	third := MapToDescriptor(BandHigh)
	assert.Equal(t, second, third)
}

func TestDescriptorShape(t *testing.T) {
	for _, band := range []Band{BandLow, BandMedium, BandHigh, BandCritical} {
		d := MapToDescriptor(band)
		assert.Equal(t, band, d.Band)
		assert.Greater(t, d.Frequency.MinHz, 0.0)
		assert.Greater(t, d.Frequency.MaxHz, d.Frequency.MinHz)
		assert.GreaterOrEqual(t, d.Intensity, 0.0)
		assert.LessOrEqual(t, d.Intensity, 1.0)
		assert.NotEmpty(t, d.Effects)
		assert.Regexp(t, `^#[0-9a-f]{6}$`, d.Color)
	}

	// Lower bands map to higher, calmer frequencies; intensity rises with
	// severity.
	low, critical := MapToDescriptor(BandLow), MapToDescriptor(BandCritical)
	assert.Greater(t, low.Frequency.MinHz, critical.Frequency.MaxHz)
	assert.Less(t, low.Intensity, critical.Intensity)
	assert.Contains(t, critical.Effects, "jumpscare")
}

func TestColorPerBandIsDistinct(t *testing.T) {
	seen := map[string]Band{}
	for _, band := range []Band{BandLow, BandMedium, BandHigh, BandCritical} {
		c := Color(band)
		_, dup := seen[c]
		assert.False(t, dup, "color %s reused", c)
		seen[c] = band
	}
}
