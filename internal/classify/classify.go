package classify

import "fmt"

// Band is one of four ordered complexity tiers. The ordering follows the
// underlying integer values, so bands compare with < and <=.
type Band int

const (
	BandLow Band = iota
	BandMedium
	BandHigh
	BandCritical
)

func (b Band) String() string {
	switch b {
	case BandLow:
		return "LOW"
	case BandMedium:
		return "MEDIUM"
	case BandHigh:
		return "HIGH"
	case BandCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Thresholds holds the inclusive upper bound of each band below Critical.
// The zero value is not usable; construct with DefaultThresholds or from
// configuration so tests can substitute alternate sets.
type Thresholds struct {
	Low    int `yaml:"low" json:"low"`       // complexity <= Low is LOW
	Medium int `yaml:"medium" json:"medium"` // <= Medium is MEDIUM
	High   int `yaml:"high" json:"high"`     // <= High is HIGH, above is CRITICAL
}

// DefaultThresholds returns the standard band boundaries: LOW <=5,
// MEDIUM 6-10, HIGH 11-15, CRITICAL >=16.
func DefaultThresholds() Thresholds {
	return Thresholds{Low: 5, Medium: 10, High: 15}
}

// Validate checks that the boundaries are strictly ascending.
func (t Thresholds) Validate() error {
	if t.Low < 1 || t.Low >= t.Medium || t.Medium >= t.High {
		return fmt.Errorf("band thresholds must satisfy 1 <= low < medium < high, got %d/%d/%d", t.Low, t.Medium, t.High)
	}
	return nil
}

// Classify maps a complexity value to its band. The mapping is total over
// the non-negative integers and monotonic in the input.
func (t Thresholds) Classify(complexity int) Band {
	switch {
	case complexity <= t.Low:
		return BandLow
	case complexity <= t.Medium:
		return BandMedium
	case complexity <= t.High:
		return BandHigh
	default:
		return BandCritical
	}
}

// Classify applies the default thresholds.
func Classify(complexity int) Band {
	return DefaultThresholds().Classify(complexity)
}

// FrequencyRange bounds the audio tone mapped to a band, in hertz.
type FrequencyRange struct {
	MinHz float64 `json:"min_hz"`
	MaxHz float64 `json:"max_hz"`
}

// Descriptor is the fixed visual/audio mapping for one band. Downstream
// surfaces derive every effect parameter from here instead of hardcoding
// their own thresholds.
type Descriptor struct {
	Band      Band           `json:"band"`
	Frequency FrequencyRange `json:"frequency"`
	Intensity float64        `json:"intensity"` // 0-1
	Effects   []string       `json:"effects"`
	Color     string         `json:"color"` // hex, shared by graph nodes and reports
}

// descriptors is the static lookup table, one entry per band. No randomness,
// no side effects; MapToDescriptor returns copies so callers cannot mutate it.
var descriptors = [...]Descriptor{
	BandLow: {
		Band:      BandLow,
		Frequency: FrequencyRange{MinHz: 220, MaxHz: 440},
		Intensity: 0.1,
		Effects:   []string{"ambient_hum"},
		Color:     "#4caf50",
	},
	BandMedium: {
		Band:      BandMedium,
		Frequency: FrequencyRange{MinHz: 140, MaxHz: 220},
		Intensity: 0.4,
		Effects:   []string{"low_drone", "heartbeat"},
		Color:     "#ffc107",
	},
	BandHigh: {
		Band:      BandHigh,
		Frequency: FrequencyRange{MinHz: 80, MaxHz: 140},
		Intensity: 0.7,
		Effects:   []string{"heartbeat", "whispers", "dissonant_strings"},
		Color:     "#ff5722",
	},
	BandCritical: {
		Band:      BandCritical,
		Frequency: FrequencyRange{MinHz: 30, MaxHz: 80},
		Intensity: 1.0,
		Effects:   []string{"sub_bass_rumble", "scream_stinger", "jumpscare"},
		Color:     "#b71c1c",
	},
}

// MapToDescriptor returns the visual/audio descriptor for a band.
func MapToDescriptor(band Band) Descriptor {
	if band < BandLow || band > BandCritical {
		band = BandCritical
	}
	d := descriptors[band]
	effects := make([]string, len(d.Effects))
	copy(effects, d.Effects)
	d.Effects = effects
	return d
}

// Color returns the hex color for a band.
func Color(band Band) string {
	return MapToDescriptor(band).Color
}
