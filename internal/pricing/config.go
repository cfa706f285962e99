package pricing

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// Weights defines how strongly each factor's deviation from neutral pulls
// the nightly price away from base. They informally sum to ~1.0 but that is
// not enforced.
type Weights struct {
	Seasonality   float64 `json:"seasonality" validate:"gte=0"`
	Competitor    float64 `json:"competitor" validate:"gte=0"`
	BookingWindow float64 `json:"booking_window" validate:"gte=0"`
	External      float64 `json:"external" validate:"gte=0"`
	Noise         float64 `json:"noise" validate:"gte=0"`
}

// ExternalFactors are independently configured multipliers standing in for
// live weather and local-event feeds. 1.0 is neutral.
type ExternalFactors struct {
	Weather float64 `json:"weather" validate:"gt=0"`
	Event   float64 `json:"event" validate:"gt=0"`
}

// Config is the full pricing configuration, supplied once at startup.
type Config struct {
	BasePrice       float64         `json:"base_price" validate:"gt=0"`
	CompetitorPrice float64         `json:"competitor_price" validate:"gt=0"`
	Weights         Weights         `json:"weights"`
	External        ExternalFactors `json:"external"`
}

var validate = validator.New()

// DefaultConfig returns the baseline resort configuration.
func DefaultConfig() Config {
	return Config{
		BasePrice:       100.0,
		CompetitorPrice: 100.0,
		Weights: Weights{
			Seasonality:   0.3,
			Competitor:    0.25,
			BookingWindow: 0.2,
			External:      0.15,
			Noise:         0.1,
		},
		External: ExternalFactors{Weather: 1.0, Event: 1.0},
	}
}

// LoadConfigFromFile loads pricing config from a JSON file, falling back to
// defaults on read errors. Loaded values are validated.
func LoadConfigFromFile(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read pricing config: %w", err)
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal pricing config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("validate pricing config: %w", err)
	}
	return cfg, nil
}
