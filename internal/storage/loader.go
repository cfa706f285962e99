package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/mkarppinen/cabin-revenue/internal/domain"
)

var validate = validator.New()

// LoadCatalogFromFile reads the cabin inventory and activity table from a
// JSON file. Records are validated so a broken catalog fails at startup
// rather than mispricing quotes.
func LoadCatalogFromFile(path string) (domain.Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("read catalog file: %w", err)
	}

	var cat domain.Catalog
	if err := json.Unmarshal(b, &cat); err != nil {
		return domain.Catalog{}, fmt.Errorf("unmarshal catalog: %w", err)
	}
	if err := validate.Struct(cat); err != nil {
		return domain.Catalog{}, fmt.Errorf("validate catalog: %w", err)
	}
	return cat, nil
}
