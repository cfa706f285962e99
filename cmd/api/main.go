package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/mkarppinen/cabin-revenue/internal/booking"
	"github.com/mkarppinen/cabin-revenue/internal/forecast"
	httpapi "github.com/mkarppinen/cabin-revenue/internal/http"
	"github.com/mkarppinen/cabin-revenue/internal/occupancy"
	"github.com/mkarppinen/cabin-revenue/internal/pricing"
	"github.com/mkarppinen/cabin-revenue/internal/storage"
)

type Config struct {
	Address     string
	DBPath      string
	CatalogPath string
	PricingPath string
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file, using environment as-is")
	}
	cfg := loadConfig()

	store, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	n, err := store.CountCabinTypes()
	if err != nil {
		log.Fatalf("count cabin types: %v", err)
	}
	if n == 0 {
		seed, err := storage.LoadCatalogFromFile(cfg.CatalogPath)
		if err != nil {
			log.Fatalf("load catalog seed: %v", err)
		}
		if err := store.SeedCatalog(seed); err != nil {
			log.Fatalf("seed catalog: %v", err)
		}
		log.Printf("seeded catalog from %s", cfg.CatalogPath)
	}

	catalog, err := store.LoadCatalog()
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}

	pcfg, err := pricing.LoadConfigFromFile(cfg.PricingPath)
	if err != nil {
		log.Printf("use default pricing config (reason: %v)", err)
		pcfg = pricing.DefaultConfig()
	}

	model := pricing.NewModel(pcfg)
	occ := occupancy.NewModel(occupancy.DefaultModifiers())
	srv := httpapi.NewServer(
		booking.NewAggregator(catalog, model),
		forecast.NewForecaster(catalog, model, occ),
		catalog,
	)

	log.Printf("API listening on %s", cfg.Address)
	if err := http.ListenAndServe(cfg.Address, srv.Routes()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func loadConfig() Config {
	return Config{
		Address:     getEnv("API_ADDRESS", ":8080"),
		DBPath:      getEnv("DB_PATH", "data/resort.db"),
		CatalogPath: getEnv("CATALOG_PATH", "data/catalog.json"),
		PricingPath: getEnv("PRICING_PATH", "configs/pricing.json"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
