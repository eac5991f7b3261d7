package cmd

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/etnz/folio"
	"github.com/joho/godotenv"
)

const workbookEnv = "FOLIO_WORKBOOK"

// config holds the environment-driven settings shared by all subcommands.
// A .env file in the working directory is loaded first when present.
type config struct {
	Workbook     string  `env:"FOLIO_WORKBOOK"`
	Currency     string  `env:"FOLIO_CURRENCY" envDefault:"EUR"`
	RiskFreeRate float64 `env:"FOLIO_RISK_FREE" envDefault:"3"`
	EODHDKey     string  `env:"EODHD_API_KEY"`
}

func loadConfig() (config, error) {
	// A missing .env file is the normal case, not an error.
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("cannot parse environment: %w", err)
	}
	return cfg, nil
}

// provider builds the price provider chain. EODHD is currently the only
// remote source; the Fallback shape keeps room for more.
func (c config) provider() folio.PriceProvider {
	return folio.Fallback{folio.NewEODHD(c.EODHDKey)}
}
