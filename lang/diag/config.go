package diag

import "github.com/caarlos0/env/v6"

// PrinterConfig is the small set of environment-driven knobs the
// diagnostics printer honors, per spec §6 ("implementations may consult
// NO_COLOR").
type PrinterConfig struct {
	NoColor bool `env:"NO_COLOR"`
}

// LoadPrinterConfig reads PrinterConfig from the process environment.
func LoadPrinterConfig() (PrinterConfig, error) {
	var cfg PrinterConfig
	if err := env.Parse(&cfg); err != nil {
		return PrinterConfig{}, err
	}
	return cfg, nil
}
