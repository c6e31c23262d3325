package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"gitlab.com/stephen-fox/artshadow/shadow"
)

const (
	platformEnv = "SHADOWDUMP_PLATFORM"
	catalogEnv  = "SHADOWDUMP_CATALOG"
	apiLevelEnv = "SHADOWDUMP_API_LEVEL"

	textFormat    = "text"
	goFormat      = "go"
	cFormat       = "c"
	symbolsFormat = "symbols"
)

var formats = []string{textFormat, goFormat, cFormat, symbolsFormat}

type config struct {
	Platform string
	Catalog  string
	APILevel int
	Format   string
	Verbose  bool
}

// loadConfig reads the flag defaults from the environment.
func loadConfig() (config, error) {
	cfg := config{
		Platform: envOr(platformEnv, shadow.PlatformARM64.Name),
		Catalog:  os.Getenv(catalogEnv),
		Format:   textFormat,
	}

	if raw := os.Getenv(apiLevelEnv); raw != "" {
		level, err := strconv.Atoi(raw)
		if err != nil {
			return config{}, fmt.Errorf("config: invalid %s %q - %w", apiLevelEnv, raw, err)
		}
		cfg.APILevel = level
	}

	return cfg, nil
}

func (o config) validate() error {
	_, err := shadow.PlatformByName(o.Platform)
	if err != nil {
		return fmt.Errorf("config: invalid platform - %w", err)
	}

	if !slices.Contains(formats, o.Format) {
		return fmt.Errorf("config: unknown format %q (must be one of %s)",
			o.Format, strings.Join(formats, ", "))
	}

	if o.APILevel < 0 {
		return fmt.Errorf("config: api level cannot be negative - got %d", o.APILevel)
	}

	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
