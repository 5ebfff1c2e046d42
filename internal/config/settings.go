package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Settings are CLI defaults. Flags override them.
type Settings struct {
	Seed     uint64
	Count    int
	Format   string
	Accurate bool
	Options  string // default options file
	Root     string // default CUE root
}

// Settings keys, as written in .mockingbird.yaml.
const (
	KeySeed     = "seed"
	KeyCount    = "count"
	KeyFormat   = "format"
	KeyAccurate = "accurate"
	KeyOptions  = "options"
	KeyRoot     = "root"
)

// EnvPrefix prefixes environment overrides, e.g. MOCKINGBIRD_SEED.
const EnvPrefix = "MOCKINGBIRD"

// NewViper returns a viper instance reading .mockingbird.yaml from dirs
// through AppFs, with MOCKINGBIRD_* environment overrides.
func NewViper(dirs ...string) *viper.Viper {
	v := viper.New()
	v.SetFs(AppFs)
	v.SetConfigName(".mockingbird")
	v.SetConfigType("yaml")
	for _, d := range dirs {
		v.AddConfigPath(d)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault(KeySeed, 0)
	v.SetDefault(KeyCount, 1)
	v.SetDefault(KeyFormat, "text")
	v.SetDefault(KeyAccurate, true)
	v.SetDefault(KeyOptions, "")
	v.SetDefault(KeyRoot, "")
	return v
}

// LoadSettings reads settings. A missing config file is not an error.
func LoadSettings(v *viper.Viper) (*Settings, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	s := &Settings{
		Seed:     v.GetUint64(KeySeed),
		Count:    v.GetInt(KeyCount),
		Format:   v.GetString(KeyFormat),
		Accurate: v.GetBool(KeyAccurate),
		Options:  v.GetString(KeyOptions),
		Root:     v.GetString(KeyRoot),
	}
	if s.Count < 0 {
		return nil, fmt.Errorf("config: %s must be non-negative, got %d", KeyCount, s.Count)
	}
	return s, nil
}
