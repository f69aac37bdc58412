// Package config is for app wide settings that are unmarshalled
// from Viper (a settings file or the defaults below)
package config

import (
	"fmt"

	"github.com/jjtimmons/sparseq/internal/alphabet"
	"github.com/jjtimmons/sparseq/internal/sparse"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// DefaultSeparator splits the fields of a row
	DefaultSeparator = ","

	// DefaultIDPrefix marks the field holding a sequence ID
	DefaultIDPrefix = "#"

	// DefaultAlphabet is the alphabet sequences are parsed into
	DefaultAlphabet = "dna"
)

// XsvConfig is settings for the character separated sparse sequence codec
type XsvConfig struct {
	// the character between fields of a row, ex: "," for csv and "\t" for tsv
	Separator string `mapstructure:"separator"`

	// the character starting the ID field of a row
	IDPrefix string `mapstructure:"id-prefix"`

	// name of the alphabet that parsed symbols must belong to
	Alphabet string `mapstructure:"alphabet"`

	// the length of a parsed consensus. zero derives it from the consensus row
	ConsensusLength int `mapstructure:"consensus-length"`
}

// Config is the root-level settings struct
type Config struct {
	// Xsv codec settings
	Xsv XsvConfig `mapstructure:"xsv"`

	// Verbose is whether to log at debug level
	Verbose bool `mapstructure:"verbose"`
}

// New returns a Config populated with the default settings
func New() *Config {
	var c Config
	if err := defaults().Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode default settings into struct, %v", err)
	}
	return &c
}

// Load reads the settings file at path over the defaults. The file's
// extension (yaml, json, toml, ...) decides how it is decoded
func Load(path string) (*Config, error) {
	v := defaults()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %v", path, err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to decode %s into struct: %v", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if c.Verbose {
		log.SetLevel(log.DebugLevel)
	}
	log.Debugf("loaded settings from %s", v.ConfigFileUsed())
	return &c, nil
}

// defaults is a fresh viper instance with every default set
func defaults() *viper.Viper {
	v := viper.New()
	v.SetDefault("xsv.separator", DefaultSeparator)
	v.SetDefault("xsv.id-prefix", DefaultIDPrefix)
	v.SetDefault("xsv.alphabet", DefaultAlphabet)
	v.SetDefault("xsv.consensus-length", 0)
	v.SetDefault("verbose", false)
	return v
}

// Validate checks that the codec settings can build a parser and formatter
func (c *Config) Validate() error {
	if len(c.Xsv.Separator) != 1 {
		return fmt.Errorf("separator must be a single character, got %q: %w", c.Xsv.Separator, sparse.ErrConfiguration)
	}
	if len(c.Xsv.IDPrefix) != 1 {
		return fmt.Errorf("id-prefix must be a single character, got %q: %w", c.Xsv.IDPrefix, sparse.ErrConfiguration)
	}
	if c.Xsv.Separator == c.Xsv.IDPrefix {
		return fmt.Errorf("separator and id-prefix are both %q: %w", c.Xsv.Separator, sparse.ErrConfiguration)
	}
	if c.Xsv.ConsensusLength < 0 {
		return fmt.Errorf("negative consensus-length %d: %w", c.Xsv.ConsensusLength, sparse.ErrConfiguration)
	}
	if _, err := c.Alphabet(); err != nil {
		return err
	}
	return nil
}

// Separator returns the field separator. Only valid after Validate
func (c *Config) Separator() byte {
	return c.Xsv.Separator[0]
}

// IDPrefix returns the ID field marker. Only valid after Validate
func (c *Config) IDPrefix() byte {
	return c.Xsv.IDPrefix[0]
}

// Alphabet returns the alphabet named in the settings
func (c *Config) Alphabet() (alphabet.Alphabet, error) {
	a, err := alphabet.ByName(c.Xsv.Alphabet)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, sparse.ErrConfiguration)
	}
	return a, nil
}
