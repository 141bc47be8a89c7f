package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"slideforge/internal/logger"
)

const (
	defaultListenAddr       = "localhost:8000"
	defaultLoggingLevel     = logger.LevelInfo
	defaultEnvironment      = logger.EnvProduction
	defaultTemplateID       = "1Ggmb8DZM02xwKqNL4Yht7-ysoLHNgWc0Q0VySeYfxSE"
	defaultTemplateCapacity = 5
)

type Config struct {
	// Default logging level
	LogLevel string

	// Address on which the slideforge service will be run
	ListenAddr string

	// Database to connect to
	DatabaseDSN string

	// Secret key
	// Some internal parts (like signing JWT tokens) uses symmetric encryption, so this key is used for that purpose
	SecretKey string

	// Environment
	Environment string

	// Slides template copied for every generation unless the request names another one
	TemplateID string

	// Number of content slides the template holds before overflow slides are appended
	TemplateCapacity int

	// Google endpoint overrides, useful to point the service at a stub
	DriveBaseURL  string
	SlidesBaseURL string
	OAuthBaseURL  string
}

func NewConfig() *Config {
	return &Config{
		LogLevel:         defaultLoggingLevel,
		ListenAddr:       defaultListenAddr,
		Environment:      defaultEnvironment,
		TemplateID:       defaultTemplateID,
		TemplateCapacity: defaultTemplateCapacity,
	}
}

// Load variable from '.env' file (should be located at working directory)
func (c *Config) LoadDotEnv(getwd func() (string, error)) error {
	wd, err := getwd()
	if err != nil {
		return err
	}

	envMap, err := godotenv.Read(filepath.Join(wd, ".env"))

	switch {
	case err == nil:
		c.LoadEnv(func(key string) string {
			return envMap[key]
		})
		return nil
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return err
	}
}

func (c *Config) LoadEnv(getenv func(string) string) {
	// Set option to value if it not empty
	setString := func(o *string) func(value string) {
		return func(value string) {
			if value != "" {
				*o = value
			}
		}
	}

	envMap := map[string]func(string){
		"RUN_ADDRESS":     setString(&c.ListenAddr),
		"DATABASE_URI":    setString(&c.DatabaseDSN),
		"SECRET_KEY":      setString(&c.SecretKey),
		"LOG_LEVEL":       setString(&c.LogLevel),
		"ENVIRONMENT":     setString(&c.Environment),
		"TEMPLATE_ID":     setString(&c.TemplateID),
		"DRIVE_BASE_URL":  setString(&c.DriveBaseURL),
		"SLIDES_BASE_URL": setString(&c.SlidesBaseURL),
		"OAUTH_BASE_URL":  setString(&c.OAuthBaseURL),
	}

	for key, parseFn := range envMap {
		parseFn(getenv(key))
	}
}

func (c *Config) ParseFlags(args []string) error {
	fs := pflag.NewFlagSet("slideforge", pflag.ContinueOnError)

	fs.StringVarP(&c.ListenAddr, "address", "a", c.ListenAddr, "Server listen address")
	fs.StringVarP(&c.DatabaseDSN, "database", "d", c.DatabaseDSN, "Database connection string")
	fs.StringVarP(&c.SecretKey, "secret-key", "s", c.SecretKey, "Secret key")
	fs.StringVarP(&c.LogLevel, "log-level", "l", c.LogLevel, "Logging level (debug, info, warn, error)")
	fs.StringVarP(&c.Environment, "environment", "e", c.Environment, "Environment (dev, prod)")
	fs.StringVarP(&c.TemplateID, "template", "t", c.TemplateID, "Default Slides template to copy")
	fs.IntVarP(&c.TemplateCapacity, "capacity", "c", c.TemplateCapacity, "Content slides the template holds")

	return fs.Parse(args)
}
