// Package config loads server settings from a .env file, the environment
// and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Asset backends.
const (
	BackendLocal = "local"
	BackendS3    = "s3"
)

// Config holds everything cmd/restock needs to start.
type Config struct {
	DBPath    string `env:"RESTOCK_DB" envDefault:"restock.sqlite3"`
	Addr      string `env:"RESTOCK_ADDR" envDefault:":8080"`
	LogPath   string `env:"RESTOCK_LOG"`
	JWTSecret string `env:"RESTOCK_JWT_SECRET"`

	// PublicURL is the origin clients reach the server at; local asset
	// refs are built from it.
	PublicURL string `env:"RESTOCK_PUBLIC_URL"`

	AssetBackend string `env:"RESTOCK_ASSET_BACKEND" envDefault:"local"`
	AssetDir     string `env:"RESTOCK_ASSET_DIR" envDefault:"assets"`

	S3 S3 `envPrefix:"RESTOCK_S3_"`
}

// S3 configures the S3-compatible asset backend.
type S3 struct {
	Endpoint  string `env:"ENDPOINT"`
	Region    string `env:"REGION"`
	Bucket    string `env:"BUCKET" envDefault:"restock"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	UseSSL    bool   `env:"USE_SSL"`
	PublicURL string `env:"PUBLIC_URL"`
}

const usage = `Usage: restock [flags]

Flags:
  -d, -db <path>          SQLite database path (default: restock.sqlite3)
  -a, -addr <host:port>   listen address (default: :8080)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -u, -url <url>          public URL of the server (default: derived from -addr)
  -b, -backend <name>     asset backend, local or s3 (default: local)
  -assets <dir>           directory for the local asset backend (default: assets)
  -h, -help               show this help and exit

Every flag can also be set through the environment (RESTOCK_DB, RESTOCK_ADDR,
RESTOCK_LOG, RESTOCK_PUBLIC_URL, RESTOCK_ASSET_BACKEND, RESTOCK_ASSET_DIR) or a
.env file. The S3 backend is configured with RESTOCK_S3_ENDPOINT, _REGION,
_BUCKET, _ACCESS_KEY, _SECRET_KEY, _USE_SSL and _PUBLIC_URL.
`

// Load reads .env (if present), the environment and then args. It returns
// flag.ErrHelp when help was requested.
func Load(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	fset := flag.NewFlagSet("restock", flag.ContinueOnError)
	fset.StringVar(&cfg.DBPath, "db", cfg.DBPath, "")
	fset.StringVar(&cfg.DBPath, "d", cfg.DBPath, "")
	fset.StringVar(&cfg.Addr, "addr", cfg.Addr, "")
	fset.StringVar(&cfg.Addr, "a", cfg.Addr, "")
	fset.StringVar(&cfg.LogPath, "log", cfg.LogPath, "")
	fset.StringVar(&cfg.LogPath, "l", cfg.LogPath, "")
	fset.StringVar(&cfg.PublicURL, "url", cfg.PublicURL, "")
	fset.StringVar(&cfg.PublicURL, "u", cfg.PublicURL, "")
	fset.StringVar(&cfg.AssetBackend, "backend", cfg.AssetBackend, "")
	fset.StringVar(&cfg.AssetBackend, "b", cfg.AssetBackend, "")
	fset.StringVar(&cfg.AssetDir, "assets", cfg.AssetDir, "")
	fset.Usage = func() {
		fmt.Fprint(fset.Output(), usage)
	}

	if err := fset.Parse(args); err != nil {
		return nil, err
	}
	if fset.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument: %s", fset.Arg(0))
	}

	if cfg.PublicURL == "" {
		cfg.PublicURL = defaultPublicURL(cfg.Addr)
	}
	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected asset backend is fully configured.
func (c *Config) Validate() error {
	switch c.AssetBackend {
	case BackendLocal:
		if c.AssetDir == "" {
			return errors.New("local asset backend needs an asset directory")
		}
	case BackendS3:
		if c.S3.Endpoint == "" || c.S3.Bucket == "" {
			return errors.New("s3 asset backend needs RESTOCK_S3_ENDPOINT and RESTOCK_S3_BUCKET")
		}
	default:
		return fmt.Errorf("unknown asset backend %q (want %s or %s)", c.AssetBackend, BackendLocal, BackendS3)
	}
	return nil
}

func defaultPublicURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
