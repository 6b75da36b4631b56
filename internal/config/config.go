package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr          string        `yaml:"addr"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	DatabasePath  string        `yaml:"database_path"`
	TokenDuration time.Duration `yaml:"token_duration"`
	EmailDomain   string        `yaml:"email_domain"`
	CORSOrigins   []string      `yaml:"cors_origins"`
	ElasticAddr   string        `yaml:"elastic_addr"`
	ElasticIndex  string        `yaml:"elastic_index"`
}

func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	apiTimeout := 15 * time.Second
	tokenDuration := 1 * time.Hour

	cfg := &Config{
		Addr:          getEnv("TECNITRAMA_ADDR", ":8080"),
		JWTSecret:     getEnv("TECNITRAMA_JWT_SECRET", "supersecretkey"),
		APITimeout:    apiTimeout,
		DatabasePath:  getEnv("TECNITRAMA_DATABASE_PATH", "tecnitrama.db"),
		TokenDuration: tokenDuration,
		EmailDomain:   getEnv("TECNITRAMA_EMAIL_DOMAIN", "@uninorte.edu.co"),
		ElasticAddr:   getEnv("TECNITRAMA_ELASTIC_ADDR", ""),
		ElasticIndex:  getEnv("TECNITRAMA_ELASTIC_INDEX", "tecnitrama_projects"),
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
