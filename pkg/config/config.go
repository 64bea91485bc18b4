package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Scoring  ScoringConfig
	Bandit   BanditConfig
	Engine   EngineConfig
	Gemini   GeminiConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port            string
	AllowOrigins    []string
	ShutdownTimeout time.Duration
}

// DatabaseConfig is only used for the audit log. The service runs without a
// database when DB_HOST is unset.
type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type ScoringConfig struct {
	WeightLocation     float64
	WeightSkill        float64
	WeightAvailability float64
	WeightPriority     float64
	WeightHistorical   float64
	ColdStartBonus     float64
	MinInteractions    int
	MaxDistance        float64
}

type BanditConfig struct {
	Epsilon      float64
	EpsilonDecay float64
	MinEpsilon   float64
}

type EngineConfig struct {
	ABBoostFactor    float64
	ABEpsilonCeiling float64
	ScoringWorkers   int
}

// GeminiConfig enables semantic skill matching when APIKey is set.
type GeminiConfig struct {
	APIKey         string
	EmbeddingModel string
	Timeout        time.Duration
	CacheSize      int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	p := &parser{}
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "aidMatch Recommendation Engine"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:            getEnv("PORT", "5001"),
			AllowOrigins:    splitList(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:8080")),
			ShutdownTimeout: p.duration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Enabled:  os.Getenv("DB_HOST") != "",
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "aid_match"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Scoring: ScoringConfig{
			WeightLocation:     p.float("WEIGHT_LOCATION", 0.25),
			WeightSkill:        p.float("WEIGHT_SKILL_MATCH", 0.25),
			WeightAvailability: p.float("WEIGHT_AVAILABILITY", 0.20),
			WeightPriority:     p.float("WEIGHT_PRIORITY", 0.20),
			WeightHistorical:   p.float("WEIGHT_HISTORICAL", 0.10),
			ColdStartBonus:     p.float("COLD_START_BONUS", 0.1),
			MinInteractions:    p.int("MIN_INTERACTIONS_FOR_LEARNING", 5),
			MaxDistance:        p.float("MAX_DISTANCE", 50),
		},
		Bandit: BanditConfig{
			Epsilon:      p.float("EPSILON", 0.1),
			EpsilonDecay: p.float("EPSILON_DECAY", 0.995),
			MinEpsilon:   p.float("MIN_EPSILON", 0.01),
		},
		Engine: EngineConfig{
			ABBoostFactor:    p.float("AB_BOOST_FACTOR", 1.5),
			ABEpsilonCeiling: p.float("AB_EPSILON_CEILING", 0.2),
			ScoringWorkers:   p.int("SCORING_WORKERS", 8),
		},
		Gemini: GeminiConfig{
			APIKey:         getEnv("GEMINI_API_KEY", ""),
			EmbeddingModel: getEnv("GEMINI_EMBEDDING_MODEL", "text-embedding-004"),
			Timeout:        p.duration("GEMINI_TIMEOUT", 5*time.Second),
			CacheSize:      p.int("GEMINI_EMBEDDING_CACHE_SIZE", 4096),
		},
	}

	if p.err != nil {
		return nil, p.err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate covers settings only this layer owns. Scoring, bandit and engine
// ranges are checked by recommendation.Config.Validate once the engine config
// is assembled.
func (c *Config) validate() error {
	if c.Database.Enabled && c.Database.Password == "" {
		return errors.New("missing database password")
	}

	return nil
}

// parser keeps the first parse failure so Load can report it once.
type parser struct {
	err error
}

func (p *parser) float(key string, defaultVal float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultVal
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
		err = errors.New("not a finite number")
	}
	if err != nil {
		p.fail(key, raw, err)
		return defaultVal
	}
	return v
}

func (p *parser) int(key string, defaultVal int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		p.fail(key, raw, err)
		return defaultVal
	}
	return v
}

func (p *parser) duration(key string, defaultVal time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultVal
	}
	v, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		p.fail(key, raw, err)
		return defaultVal
	}
	return v
}

func (p *parser) fail(key, raw string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid %s=%q: %w", key, raw, err)
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
