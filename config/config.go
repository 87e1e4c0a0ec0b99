package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging     LoggingConfig `yaml:"logging"`
	GeminiModel string        `yaml:"gemini_model"`
	Upload      UploadConfig  `yaml:"upload"`
	Auth        AuthConfig    `yaml:"auth"`

	// Secrets come from the environment (.env), not from config.yaml.
	GeminiApiKey      string `yaml:"-"`
	MongoURI          string `yaml:"-"`
	MongoDBName       string `yaml:"-"`
	JWTSecret         string `yaml:"-"`
	GoogleClientID    string `yaml:"-"`
	FacebookAppID     string `yaml:"-"`
	FacebookAppSecret string `yaml:"-"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// UploadConfig bounds the multipart upload path.
type UploadConfig struct {
	// MaxFileSizeBytes is the hard cap for a single uploaded file.
	// 0 falls back to 10MB.
	MaxFileSizeBytes int64 `yaml:"max_file_size_bytes"`
}

// AuthConfig holds token lifetime tunables.
type AuthConfig struct {
	// UserTokenTTLMinutes is the lifetime of tokens issued to registered
	// users. 0 falls back to 24 hours.
	UserTokenTTLMinutes int `yaml:"user_token_ttl_minutes"`

	// GuestTokenTTLMinutes is the lifetime of guest session tokens.
	// 0 falls back to 1 hour.
	GuestTokenTTLMinutes int `yaml:"guest_token_ttl_minutes"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}

	c.GeminiApiKey = os.Getenv("GEMINI_API_KEY")
	c.MongoURI = os.Getenv("MONGODB_URI")
	c.MongoDBName = os.Getenv("MONGODB_DB_NAME")
	c.JWTSecret = os.Getenv("JWT_SECRET")
	c.GoogleClientID = os.Getenv("GOOGLE_OAUTH_CLIENT_ID")
	c.FacebookAppID = os.Getenv("FACEBOOK_APP_ID")
	c.FacebookAppSecret = os.Getenv("FACEBOOK_APP_SECRET")

	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
