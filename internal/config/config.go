package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppConfig     *AppConfig
	ServerConfig  *ServerConfig
	BrowserConfig *BrowserConfig
	FizzoConfig   *FizzoConfig
}

type AppConfig struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Debug    bool   `envconfig:"DEBUG" default:"false"`
}

type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"7860"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"6m"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
}

type BrowserConfig struct {
	Headless      bool   `envconfig:"BROWSER_HEADLESS" default:"true"`
	SlowMo        int    `envconfig:"BROWSER_SLOW_MO" default:"0"`
	Timeout       int    `envconfig:"BROWSER_TIMEOUT" default:"30000"`
	UserAgent     string `envconfig:"BROWSER_USER_AGENT" default:"Mozilla/5.0 (iPhone; CPU iPhone OS 14_7_1 like Mac OS X) AppleWebKit/605.1.15"`
	ScreenshotDir string `envconfig:"BROWSER_SCREENSHOT_DIR" default:"/tmp"`
	Screenshots   bool   `envconfig:"BROWSER_SCREENSHOTS" default:"true"`
}

// FizzoConfig carries the site-specific tunables. The settle delays exist
// because load-completion signals from the site are not trustworthy; they are
// configuration, not hidden constants, so deployments can shorten them once
// the site exposes a real readiness signal.
type FizzoConfig struct {
	LoginURL         string        `envconfig:"FIZZO_LOGIN_URL" default:"https://fizzo.org/login"`
	MaxLoginRetries  int           `envconfig:"FIZZO_MAX_LOGIN_RETRIES" default:"3"`
	RetryBaseDelay   time.Duration `envconfig:"FIZZO_RETRY_BASE_DELAY" default:"2s"`
	FormSettleDelay  time.Duration `envconfig:"FIZZO_FORM_SETTLE_DELAY" default:"3s"`
	LoginSettleDelay time.Duration `envconfig:"FIZZO_LOGIN_SETTLE_DELAY" default:"5s"`
	ClickSettleDelay time.Duration `envconfig:"FIZZO_CLICK_SETTLE_DELAY" default:"2s"`
	SelectorTimeout  int           `envconfig:"FIZZO_SELECTOR_TIMEOUT" default:"2000"`
	MinChapterLength int           `envconfig:"FIZZO_MIN_CHAPTER_LENGTH" default:"1000"`
	MaxChapterLength int           `envconfig:"FIZZO_MAX_CHAPTER_LENGTH" default:"60000"`
}

func GetConfig() (*Config, error) {
	_ = godotenv.Load()

	var conf Config

	if err := envconfig.Process("", &conf); err != nil {
		return nil, fmt.Errorf("read config from env vars: %w", err)
	}

	return &conf, nil
}
