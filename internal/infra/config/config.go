package config

import (
	"log"

	"github.com/kelseyhightower/envconfig"
)

// AppConfig описывает конфигурацию бота.
type AppConfig struct {
	AppEnv string `envconfig:"APP_ENV" default:"dev"`
	Port   int    `envconfig:"PORT" default:"8080"`

	Telegram struct {
		Token       string `envconfig:"BOT_TOKEN" required:"true"`
		PollTimeout int    `envconfig:"TG_POLL_TIMEOUT" default:"30"`
	} `envconfig:""`

	// DeveloperChatID — единственный чат, которому разрешено пользоваться ботом.
	DeveloperChatID int64 `envconfig:"DEVELOPER_CHAT_ID" required:"true"`

	Files struct {
		Dir string `envconfig:"FILES_DIR" default:"/files"`
	} `envconfig:""`
}

// Load загружает конфиг из окружения.
func Load() AppConfig {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("не удалось загрузить конфиг: %v", err)
	}
	return cfg
}
