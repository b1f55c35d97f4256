package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"db": map[string]interface{}{
			"path": "~/.todo/tasks.db",
		},
		"ui": map[string]interface{}{
			"colored_output": true,
			"markdown":       true,
			"word_wrap":      80,
		},
		"log": map[string]interface{}{
			"level":      "warn",
			"file":       "",
			"timestamps": false,
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}

func GetDefaultConfigPath() string {
	return "~/.todo/config.yaml"
}
