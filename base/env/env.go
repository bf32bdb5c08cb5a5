package env

import (
	"os"
)

// PodName example: k8ssta-goauction-keeper-6868d88fbd-bz8zv
func PodName() string {
	return os.Getenv("PODNAME")
}

// EnvName example: k8ssta
func EnvName() string {
	return os.Getenv("ENV_NAME")
}

// AppName example: keeper
func AppName() string {
	return os.Getenv("APP_NAME")
}

// ConfigPath overrides the default config file location when set
func ConfigPath(fallback string) string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return fallback
}
