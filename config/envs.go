package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds the game and simulator settings.
type Config struct {
	Link       string // serial device path or ws:// url of the controller simulator
	Baud       int    // serial baud rate
	TPS        int    // game ticks per second
	Fullscreen bool
	LogLevel   log.Level
	DataDir    string // directory holding level_N.txt
	Debug      bool   // enables debug shortcuts and the overlay

	PadsimPort string
	PadsimBest int // best time reported on MENU, -1 when unset
}

const (
	DefaultLink = "/dev/ttyAMA1"
	DefaultBaud = 115200
	DefaultTPS  = 120
	DefaultData = "data"
	DefaultPort = "8080"
)

// Load reads an optional .env file and then the environment. Missing or
// unparsable values fall back to their defaults.
func Load(files ...string) Config {
	if err := godotenv.Load(files...); err != nil {
		log.Debugf("[config] .env not loaded: %v", err)
	}
	return Config{
		Link:       getEnv("MAZE_LINK", DefaultLink),
		Baud:       getEnvAsInt("MAZE_BAUD", DefaultBaud),
		TPS:        getEnvAsInt("MAZE_TPS", DefaultTPS),
		Fullscreen: getEnvAsBool("MAZE_FULLSCREEN", false),
		LogLevel:   getEnvAsLevel("MAZE_LOG_LEVEL", log.InfoLevel),
		DataDir:    getEnv("MAZE_DATA", DefaultData),
		Debug:      getEnvAsBool("MAZE_DEBUG", false),

		PadsimPort: getEnv("PADSIM_PORT", DefaultPort),
		PadsimBest: getEnvAsInt("PADSIM_BEST", -1),
	}
}

func getEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}

func getEnvAsInt(key string, fallback int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	value, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		log.Warnf("[config] %s=%q is not an integer, using %d", key, valueStr, fallback)
		return fallback
	}
	return value
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	value, err := strconv.ParseBool(strings.TrimSpace(valueStr))
	if err != nil {
		log.Warnf("[config] %s=%q is not a boolean, using %v", key, valueStr, fallback)
		return fallback
	}
	return value
}

func getEnvAsLevel(key string, fallback log.Level) log.Level {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	value, err := log.ParseLevel(strings.TrimSpace(valueStr))
	if err != nil {
		log.Warnf("[config] %s=%q is not a log level, using %s", key, valueStr, fallback)
		return fallback
	}
	return value
}
