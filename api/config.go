package api

import (
	"sync"
	"time"

	"github.com/alex-pricope/nomination-board/logging"
	"github.com/alex-pricope/nomination-board/storage"
	"github.com/spf13/viper"
)

type Config struct {
	StorageConfig
	ServerConfig
	AuthConfig
	SeedEnabled       bool
	ReconcileSchedule string
	LogLevel          string
}

type StorageConfig struct {
	Backend        string
	DSN            string
	DynamoEndpoint string
	Tables         storage.DynamoTables
}

type ServerConfig struct {
	Port int
	Mode string
}

type AuthConfig struct {
	JWTSecret            string
	TokenTTL             time.Duration
	DefaultAdminUser     string
	DefaultAdminPassword string
}

var settingsOnce sync.Once

func ReadConfig() *Config {

	var conf = &Config{
		StorageConfig: StorageConfig{
			Backend:        getStringOrDefault("storage.backend", "memory"),
			DSN:            getStringOrDefault("storage.dsn", ""),
			DynamoEndpoint: getStringOrDefault("storage.dynamoEndpoint", ""),
			Tables: storage.DynamoTables{
				Persons:      getStringOrDefault("storage.tableNamePersons", "Persons"),
				Nominations:  getStringOrDefault("storage.tableNameNominations", "Nominations"),
				Votes:        getStringOrDefault("storage.tableNameVotes", "Votes"),
				PointReasons: getStringOrDefault("storage.tableNamePointReasons", "PointReasons"),
				Admins:       getStringOrDefault("storage.tableNameAdmins", "Admins"),
			},
		},
		ServerConfig: ServerConfig{
			Port: getIntOrDefault("server.port", 8080),
			Mode: getStringOrDefault("server.mode", "debug"),
		},
		AuthConfig: AuthConfig{
			JWTSecret:            getString("auth.jwtSecret"),
			TokenTTL:             getDurationOrDefault("auth.tokenTTL", 24*time.Hour),
			DefaultAdminUser:     getStringOrDefault("auth.defaultAdminUser", "admin"),
			DefaultAdminPassword: getStringOrDefault("auth.defaultAdminPassword", ""),
		},
		SeedEnabled:       getBoolOrDefault("seed.enabled", true),
		ReconcileSchedule: getStringOrDefault("reconcile.schedule", ""),
		LogLevel:          getStringOrDefault("log.level", "info"),
	}

	settingsOnce.Do(func() {
		logging.Log.Print("Reading settings!")
	})

	return conf
}

func getString(name string) string {
	if viper.IsSet(name) {
		v := viper.GetString(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Fatalf("required environment variable '%s' is missing", name)
	return ""
}

func getIntOrDefault(name string, def int) int {
	if viper.IsSet(name) {
		v := viper.GetInt(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getBoolOrDefault(name string, def bool) bool {
	if viper.IsSet(name) {
		v := viper.GetBool(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getStringOrDefault(name string, def string) string {
	if viper.IsSet(name) {
		v := viper.GetString(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getDurationOrDefault(name string, def time.Duration) time.Duration {
	if viper.IsSet(name) {
		v := viper.GetDuration(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}
