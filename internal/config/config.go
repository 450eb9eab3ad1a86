package config

import (
	"log"
	"os"
)

type Config struct {
	Port      string
	DBDSN     string
	DataDir   string
	RedisAddr string
	LogFile   string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "festpos.db"
	} // sqlite file in project root
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data" // local order snapshots live here
	}
	redisAddr := os.Getenv("REDIS_ADDR") // empty disables event publishing
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./festpos.log"
	}

	cfg := Config{Port: port, DBDSN: dsn, DataDir: dataDir, RedisAddr: redisAddr, LogFile: logFile}
	log.Printf("[config] PORT=%s DB_DSN=%s DATA_DIR=%s REDIS_ADDR=%s LOG_FILE=%s",
		cfg.Port, cfg.DBDSN, cfg.DataDir, cfg.RedisAddr, cfg.LogFile)
	return cfg
}
