// Package config loads typed configuration from environment variables.
//
// Values are parsed with caarlos0/env into structs tagged with env and
// envDefault. A .env file in the working directory is read once, on first
// use, through joho/godotenv; variables already set in the process win.
//
//	type appConfig struct {
//		Server server.Config  // SERVER_*, REQUEST_*
//		Log    logger.Config  // LOG_LEVEL, LOG_FORMAT, APP_NAME
//	}
//
//	var cfg appConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// MustLoad panics instead of returning the error, for use in main.
//
// Load caches the result per type: a second Load of the same type returns the
// first result without reading the environment again. Parse skips both the
// cache and the .env file and reads only the given variables, which keeps
// tests independent of the process environment:
//
//	var cfg request.Config
//	err := config.Parse(&cfg, map[string]string{
//		"REQUEST_TRUSTED_PROXIES": "10.0.0.0/8",
//	})
package config
