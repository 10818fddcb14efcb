// Package config loads environment-based configuration into typed structs.
//
// Each package that needs configuration declares its own Config struct with
// `env` tags; the process entrypoint loads them all at startup:
//
//	var pgCfg pg.Config
//	config.MustLoad(&pgCfg)
//
// A .env file in the working directory is honored for local development;
// variables already present in the environment take precedence.
package config
