// Package config provides type-safe environment variable loading with
// per-type caching. Each configuration struct is parsed once per
// process; later loads of the same type return the cached value.
//
// A .env file in the working directory is loaded automatically before
// the first parse, so local development does not need exported
// variables.
//
//	type ServerConfig struct {
//		Addr string `env:"SERVER_ADDR" envDefault:":8080"`
//	}
//
//	var cfg ServerConfig
//	config.MustLoad(&cfg)
package config
