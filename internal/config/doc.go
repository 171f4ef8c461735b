// Package config provides configuration management for the internal API server.
//
// Configuration is read once from environment variables using the env
// package and is never reloaded. INTERNAL_TOKEN falls back to "secret" and
// PORT to 8080 when unset or blank.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("internal API will listen on %s\n", cfg.Addr())
package config
