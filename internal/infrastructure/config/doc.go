// Package config loads and validates the Hearth Core configuration.
//
// Values resolve in three layers, later winning: hardcoded defaults, the
// YAML file, then HEARTH_* environment variables. Validation runs last and
// reports all problems at once.
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Hearth also runs without any file: config.Default() yields a working
// in-memory deployment, steered entirely by environment variables. Secrets
// like broker passwords and InfluxDB tokens belong in the environment, not
// the file.
package config
