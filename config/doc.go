// Package config resolves runtime settings from the environment and an
// optional YAML file, and builds the model and search provider the settings
// describe. Environment variables always win over file values so deployments
// can override a checked-in config without editing it.
package config
