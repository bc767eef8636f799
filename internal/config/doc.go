// Package config loads the application settings from
// $HOME/.dolmetscher.yaml and DOLMETSCHER_* environment variables.
package config
