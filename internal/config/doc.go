// Package config loads, merges and validates the service configuration.
//
// Sources, in increasing priority (later non-zero fields override earlier):
//  1. .env file
//  2. Environment variables
//  3. Command-line flags
//  4. JSON config file
//
// Missing values are filled with defaults before validation. The entry point
// is [GetStructuredConfig].
package config
