// Package config loads and validates VRISA Core configuration.
//
// Configuration is read from a YAML file, merged over hardcoded defaults,
// and finally overridden by VRISA_* environment variables. Validation is
// strict: a missing JWT signing secret is a startup-fatal condition because
// every issued bearer token depends on it.
package config
