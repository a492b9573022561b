// Package config defines reconciler settings and provides helpers to load,
// validate and save them in YAML format.
//
// The Config type holds the release feed endpoint, the staging directory and
// the platform-specific knobs of the install workflow. Omitted fields fall
// back to defaults during validation.
package config
