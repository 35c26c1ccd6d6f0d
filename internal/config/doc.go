// Package config holds the configuration for a conversion run.
//
// Configuration comes from CLI flags, optionally layered on top of a YAML
// config file (.nmapdoc) that provides defaults for the policy options.
// The resulting Config value is passed explicitly into each stage; there
// is no ambient or global configuration state.
package config
