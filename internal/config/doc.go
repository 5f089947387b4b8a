// Package config loads, merges and validates the configuration of the sync
// client and the reference record backend.
//
// Sources are applied in this order, later non-zero values winning:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file (path from CONFIG or -c)
//
// [GetClientConfig] and [GetServerConfig] return validated, role-specific
// views of the merged [StructuredConfig].
package config
