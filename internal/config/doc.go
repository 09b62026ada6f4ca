// Package config resolves the server configuration.
//
// Values come from three sources, applied per field in this order of
// precedence:
//  1. explicit overrides passed by the caller
//  2. the environment mapping
//  3. literal defaults
//
// [ReadEnv] takes the environment as an explicit argument and returns an
// immutable [*ServerConfig]; [ReadProcessEnv] is the convenience entry point
// used at process start. Secondary values such as the origin and the storage
// modes are computed by accessor methods on every read.
package config
