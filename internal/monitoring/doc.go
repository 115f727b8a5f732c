// Package monitoring holds the environmental monitoring domain: institutes
// and their stations, the devices installed at stations, the pollution
// alerts those devices raise, and the user registrations that subscribe
// accounts to institutes and stations.
//
// Each resource has a SQLite-backed repository. List operations accept
// query-parameter filters described by a FilterSpec, which maps exposed
// parameter names onto columns and comparison kinds.
package monitoring
