// Package config defines the typed model of a block group, as read from an
// evaluated _blocks_data.json document, along with the Loader interface used
// to produce it.
//
// The document is checked against an embedded JSON schema before the typed
// parse, so most shape errors are reported with the location of the
// offending value. The parse repeats the checks it relies on.
package config
