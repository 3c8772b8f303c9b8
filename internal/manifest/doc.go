// Package manifest parses and validates extension descriptors.
//
// Every extension carries a plugin-info.json (or plugin-info.yaml) at its
// root declaring at minimum an id and a display name. The id must equal the
// name of the directory containing the descriptor; this identity invariant
// is enforced on install and again when extensions are loaded at startup.
package manifest
