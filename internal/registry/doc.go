// Package registry persists the record of installed extensions as a JSON
// document under the data directory. The registry is the single source of
// truth for what is installed; the on-disk extension directories are its
// working copies.
package registry
