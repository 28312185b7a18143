// Package archive unpacks dataset archives before the inputs are read.
//
// Only zip archives are supported. Entries are extracted under a single
// destination directory; entries that would escape it are rejected.
package archive
