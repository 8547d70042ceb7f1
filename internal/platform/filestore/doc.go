// Package filestore persists generated documents as plain text files, one
// file per successful output key. Every file is written through a temporary
// file and renamed into place, so a reader never observes a partial document
// and repeated saves of the same results produce byte-identical files.
package filestore
