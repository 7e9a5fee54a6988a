// Package archive materializes the log file out of a fetched archive.
//
// The container format is sniffed from magic bytes, never from the file
// name: zip archives are searched for their single .log/.txt entry, and
// gzip, zstd and lz4 streams are decompressed in full. A file that matches
// no known magic is assumed to be the plain log itself and is used as-is.
//
// One archive holds exactly one log file; multi-file archives are not
// supported.
package archive
