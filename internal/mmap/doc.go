// Package mmap provides read-only memory-mapped file access.
//
// # Overview
//
// Memory mapping gives the extractor random access to a multi-gigabyte
// log file by byte offset without explicit seek/read calls: the binary
// search probes arbitrary offsets and the forward scan reads one
// contiguous run, all against the same mapped view.
//
// # Usage
//
//	m, err := mmap.Open("app.log")
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes()
//
//	// Hint the kernel about the upcoming access pattern
//	m.Advise(mmap.AccessRandom)
//
// # Platform Support
//
// The package provides a unified API across platforms:
//
//   - Unix (Linux, macOS, BSD): Uses mmap(2) with madvise(2) for access hints
//   - Windows: Uses CreateFileMapping/MapViewOfFile (madvise is a no-op)
//
// # Lifetime
//
// A Mapping is exclusively owned by one extraction run. Close() is
// idempotent and protected by an atomic flag, but callers must ensure
// nothing touches Bytes() after Close() returns.
package mmap
