// Package fetch retrieves log archives and materializes them as local files.
//
// Source is the single abstraction the extractor consumes: Fetch places
// the archive into the run's workspace directory and returns its path.
// Everything slow or failure-prone about retrieval (network, credentials,
// retries, cancellation) lives behind this interface; the extraction core
// only ever sees a local file.
//
// # Built-in Sources
//
//   - Local: a file already on disk (no copy)
//   - HTTP: ranged parallel download with optional byte-rate throttling
//   - s3.Source: Amazon S3 via the transfer manager
//   - minio.Source: MinIO and other S3-compatible stores
//
// All sources honor context cancellation; cancellation and timeout policy
// belongs here, not in the search core, which is bounded by file size.
package fetch
