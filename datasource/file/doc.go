// Package file provides a DataSource which reads Tables from files on disk, choosing
// a parser by file extension (.csv, .tsv, .txt, .jsonl, .ndjson, .db, .sqlite), with
// optional .lz4 or .zst compression of text formats. Several files are read
// concurrently and returned in the order they were requested.
package file
