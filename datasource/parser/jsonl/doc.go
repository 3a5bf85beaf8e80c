// Package jsonl provides a parser for JSON lines data, where each line holds one
// JSON object. Top-level keys become columns, in order of first appearance.
package jsonl
