// Package collection holds the ordered tabular and spatial datasets of a preparation
// session and applies operations to them by index. Every mutating operation computes a
// new dataset and replaces the slot it was applied to. Ingestion and persistence go
// through the collaborators bundled in a Storage.
//
// A Collection is owned by a single caller and is not safe for concurrent use.
package collection
