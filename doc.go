// Package geoprep contains the core components of geoprep, an engine for preparing tabular and
// spatial datasets. This root package defines the types employed by every other package (Schemas,
// Columns, ColumnTypes, Rows and the enumerations accepted by operations) and is a good overview
// of geoprep's key concepts. Datasets themselves live in the table package, operations in the
// operations/* packages, and the collection package ties them together.
package geoprep
