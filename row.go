package geoprep

import "github.com/paulmach/orb"

// Row is a view of a single row of columnar data within a table,
// along with a reference to the Schema for that row. In practice,
// users of Row will call its getter and setter methods to retrieve,
// manipulate and store data.
type Row interface {
	Index() int                                               // Index returns the position of this Row within its table
	Schema() Schema                                           // Schema returns a read-only copy of the schema for a row
	ToString() string                                         // ToString returns a string representation of this row
	IsNil(colName string) bool                                // IsNil returns true iff the given column value is nil in this row. If an error occurs, this function will return false.
	SetNil(colName string) error                              // SetNil sets the given column value to nil within this row
	Get(colName string) (col interface{}, err error)          // Get returns the value of any column as an interface{}, if it exists
	GetBool(colName string) (col bool, err error)             // GetBool retrieves a single bool from the column with the given name
	GetInt64(colName string) (col int64, err error)           // GetInt64 retrieves a single int64 from the column with the given name
	GetFloat64(colName string) (col float64, err error)       // GetFloat64 retrieves a single float64 from the column with the given name. Int64 columns are widened.
	GetVarString(colName string) (col string, err error)      // GetVarString retrieves a single string from the column with the given name
	GetGeometry(colName string) (col orb.Geometry, err error) // GetGeometry retrieves a single geometry from the column with the given name
	Set(colName string, value interface{}) (err error)        // Set coerces value to the column's type and stores it
}
