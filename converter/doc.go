/*
Package converter provides bidirectional value converters between domain and
storage representations.

A Converter is bound to a column, either through the `conv=<name>` option of the
entity struct tag or with registry.BindConverter. The commit pipeline calls
Convert on every bound column immediately before a row is handed to storage;
entitymapper.Materialize calls ConvertBack when a stored row is read back.

Built-in converters:

	converter.StringList(';')   // []string        <-> "a;b;c"
	converter.JSON[Address]()   // *Address        <-> JSON text
	converter.DateTime()        // strfmt.DateTime <-> RFC3339 (nanoseconds)
	converter.UUID()            // uuid.UUID       <-> canonical string

Custom converters are built from a typed pair of functions:

	upper := converter.Func(
	    func(s string) (string, error) { return strings.ToUpper(s), nil },
	    func(s string) (string, error) { return strings.ToLower(s), nil },
	)

Every converter owns its edge-case policy for nil and empty values and must be
round-trip stable for each value it accepts. Values it cannot round-trip are
rejected with a validation error.
*/
package converter
