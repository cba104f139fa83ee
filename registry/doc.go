/*
Package registry resolves and caches entity metadata for entitymapper.

Metadata is declared with the `entity` struct tag and resolved once per Go type:

	type Person struct {
	    ID        int64    `entity:"Id,key,gen=custom"`
	    FirstName string   `entity:"FirstName"`
	    Tags      []string `entity:"Tags,conv=stringlist"`
	    Cache     string   `entity:"-"`
	}

	meta, err := registry.ResolveFor[Person]()

Tag grammar: the first element is the column name (defaults to the field name),
followed by options:
  - key: marks the surrogate key; exactly one field must carry it and it must be an integer
  - gen=none|custom|store: key generation strategy (default none)
  - conv=<name>: converter registered with RegisterConverter

Exported fields without a tag are stored under their field name; `entity:"-"` skips a field.
A type with no key field fails with a MetadataError.

Converter Registry:
Named converters are registered process-wide. "stringlist", "datetime" and "uuid"
are pre-registered:

	registry.RegisterConverter("address", converter.JSON[Address]())

Overrides:
Generated code may replace reflective key access with typed accessors, and converters
can be bound without tags. Both must happen before the type is first resolved,
typically in init():

	registry.RegisterKeyAccessor(
	    func(p *Person) int64 { return p.ID },
	    func(p *Person, v int64) { p.ID = v },
	)
	registry.BindConverter[Person]("Tags", converter.StringList(','))

The registry is thread-safe. Resolution results are immutable and shared.
*/
package registry
