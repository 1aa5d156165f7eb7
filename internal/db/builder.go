package db

// IndexBuilder is a fluent builder for FT index definitions.
type IndexBuilder struct {
	def IndexDefinition
}

// NewIndex starts building an FT index definition over hashes.
func NewIndex(name string) *IndexBuilder {
	return &IndexBuilder{
		def: IndexDefinition{
			Name:        name,
			StorageType: StorageHash,
		},
	}
}

// Prefix adds key prefixes to the index.
func (b *IndexBuilder) Prefix(prefixes ...string) *IndexBuilder {
	b.def.Prefixes = append(b.def.Prefixes, prefixes...)
	return b
}

// Numeric adds a NUMERIC field to the index.
func (b *IndexBuilder) Numeric(name string) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{
		Name: name,
		Type: IndexFieldNumeric,
	})
	return b
}

// NumericSortable adds a NUMERIC SORTABLE field to the index.
func (b *IndexBuilder) NumericSortable(name string) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{
		Name:     name,
		Type:     IndexFieldNumeric,
		Sortable: true,
	})
	return b
}

// Tag adds a TAG field to the index.
func (b *IndexBuilder) Tag(name string) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{
		Name: name,
		Type: IndexFieldTag,
	})
	return b
}

// TagSortable adds a TAG SORTABLE field to the index.
func (b *IndexBuilder) TagSortable(name string) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{
		Name:     name,
		Type:     IndexFieldTag,
		Sortable: true,
	})
	return b
}

// TagWithSeparator adds a TAG field with a custom value separator.
func (b *IndexBuilder) TagWithSeparator(name, separator string) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{
		Name:         name,
		Type:         IndexFieldTag,
		TagSeparator: separator,
	})
	return b
}

// Text adds a TEXT field to the index.
func (b *IndexBuilder) Text(name string) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{
		Name: name,
		Type: IndexFieldText,
	})
	return b
}

// TextSortable adds a TEXT SORTABLE field to the index.
func (b *IndexBuilder) TextSortable(name string) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{
		Name:     name,
		Type:     IndexFieldText,
		Sortable: true,
	})
	return b
}

// VectorHNSW adds a VECTOR field with the HNSW algorithm.
func (b *IndexBuilder) VectorHNSW(name string, dim int, distance DistanceMetric, m, efConstruct int) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{
		Name:              name,
		Type:              IndexFieldVector,
		VectorAlgo:        VectorHNSW,
		VectorDim:         dim,
		VectorDistance:    distance,
		VectorM:           m,
		VectorEFConstruct: efConstruct,
	})
	return b
}

// Build validates and returns the index definition.
func (b *IndexBuilder) Build() (*IndexDefinition, error) {
	if err := b.def.Validate(); err != nil {
		return nil, err
	}
	return &b.def, nil
}

// MustBuild calls Build and panics on error.
func (b *IndexBuilder) MustBuild() *IndexDefinition {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}
	return def
}
