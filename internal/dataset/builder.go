package dataset

import (
	"fmt"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

// Builder accumulates rows into an Arrow record column by column. Every row
// must set each column exactly once, in any order.
type Builder struct {
	b     *array.RecordBuilder
	index map[string]int
}

// NewBuilder creates a builder for schema.
func NewBuilder(schema Schema) *Builder {
	arrowSchema := schema.Arrow()
	index := make(map[string]int, len(schema.Columns))
	for i, c := range schema.Columns {
		index[c.Name] = i
	}
	return &Builder{
		b:     array.NewRecordBuilder(memory.NewGoAllocator(), arrowSchema),
		index: index,
	}
}

func (b *Builder) field(col string) array.Builder {
	i, ok := b.index[col]
	if !ok {
		panic(fmt.Sprintf("dataset: unknown column %q", col))
	}
	return b.b.Field(i)
}

// String appends v, or null when v is nil, to a string column.
func (b *Builder) String(col string, v *string) {
	fb := b.field(col).(*array.StringBuilder)
	if v == nil {
		fb.AppendNull()
		return
	}
	fb.Append(*v)
}

// Int appends v, or null, to an int column.
func (b *Builder) Int(col string, v *int64) {
	fb := b.field(col).(*array.Int64Builder)
	if v == nil {
		fb.AppendNull()
		return
	}
	fb.Append(*v)
}

// Double appends v, or null, to a double column.
func (b *Builder) Double(col string, v *float64) {
	fb := b.field(col).(*array.Float64Builder)
	if v == nil {
		fb.AppendNull()
		return
	}
	fb.Append(*v)
}

// List appends v to a list column. A nil slice is null; an empty non-nil
// slice is an empty list.
func (b *Builder) List(col string, v []string) {
	lb := b.field(col).(*array.ListBuilder)
	if v == nil {
		lb.AppendNull()
		return
	}
	lb.Append(true)
	vb := lb.ValueBuilder().(*array.StringBuilder)
	for _, s := range v {
		vb.Append(s)
	}
}

// Record returns the accumulated rows as a record and resets the builder.
// The caller owns the record and must Release it.
func (b *Builder) Record() arrow.Record {
	return b.b.NewRecord()
}

// Release frees the builder's buffers.
func (b *Builder) Release() {
	b.b.Release()
}
