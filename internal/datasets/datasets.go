// Package datasets defines the published LDA datasets: their columns,
// catalog metadata and validation rules.
package datasets

import (
	"github.com/apache/arrow/go/v17/arrow"

	"github.com/dvloznov/lda-connector/internal/dataset"
)

// Definition describes one published dataset.
type Definition struct {
	ID          string
	Title       string
	Description string
	Schema      dataset.Schema
	Checks      []dataset.Check
}

// Validate runs the schema rules and then the dataset's checks against rec.
func (d Definition) Validate(rec arrow.Record) error {
	return dataset.Validate(rec, d.Schema, d.Checks...)
}

// All returns every dataset definition in publication order.
func All() []Definition {
	return []Definition{Filings, Activities}
}
