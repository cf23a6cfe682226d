package bigquery

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/bigquery"
)

// maxLabelLength is the BigQuery limit on label keys and values.
const maxLabelLength = 63

// UpdateTableMetadataWithClient attaches md to datasetID.table. The update is
// conditioned on the table's current ETag.
func UpdateTableMetadataWithClient(ctx context.Context, client *bigquery.Client, datasetID, table string, md TableMetadata) error {
	t := client.Dataset(datasetID).Table(table)

	current, err := t.Metadata(ctx)
	if err != nil {
		return fmt.Errorf("UpdateTableMetadata: reading %s.%s: %w", datasetID, table, err)
	}

	update := bigquery.TableMetadataToUpdate{
		Name:        md.Title,
		Description: md.Description,
		Schema:      withDescriptions(current.Schema, md.ColumnDescriptions),
	}
	for k, v := range md.Labels {
		update.SetLabel(labelValue(k), labelValue(v))
	}

	if _, err := t.Update(ctx, update, current.ETag); err != nil {
		return fmt.Errorf("UpdateTableMetadata: updating %s.%s: %w", datasetID, table, err)
	}
	return nil
}

// withDescriptions returns a copy of schema with top-level field descriptions
// taken from descriptions. Fields without an entry keep their description.
func withDescriptions(schema bigquery.Schema, descriptions map[string]string) bigquery.Schema {
	out := make(bigquery.Schema, len(schema))
	for i, f := range schema {
		field := *f
		if d, ok := descriptions[field.Name]; ok && d != "" {
			field.Description = d
		}
		out[i] = &field
	}
	return out
}

// labelValue coerces s into the label alphabet: lowercase letters, digits,
// underscores and dashes, at most 63 characters.
func labelValue(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
		if b.Len() == maxLabelLength {
			break
		}
	}
	return b.String()
}
