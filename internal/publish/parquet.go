package publish

import (
	"bytes"
	"fmt"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/parquet"
	"github.com/apache/arrow/go/v17/parquet/compress"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"
)

// EncodeParquet serializes rec as a single snappy-compressed Parquet file.
// The Arrow schema, including column description metadata, is stored in the
// file footer.
func EncodeParquet(rec arrow.Record) ([]byte, error) {
	var buf bytes.Buffer

	props := parquet.NewWriterProperties(
		parquet.WithCompression(compress.Codecs.Snappy),
		parquet.WithDictionaryDefault(true),
		parquet.WithCreatedBy("lda-connector"),
	)
	arrowProps := pqarrow.NewArrowWriterProperties(
		pqarrow.WithStoreSchema(),
	)

	writer, err := pqarrow.NewFileWriter(rec.Schema(), &buf, props, arrowProps)
	if err != nil {
		return nil, fmt.Errorf("EncodeParquet: create writer: %w", err)
	}
	if err := writer.Write(rec); err != nil {
		writer.Close()
		return nil, fmt.Errorf("EncodeParquet: write record: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("EncodeParquet: close writer: %w", err)
	}
	return buf.Bytes(), nil
}
