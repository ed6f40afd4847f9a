package writer

import (
	"encoding/json"
	"time"

	"github.com/genforge/genforge/table"
)

// BatchInfo is the envelope's batch_info block.
type BatchInfo struct {
	BatchIndex   int    `json:"batch_index"`
	BatchSize    int    `json:"batch_size"`
	TotalBatches *int   `json:"total_batches,omitempty"`
	ConfigName   string `json:"config_name"`
	Timestamp    string `json:"timestamp"`
}

// EnvelopeMetadata is the envelope's metadata block.
type EnvelopeMetadata struct {
	Rows    int               `json:"rows"`
	Columns []string          `json:"columns"`
	Dtypes  map[string]string `json:"dtypes"`
}

// Envelope is the message shape every StreamWriter publish and every
// non-JSON BatchWriter sidecar carries: batch_info, data, metadata.
type Envelope struct {
	BatchInfo BatchInfo        `json:"batch_info"`
	Data      []map[string]any `json:"data"`
	Metadata  EnvelopeMetadata `json:"metadata"`
}

// BuildEnvelope assembles the envelope for one chunk.
func BuildEnvelope(t *table.Table, meta Meta) Envelope {
	rows := t.RowMaps()
	return Envelope{
		BatchInfo: BatchInfo{
			BatchIndex:   meta.BatchIndex,
			BatchSize:    t.Rows(),
			TotalBatches: meta.TotalBatches,
			ConfigName:   meta.ConfigName,
			Timestamp:    meta.Timestamp.UTC().Format(time.RFC3339),
		},
		Data: rows,
		Metadata: EnvelopeMetadata{
			Rows:    len(rows),
			Columns: t.ColumnNames(),
			Dtypes:  t.Dtypes(),
		},
	}
}

// marshalEnvelope serializes an envelope to its wire JSON form.
func marshalEnvelope(env Envelope) ([]byte, error) {
	return json.Marshal(env)
}
