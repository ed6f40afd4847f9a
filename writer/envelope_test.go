package writer

import (
	"encoding/json"
	"testing"
	"time"
)

func TestBuildEnvelopeShape(t *testing.T) {
	tb := sampleTable(4, 8)
	total := 2
	env := BuildEnvelope(tb, Meta{
		ConfigName:   "demo",
		BatchIndex:   1,
		TotalBatches: &total,
		Timestamp:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	})

	if env.BatchInfo.BatchIndex != 1 {
		t.Fatalf("batch_index = %d", env.BatchInfo.BatchIndex)
	}
	if env.BatchInfo.BatchSize != 4 {
		t.Fatalf("batch_size = %d", env.BatchInfo.BatchSize)
	}
	if env.BatchInfo.TotalBatches == nil || *env.BatchInfo.TotalBatches != 2 {
		t.Fatalf("total_batches = %v", env.BatchInfo.TotalBatches)
	}
	if env.BatchInfo.Timestamp != "2026-01-02T03:04:05Z" {
		t.Fatalf("timestamp = %q", env.BatchInfo.Timestamp)
	}
	if len(env.Data) != 4 {
		t.Fatalf("data rows = %d", len(env.Data))
	}
	if env.Metadata.Rows != 4 {
		t.Fatalf("metadata.rows = %d", env.Metadata.Rows)
	}
	if len(env.Metadata.Columns) != 2 {
		t.Fatalf("metadata.columns = %v", env.Metadata.Columns)
	}

	body, err := marshalEnvelope(env)
	if err != nil {
		t.Fatalf("marshalEnvelope: %v", err)
	}

	var generic map[string]any
	if err := json.Unmarshal(body, &generic); err != nil {
		t.Fatalf("envelope does not parse as JSON: %v", err)
	}
	for _, field := range []string{"batch_info", "data", "metadata"} {
		if _, ok := generic[field]; !ok {
			t.Fatalf("envelope missing field %q", field)
		}
	}
}

func TestBuildEnvelopeOmitsTotalBatchesWhenNil(t *testing.T) {
	env := BuildEnvelope(sampleTable(1, 0), Meta{})
	body, err := marshalEnvelope(env)
	if err != nil {
		t.Fatalf("marshalEnvelope: %v", err)
	}
	var generic map[string]any
	json.Unmarshal(body, &generic)
	batchInfo := generic["batch_info"].(map[string]any)
	if _, ok := batchInfo["total_batches"]; ok {
		t.Fatal("expected total_batches to be omitted when nil")
	}
}
