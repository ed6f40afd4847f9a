// Package config defines the declarative configuration document a run is
// built from, and loads/validates it per the external interfaces in use.
package config

import (
	"fmt"
	"time"
)

// Document is the top-level configuration: metadata, output schema, the
// ordered list of per-column strategy declarations, and the file/stream/
// batch writer sections.
type Document struct {
	Metadata   Metadata           `yaml:"metadata"`
	ColumnName []string           `yaml:"column_name"`
	NumOfRows  int                `yaml:"num_of_rows"`
	Shuffle    *bool              `yaml:"shuffle"`
	Seed       *uint64            `yaml:"seed,omitempty"`
	Configs    []StrategyConfig   `yaml:"configs"`
	FileWriter []FileWriterConfig `yaml:"file_writer,omitempty"`

	// Side documents: mutually exclusive running-mode hints.
	Streaming   *StreamingConfig   `yaml:"streaming,omitempty"`
	AMQP        *AMQPConfig        `yaml:"amqp,omitempty"`
	Kafka       *KafkaConfig       `yaml:"kafka,omitempty"`
	BatchWriter *BatchWriterConfig `yaml:"batch_writer,omitempty"`
}

// Metadata is freeform, carried through into run outputs unchanged.
type Metadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Version     string `yaml:"version,omitempty"`
}

// StrategyConfig is a per-column declaration: the target column names, the
// strategy to run, its parameters, and the optional mask/intermediate/
// disabled flags.
type StrategyConfig struct {
	Names        []string     `yaml:"names"`
	Strategy     StrategySpec `yaml:"strategy"`
	Mask         string       `yaml:"mask,omitempty"`
	Intermediate bool         `yaml:"intermediate,omitempty"`
	Disabled     bool         `yaml:"disabled,omitempty"`
}

// StrategySpec names a strategy variant from the closed set and carries
// its strategy-specific parameter map.
type StrategySpec struct {
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:"params"`
	Unique bool           `yaml:"unique,omitempty"`
}

// FileWriterConfig is one (format, path, params) entry of the file_writer
// list.
type FileWriterConfig struct {
	Type   string         `yaml:"type"`
	Params map[string]any `yaml:"params"`
}

// StreamingConfig controls chunk/batch sizing for StreamingProcessor and
// whether the message envelope's metadata block is populated.
type StreamingConfig struct {
	BatchSize       int  `yaml:"batch_size"`
	ChunkSize       int  `yaml:"chunk_size"`
	IncludeMetadata bool `yaml:"include_metadata"`
}

// AMQPConfig describes an AMQP queue endpoint for StreamWriter.
type AMQPConfig struct {
	URL         string   `yaml:"url"`
	Queue       string   `yaml:"queue"`
	Username    string   `yaml:"username,omitempty"`
	Password    string   `yaml:"password,omitempty"`
	VirtualHost string   `yaml:"virtual_host,omitempty"`
	Heartbeat   Duration `yaml:"heartbeat,omitempty"`
}

// KafkaConfig describes a Kafka topic for StreamWriter.
type KafkaConfig struct {
	BootstrapServers string `yaml:"bootstrap_servers"`
	Topic            string `yaml:"topic"`
	Username         string `yaml:"username,omitempty"`
	Password         string `yaml:"password,omitempty"`
}

// BatchWriterConfig describes the BatchWriter's file-per-batch layout.
type BatchWriterConfig struct {
	OutputDir  string `yaml:"output_dir"`
	FilePrefix string `yaml:"file_prefix"`
	FileFormat string `yaml:"file_format"`
	BatchSize  int    `yaml:"batch_size"`
	ChunkSize  int    `yaml:"chunk_size"`
}

// Duration wraps time.Duration for YAML string parsing (e.g. "10s", "5m").
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses a duration string like "10s" or "5m30s".
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// ShuffleEnabled returns the effective shuffle setting, defaulting to true
// when the document does not specify one.
func (d *Document) ShuffleEnabled() bool {
	if d.Shuffle == nil {
		return true
	}
	return *d.Shuffle
}

// Mode classifies which running mode this document selects: "stream" when
// a streaming side document is present, "batch" when a batch_writer side
// document is present, "normal" otherwise. Validate rejects documents that
// set both.
type Mode string

const (
	ModeNormal Mode = "normal"
	ModeStream Mode = "stream"
	ModeBatch  Mode = "batch"
)

// Mode returns the running mode this document selects, independent of
// whether that selection is valid (Validate is responsible for rejecting
// a simultaneous stream+batch selection).
func (d *Document) Mode() Mode {
	hasStream := d.Streaming != nil || d.AMQP != nil || d.Kafka != nil
	hasBatch := d.BatchWriter != nil
	switch {
	case hasStream && !hasBatch:
		return ModeStream
	case hasBatch && !hasStream:
		return ModeBatch
	case hasStream && hasBatch:
		// Ambiguous; Validate reports this as CFG_MODE_CONFLICT. Return
		// ModeStream here so callers that skip validation still get a
		// deterministic (if wrong) answer rather than a panic.
		return ModeStream
	default:
		return ModeNormal
	}
}
