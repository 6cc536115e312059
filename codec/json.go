package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// Rating batches are plain structs and slices, which JSON handles without
// surprises. Use it when the lowest-dependency option matters more than
// encode throughput; for bulk snapshot writes the default codec is faster.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }
