package server

import (
	"encoding/json"
	"fmt"
)

// jsonCodec carries plain Go structs over Connect with encoding/json.
// It replaces the default protojson codec, so handlers need no generated code.
type jsonCodec struct{}

func (jsonCodec) Name() string {
	return "json"
}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal > %w", err)
	}
	return data, nil
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("json.Unmarshal > %w", err)
	}
	return nil
}
