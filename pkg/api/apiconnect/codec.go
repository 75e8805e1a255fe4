package apiconnect

import (
	"encoding/json"
	"fmt"
)

// Codec is the Connect JSON codec for aequitally messages. It is registered
// under "json" so it replaces connect's protojson default, which only accepts
// generated messages. Timestamps still marshal through protojson (see api.Timestamp).
type Codec struct{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal into %T: %w", v, err)
	}
	return nil
}
