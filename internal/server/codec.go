package server

import (
	"encoding/json"
)

// jsonCodec lets the connect handlers carry plain Go structs as
// application/json bodies. It replaces connect's protobuf-backed "json" codec.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
