package codable

import (
	"fmt"
	"strings"
)

// Format turns intermediate trees into bytes and back.
type Format interface {
	// Name returns the format identifier, e.g. "json".
	Name() string
	// Marshal serializes a tree produced by EncodeValue.
	Marshal(tree any) ([]byte, error)
	// Unmarshal parses data into a tree suitable for DecodeValue.
	Unmarshal(data []byte) (any, error)
}

var (
	JSON    Format = jsonFormat{}
	YAML    Format = yamlFormat{}
	CBOR    Format = cborFormat{}
	MsgPack Format = msgpackFormat{}
)

// Formats returns all built-in formats.
func Formats() []Format {
	return []Format{JSON, YAML, CBOR, MsgPack}
}

// FormatByName returns the built-in format with the given name.
func FormatByName(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json", "j":
		return JSON, nil
	case "yaml", "yml", "y":
		return YAML, nil
	case "cbor":
		return CBOR, nil
	case "msgpack", "messagepack":
		return MsgPack, nil
	}
	return nil, fmt.Errorf("unknown format %q", name)
}

// Marshal encodes v and serializes it with f.
func Marshal(f Format, v any) ([]byte, error) {
	tree, err := EncodeValue(v)
	if err != nil {
		return nil, err
	}
	data, err := f.Marshal(tree)
	if err != nil {
		return nil, &EncodingError{Message: "cannot write " + f.Name(), Err: err}
	}
	return data, nil
}

// Unmarshal parses data with f and decodes it into dst.
func Unmarshal(f Format, data []byte, dst any) error {
	tree, err := f.Unmarshal(data)
	if err != nil {
		return &DecodingError{Kind: DataCorrupted, Message: "invalid " + f.Name(), Err: err}
	}
	return DecodeValue(tree, dst)
}
