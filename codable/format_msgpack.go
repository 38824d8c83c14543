package codable

import (
	"github.com/vmihailenco/msgpack/v5"
)

type msgpackFormat struct{}

func (msgpackFormat) Name() string { return "msgpack" }

func (msgpackFormat) Marshal(tree any) ([]byte, error) {
	return msgpack.Marshal(tree)
}

func (msgpackFormat) Unmarshal(data []byte) (any, error) {
	var v any
	if err := msgpack.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}
