package codable

import (
	"github.com/goccy/go-yaml"
)

type yamlFormat struct{}

func (yamlFormat) Name() string { return "yaml" }

func (yamlFormat) Marshal(tree any) ([]byte, error) {
	return yaml.MarshalWithOptions(toYAML(tree), yaml.UseJSONMarshaler())
}

func (yamlFormat) Unmarshal(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// toYAML replaces objects with ordered map slices.
func toYAML(v any) any {
	switch x := v.(type) {
	case *Object:
		res := make(yaml.MapSlice, 0, x.Len())
		for _, k := range x.keys {
			res = append(res, yaml.MapItem{Key: k, Value: toYAML(x.values[k])})
		}
		return res
	case []any:
		res := make([]any, len(x))
		for i := range x {
			res[i] = toYAML(x[i])
		}
		return res
	}
	return v
}
