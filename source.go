package fieldpipe

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// RecordDecoder turns raw input into a record for Validator.Validate.
type RecordDecoder interface {
	Decode(data []byte) (map[string]any, error)
	Name() string
}

// JSONRecords decodes a JSON object with goccy/go-json. Numbers become
// float64.
func JSONRecords() RecordDecoder { return jsonRecords{} }

// YAMLRecords decodes a YAML mapping with yaml.v3. Nested mappings are
// normalized to map[string]any.
func YAMLRecords() RecordDecoder { return yamlRecords{} }

// DecoderFor picks a decoder from a file name: .yaml and .yml select YAML,
// everything else JSON.
func DecoderFor(path string) RecordDecoder {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAMLRecords()
	default:
		return JSONRecords()
	}
}

type jsonRecords struct{}

func (jsonRecords) Name() string { return "json" }

func (jsonRecords) Decode(data []byte) (map[string]any, error) {
	var rec map[string]any
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: json: %w", ErrDecode, err)
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: json: input is not an object", ErrDecode)
	}
	return rec, nil
}

type yamlRecords struct{}

func (yamlRecords) Name() string { return "yaml" }

func (yamlRecords) Decode(data []byte) (map[string]any, error) {
	var node any
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&node); err != nil {
		return nil, fmt.Errorf("%w: yaml: %w", ErrDecode, err)
	}
	rec := yamlToStringMap(node)
	if rec == nil {
		return nil, fmt.Errorf("%w: yaml: input is not a mapping", ErrDecode)
	}
	return rec, nil
}

func yamlToStringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[fmt.Sprint(k)] = yamlNormalizeValue(vv)
		}
		return out
	default:
		return nil
	}
}

func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return yamlToStringMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlNormalizeValue(t[i])
		}
		return arr
	default:
		return v
	}
}

// ValidateWith decodes data with dec and validates the resulting record.
// Decode failures wrap ErrDecode and are not NamedErrors.
func (v *Validator) ValidateWith(dec RecordDecoder, data []byte) (map[string]any, error) {
	rec, err := dec.Decode(data)
	if err != nil {
		return nil, err
	}
	return v.Validate(rec)
}

// ValidateJSON validates a JSON object.
func (v *Validator) ValidateJSON(data []byte) (map[string]any, error) {
	return v.ValidateWith(JSONRecords(), data)
}

// ValidateYAML validates a YAML mapping.
func (v *Validator) ValidateYAML(data []byte) (map[string]any, error) {
	return v.ValidateWith(YAMLRecords(), data)
}
