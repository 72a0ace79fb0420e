package codec

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Codec serializes values of type T.
type Codec[T any] interface {
	Marshal(v T) ([]byte, error)
	Unmarshal(data []byte) (T, error)
}

// Bytes stores a byte slice as the payload. Both directions copy, so the
// result of Unmarshal never aliases the payload buffer.
type Bytes struct{}

var _ Codec[[]byte] = Bytes{}

func (Bytes) Marshal(v []byte) ([]byte, error) {
	return append([]byte{}, v...), nil
}

func (Bytes) Unmarshal(data []byte) ([]byte, error) {
	return append([]byte{}, data...), nil
}

// String stores a string as the payload.
type String struct{}

var _ Codec[string] = String{}

func (String) Marshal(v string) ([]byte, error) {
	return []byte(v), nil
}

func (String) Unmarshal(data []byte) (string, error) {
	return string(data), nil
}

// JSON encodes T with encoding/json. Unknown fields are rejected on decode.
type JSON[T any] struct{}

func (JSON[T]) Marshal(v T) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "json marshal")
	}
	return data, nil
}

func (JSON[T]) Unmarshal(data []byte) (T, error) {
	var v T
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, errors.Wrap(err, "json unmarshal")
	}
	if dec.More() {
		return v, errors.New("json unmarshal: trailing data after value")
	}
	return v, nil
}

// YAML encodes T with gopkg.in/yaml.v3.
type YAML[T any] struct{}

func (YAML[T]) Marshal(v T) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "yaml marshal")
	}
	return data, nil
}

func (YAML[T]) Unmarshal(data []byte) (T, error) {
	var v T
	if err := yaml.Unmarshal(data, &v); err != nil {
		return v, errors.Wrap(err, "yaml unmarshal")
	}
	return v, nil
}
