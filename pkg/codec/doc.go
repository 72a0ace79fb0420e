// Package codec converts record values to and from the payload bytes that
// a record store checksums and writes.
//
// A Codec is the only thing a store knows about its value type. Marshal must
// be deterministic: a store skips writing when the new payload is byte for
// byte equal to the cached one, so equal values should encode identically.
//
// # Codecs
//
//   - Bytes and String store raw data unchanged.
//   - JSON and YAML encode Go structs with encoding/json and gopkg.in/yaml.v3.
//   - Proto encodes protocol buffer messages with deterministic marshaling.
//   - Zstd wraps any other codec and compresses its output.
//
// # Usage
//
//	type Settings struct {
//	    Theme string `json:"theme"`
//	}
//
//	c := codec.JSON[Settings]{}
//	payload, err := c.Marshal(Settings{Theme: "dark"})
//	if err != nil {
//	    return err
//	}
//	s, err := c.Unmarshal(payload)
//
// Unmarshal errors are reported as-is; the store classifies them as
// corruption.
package codec
