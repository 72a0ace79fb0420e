package codec

import (
	"github.com/cockroachdb/errors"
	"google.golang.org/protobuf/proto"
)

// Proto encodes protocol buffer messages. T is the generated message
// pointer type, e.g. Proto[*configpb.Settings].
type Proto[T proto.Message] struct{}

var marshalOptions = proto.MarshalOptions{Deterministic: true}

func (Proto[T]) Marshal(v T) ([]byte, error) {
	data, err := marshalOptions.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "proto marshal")
	}
	return data, nil
}

func (Proto[T]) Unmarshal(data []byte) (T, error) {
	var zero T
	// generated messages support ProtoReflect on a nil receiver
	msg, ok := zero.ProtoReflect().New().Interface().(T)
	if !ok {
		return zero, errors.Newf("proto unmarshal: cannot allocate %T", zero)
	}
	if err := proto.Unmarshal(data, msg); err != nil {
		return zero, errors.Wrap(err, "proto unmarshal")
	}
	return msg, nil
}
