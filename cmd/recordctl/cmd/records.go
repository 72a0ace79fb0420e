package cmd

import (
	"path/filepath"

	"github.com/ssargent/recordstore/pkg/api"
	"github.com/ssargent/recordstore/pkg/codec"
	"github.com/ssargent/recordstore/pkg/config"
	"github.com/ssargent/recordstore/pkg/store"
)

// withRecordStore opens the configured backend and runs fn against the
// store for name. Payloads are zstd-compressed when compress is set.
func withRecordStore(settings *config.Config, name string, compress bool, fn func(rs *store.RecordStore[[]byte]) error) error {
	if err := api.ValidateName(name); err != nil {
		return err
	}

	backend, err := getContainer().GetStorageFactory().OpenBackend(settings.Backend, settings.DataDir)
	if err != nil {
		return err
	}
	defer func() { _ = backend.Close() }()

	var c codec.Codec[[]byte] = codec.Bytes{}
	if compress {
		z, err := codec.NewZstd[[]byte](codec.Bytes{})
		if err != nil {
			return err
		}
		defer func() { _ = z.Close() }()
		c = z
	}

	rs := store.NewRecordStore[[]byte](backend.Storage, c, store.RecordStoreConfig{
		Path:           filepath.Join(backend.Root, name),
		MaxPayloadSize: settings.MaxPayloadSize,
		Logger:         newLogger(settings.Logging.Level),
	})
	return fn(rs)
}

func writeRecord(settings *config.Config, name string, data []byte, compress bool) error {
	return withRecordStore(settings, name, compress, func(rs *store.RecordStore[[]byte]) error {
		return rs.Write(data)
	})
}

func readRecord(settings *config.Config, name string, compress bool) ([]byte, error) {
	var data []byte
	err := withRecordStore(settings, name, compress, func(rs *store.RecordStore[[]byte]) error {
		value, err := rs.Read()
		data = value
		return err
	})
	return data, err
}

func inspectRecord(settings *config.Config, name string) (*store.HeaderInfo, error) {
	if err := api.ValidateName(name); err != nil {
		return nil, err
	}

	backend, err := getContainer().GetStorageFactory().OpenBackend(settings.Backend, settings.DataDir)
	if err != nil {
		return nil, err
	}
	defer func() { _ = backend.Close() }()

	maxFileSize := int64(settings.MaxPayloadSize) + store.HeaderSize
	return store.Inspect(backend.Storage, filepath.Join(backend.Root, name), maxFileSize)
}
