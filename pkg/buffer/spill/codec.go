package spill

import (
	"github.com/vmihailenco/msgpack/v5"
)

// Codec converts buffer items to and from the bytes stored in Redis.
type Codec[T any] interface {
	Marshal(item T) ([]byte, error)
	Unmarshal(data []byte) (T, error)
}

// MsgpackCodec encodes items with MessagePack. Struct fields honour
// `msgpack:"..."` tags.
type MsgpackCodec[T any] struct{}

// Marshal encodes item.
func (MsgpackCodec[T]) Marshal(item T) ([]byte, error) {
	return msgpack.Marshal(item)
}

// Unmarshal decodes data into a new T.
func (MsgpackCodec[T]) Unmarshal(data []byte) (T, error) {
	var item T
	err := msgpack.Unmarshal(data, &item)
	return item, err
}
