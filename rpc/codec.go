package rpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// jsonCodec implements google.golang.org/grpc/encoding.Codec using
// encoding/json instead of protobuf wire encoding. This module has no
// .proto compiler in its build,
// so the request/response types below are plain Go structs rather than
// protoc-gen-go output; a JSON codec lets them travel over a real
// grpc.Server/grpc.ClientConn without requiring generated proto.Message
// implementations. Registering it under the name "proto" makes it the
// codec grpc-go selects by default, since a client that sets no explicit
// content-subtype asks for "proto".
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

func (jsonCodec) Name() string { return "proto" }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
