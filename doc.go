package jsonshape

// Package jsonshape converts between a generic JSON value tree and plain Go
// structs without per-type conversion code.
//
// - Value is the dynamically-typed tree produced by the parsers under source/.
// - Bind[T] builds an immutable per-type schema once, via reflection.
// - Schema.Decode maps an Object value onto T (strict or lenient).
// - Encode streams any encodable value to a Sink as JSON text.
// - A stable error model via Issues (JSON Pointer, code, message).
//
// Design policy:
// - Keep only public APIs in the root package; parser collaborators live
//   under source/.
// - Schemas are built once per type and never mutated afterwards.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	s := jsonshape.MustBind[Config]()
//	v, err := gojson.ParseBytes(data)
//	cfg, err := s.Decode(v, jsonshape.DecodeOpt{})
//
//	var buf bytes.Buffer
//	err = jsonshape.Encode(cfg, jsonshape.EncodeOpt{}, jsonshape.WriterSink(&buf))
