package graph

import (
	"io"
	"sort"

	jsoniter "github.com/json-iterator/go"
)

// Response is the outcome of one dispatched request. Data holds the encoded
// result of the operation and is nil when the operation failed. Errors lists
// the operation failure or, next to Data, field errors for stale references.
type Response struct {
	Operation string
	Data      jsoniter.RawMessage
	Errors    []Error
}

// Failed reports whether the operation itself failed.
func (r Response) Failed() bool {
	return r.Data == nil
}

// MarshalJSON encodes the response as
// {"errors":[...],"data":{"<operation>":...}} omitting empty members.
func (r Response) MarshalJSON() ([]byte, error) {
	stream := jsoniter.ConfigCompatibleWithStandardLibrary.BorrowStream(nil)
	defer jsoniter.ConfigCompatibleWithStandardLibrary.ReturnStream(stream)
	r.encode(stream)
	if stream.Error != nil {
		return nil, stream.Error
	}
	return append([]byte(nil), stream.Buffer()...), nil
}

// WriteTo writes the JSON encoding of the response to w.
func (r Response) WriteTo(w io.Writer) (int64, error) {
	stream := jsoniter.ConfigCompatibleWithStandardLibrary.BorrowStream(w)
	defer jsoniter.ConfigCompatibleWithStandardLibrary.ReturnStream(stream)
	r.encode(stream)
	n := int64(stream.Buffered())
	if err := stream.Flush(); err != nil {
		return 0, err
	}
	return n, stream.Error
}

func (r Response) encode(stream *jsoniter.Stream) {
	stream.WriteObjectStart()
	if len(r.Errors) > 0 {
		stream.WriteObjectField("errors")
		stream.WriteArrayStart()
		for i := range r.Errors {
			if i > 0 {
				stream.WriteMore()
			}
			encodeError(stream, &r.Errors[i])
		}
		stream.WriteArrayEnd()
		if r.Data != nil {
			stream.WriteMore()
		}
	}
	if r.Data != nil {
		stream.WriteObjectField("data")
		stream.WriteObjectStart()
		stream.WriteObjectField(r.Operation)
		stream.WriteRaw(string(r.Data))
		stream.WriteObjectEnd()
	}
	stream.WriteObjectEnd()
}

func encodeError(stream *jsoniter.Stream, err *Error) {
	stream.WriteObjectStart()
	stream.WriteObjectField("message")
	stream.WriteString(err.Message)

	if len(err.Path) > 0 {
		stream.WriteMore()
		stream.WriteObjectField("path")
		stream.WriteArrayStart()
		for i, elem := range err.Path {
			if i > 0 {
				stream.WriteMore()
			}
			switch elem := elem.(type) {
			case string:
				stream.WriteString(elem)
			case int:
				stream.WriteInt(elem)
			}
		}
		stream.WriteArrayEnd()
	}

	if len(err.Extensions) > 0 {
		keys := make([]string, 0, len(err.Extensions))
		for k := range err.Extensions {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		stream.WriteMore()
		stream.WriteObjectField("extensions")
		stream.WriteObjectStart()
		for i, k := range keys {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(k)
			stream.WriteString(err.Extensions[k])
		}
		stream.WriteObjectEnd()
	}
	stream.WriteObjectEnd()
}
