// internal/trace/codec.go
package trace

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/xkilldash9x/guided-explorer/api/schemas"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DecodeSnapshot parses one JSON-encoded snapshot.
func DecodeSnapshot(data []byte) (*schemas.Snapshot, error) {
	var snap schemas.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}

// LineWriter writes values as JSON lines. It is not safe for concurrent use.
type LineWriter struct {
	out    io.Writer
	stream *jsoniter.Stream
}

// NewLineWriter returns a LineWriter on w.
func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{out: w, stream: jsoniter.NewStream(json, w, 512)}
}

// Write encodes v followed by a newline and flushes.
func (lw *LineWriter) Write(v interface{}) error {
	lw.stream.WriteVal(v)
	if lw.stream.Error != nil {
		err := lw.stream.Error
		// Drop the partially encoded value.
		lw.stream.Reset(lw.out)
		lw.stream.Error = nil
		return fmt.Errorf("failed to encode trace line: %w", err)
	}
	lw.stream.WriteRaw("\n")
	if err := lw.stream.Flush(); err != nil {
		return fmt.Errorf("failed to flush trace line: %w", err)
	}
	return nil
}
