// internal/trace/reader.go
package trace

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/xkilldash9x/guided-explorer/api/schemas"
)

// maxLineBytes bounds a single trace line; screens with many actions produce
// long lines.
const maxLineBytes = 4 << 20

// Read decodes a JSONL trace: one snapshot per line, blank lines ignored.
func Read(r io.Reader) ([]*schemas.Snapshot, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var snaps []*schemas.Snapshot
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		snap, err := DecodeSnapshot(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		snaps = append(snaps, snap)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}
	return snaps, nil
}

// ReadFile reads the JSONL trace at path. "-" reads standard input.
func ReadFile(path string) ([]*schemas.Snapshot, error) {
	if path == "-" {
		return Read(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace: %w", err)
	}
	defer f.Close()

	snaps, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snaps, nil
}
