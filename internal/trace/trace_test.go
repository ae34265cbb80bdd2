package trace

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xkilldash9x/guided-explorer/api/schemas"
)

const loginLine = `{"step":1,"screen":{"activity":"com.example/.LoginActivity","depth":0,"package":"com.example"},"actions":[{"kind":"tap","text":"Login"},{"kind":"scroll","direction":"down","class":"android.widget.ScrollView"}]}`

func TestDecodeSnapshot(t *testing.T) {
	snap, err := DecodeSnapshot([]byte(loginLine))
	require.NoError(t, err)

	assert.Equal(t, 1, snap.Step)
	assert.Equal(t, "com.example/.LoginActivity", snap.Screen().Activity)
	require.Len(t, snap.Actions, 2)
	assert.Equal(t, schemas.KindTap, snap.Actions[0].Kind)
	assert.Equal(t, "Login", snap.Actions[0].Text)
	assert.Equal(t, "android.widget.ScrollView", snap.Actions[1].ClassName)

	_, err = DecodeSnapshot([]byte(`{"step":`))
	assert.Error(t, err)
}

func TestRead(t *testing.T) {
	input := loginLine + "\n\n" + `{"step":2,"screen":{"depth":-1},"actions":[]}` + "\n"
	snaps, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, 2, snaps[1].Step)
	assert.Equal(t, -1, snaps[1].Context.Depth)
}

func TestRead_ReportsLineNumber(t *testing.T) {
	_, err := Read(strings.NewReader(loginLine + "\nnot json\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(loginLine+"\n"), 0o600))

	snaps, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, snaps, 1)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.jsonl"))
	assert.Error(t, err)
}

func TestLineWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewLineWriter(&buf)

	require.NoError(t, w.Write(schemas.DecisionResult{Step: 3, Action: schemas.NewBackAction(), Index: 2, Total: 3, Source: schemas.SourceModel}))
	require.NoError(t, w.Write(schemas.Summary{SessionID: "s1"}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"source":"model"`)
	assert.Contains(t, lines[0], `"kind":"key"`)
	assert.Contains(t, lines[1], `"session_id":"s1"`)

	// Unknown action kinds cannot be encoded.
	err := w.Write(schemas.Action{Kind: schemas.ActionKind(42)})
	assert.Error(t, err)
}

func receive(t *testing.T, ch <-chan *schemas.Snapshot) *schemas.Snapshot {
	t.Helper()
	select {
	case snap, ok := <-ch:
		require.True(t, ok, "channel closed early")
		return snap
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}

func TestFollower_EmitsAppendedSnapshots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(loginLine+"\n"), 0o600))

	core, logs := observer.New(zap.DebugLevel)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snaps, err := NewFollower(path, zap.New(core), FromStart(), WithPolling()).Start(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, receive(t, snaps).Step)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
	require.NoError(t, err)
	_, err = f.WriteString("garbage\n" + `{"step":2,"screen":{"depth":1},"actions":[]}` + "\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	second := receive(t, snaps)
	assert.Equal(t, 2, second.Step)
	assert.Equal(t, 1, logs.FilterMessage("Skipping undecodable trace line").Len())

	cancel()
	select {
	case _, ok := <-snaps:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("follower did not stop")
	}
}

func TestFollower_MissingFile(t *testing.T) {
	_, err := NewFollower(filepath.Join(t.TempDir(), "missing.jsonl"), zap.NewNop()).Start(context.Background())
	assert.Error(t, err)
}
