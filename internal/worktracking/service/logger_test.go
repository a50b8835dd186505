package service

import (
	"bytes"
	"context"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
		SetLogLevel("info")
	})
	return &buf
}

func TestLogger_LevelGate(t *testing.T) {
	buf := captureLog(t)
	l := NewLogger(context.Background())

	assert.True(t, SetLogLevel("warn"))
	l.LogInfof("save", "owner=%s", "a")
	l.LogDebugf("save", "owner=%s", "a")
	l.LogWarnf("reconcile", "item=%s", "w1")
	l.LogErrorf("autosave", "error=%v", "boom")

	assert.Equal(t,
		"[warn] request_id=- op=reconcile item=w1\n[error] request_id=- op=autosave error=boom\n",
		buf.String())

	buf.Reset()
	assert.False(t, SetLogLevel("verbose"))
	l.LogInfof("save", "owner=%s", "a")
	assert.Empty(t, buf.String())

	assert.True(t, SetLogLevel("debug"))
	l.LogDebugf("load", "owner=%s", "b")
	assert.Equal(t, "[debug] request_id=- op=load owner=b\n", buf.String())
}
