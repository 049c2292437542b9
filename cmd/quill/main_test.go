package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillshell/quill/internal/session"
	"github.com/quillshell/quill/internal/suggest"
)

func newPlainSession(t *testing.T) *session.Session {
	t.Helper()
	dir := t.TempDir()
	return session.New(session.Config{
		Context: session.Context{WorkingDir: dir, User: "u", Host: "h", Home: dir},
		KnowledgeBase: suggest.NewKnowledgeBase([]suggest.CommandSpec{
			{Name: "ls"}, {Name: "pwd"},
		}),
		BranchFunc: func(string) string { return "" },
	})
}

func TestRunVersionFlag(t *testing.T) {
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()
	os.Args = []string{"quill", "-version"}

	err := run()
	assert.NoError(t, err)
}

func TestRunPlainPwdAndExit(t *testing.T) {
	sess := newPlainSession(t)
	dir := sess.Ctx().WorkingDir

	in := strings.NewReader("pwd\nexit\n")
	var out bytes.Buffer
	require.NoError(t, runPlain(sess, in, &out))

	got := out.String()
	assert.Contains(t, got, "u@h")
	assert.Contains(t, got, dir)
	assert.True(t, sess.Terminated())
}

func TestRunPlainEmptyLineReprompts(t *testing.T) {
	sess := newPlainSession(t)

	in := strings.NewReader("\n\n")
	var out bytes.Buffer
	require.NoError(t, runPlain(sess, in, &out))

	assert.GreaterOrEqual(t, strings.Count(out.String(), "u@h"), 3)
	assert.False(t, sess.Terminated())
}

func TestRunPlainCdChangesPrompt(t *testing.T) {
	sess := newPlainSession(t)

	in := strings.NewReader("cd /\npwd\nexit\n")
	var out bytes.Buffer
	require.NoError(t, runPlain(sess, in, &out))

	assert.Contains(t, out.String(), "u@h:/ $ ")
}

func TestRunPlainUnknownCommandReportsSpawnFailure(t *testing.T) {
	sess := newPlainSession(t)

	in := strings.NewReader("definitely-not-a-command-xyz\nexit\n")
	var out bytes.Buffer
	require.NoError(t, runPlain(sess, in, &out))

	assert.Contains(t, out.String(), "definitely-not-a-command-xyz:")
}

func TestRunPlainEOFEndsSession(t *testing.T) {
	sess := newPlainSession(t)

	in := strings.NewReader("pwd\n")
	var out bytes.Buffer
	require.NoError(t, runPlain(sess, in, &out))
	assert.False(t, sess.Terminated())
}
