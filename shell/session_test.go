package shell

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vshell/vfs"
)

func newTestSession(t *testing.T) (*Session, *vfs.VFS, *bytes.Buffer) {
	t.Helper()
	fs, err := vfs.NewFromBytes("test.csv", []byte(sampleManifest))
	require.NoError(t, err)
	out := &bytes.Buffer{}
	disp := NewDispatcher(fs, out)
	prompt := Prompt{}
	promptFn := func() string {
		return prompt.Format("alice", "box", fs.Cwd())
	}
	return NewSession(disp, promptFn, out), fs, out
}

func TestRunScript_EchoesWithPrompt(t *testing.T) {
	session, _, out := newTestSession(t)

	terminated, err := session.RunScript(strings.NewReader("ls /a\n"))
	require.NoError(t, err)
	assert.False(t, terminated)
	assert.Equal(t, "alice@box:/$ ls /a\nb.txt\n", out.String())
}

func TestRunScript_SkipsBlankAndCommentLines(t *testing.T) {
	session, _, out := newTestSession(t)

	script := "\n# a comment\n   \nls /a\n"
	_, err := session.RunScript(strings.NewReader(script))
	require.NoError(t, err)
	assert.Equal(t, "alice@box:/$ ls /a\nb.txt\n", out.String())
}

func TestRunScript_PromptTracksCwd(t *testing.T) {
	session, _, out := newTestSession(t)

	_, err := session.RunScript(strings.NewReader("cd /a\nls\n"))
	require.NoError(t, err)
	assert.Equal(t, "alice@box:/$ cd /a\nalice@box:/a$ ls\nb.txt\n", out.String())
}

func TestRunScript_ExitStopsMidStream(t *testing.T) {
	session, fs, _ := newTestSession(t)

	terminated, err := session.RunScript(strings.NewReader("exit\nrm -r /a\n"))
	require.NoError(t, err)
	assert.True(t, terminated)

	// the line after exit was never dispatched
	names, err := fs.Ls("/a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b.txt"}, names)
}

func TestRunScript_ContinuesAfterCommandError(t *testing.T) {
	session, _, out := newTestSession(t)

	_, err := session.RunScript(strings.NewReader("cd /missing\nls /a\n"))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "cd: ")
	assert.Contains(t, out.String(), "b.txt\n")
}

func TestRunInteractive_EOFTerminatesCleanly(t *testing.T) {
	session, _, out := newTestSession(t)

	err := session.RunInteractive(strings.NewReader("ls /a\n"))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "b.txt\n")
	// prompt printed again before EOF was observed
	assert.Equal(t, 2, strings.Count(out.String(), "alice@box:"))
}

func TestRunInteractive_EmptyLinesIgnored(t *testing.T) {
	session, _, out := newTestSession(t)

	err := session.RunInteractive(strings.NewReader("\n\nls /a\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out.String(), "b.txt"))
}

func TestRunInteractive_ExitStopsLoop(t *testing.T) {
	session, fs, _ := newTestSession(t)

	err := session.RunInteractive(strings.NewReader("exit\nrm -r /a\n"))
	require.NoError(t, err)

	names, err := fs.Ls("/a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b.txt"}, names)
}

func TestStatePersistsAcrossModes(t *testing.T) {
	session, fs, out := newTestSession(t)

	terminated, err := session.RunScript(strings.NewReader("cd /a\n"))
	require.NoError(t, err)
	require.False(t, terminated)
	assert.Equal(t, "/a", fs.Cwd())

	out.Reset()
	err = session.RunInteractive(strings.NewReader("ls\n"))
	require.NoError(t, err)
	// cwd set by the script is still in effect
	assert.Contains(t, out.String(), "alice@box:/a$ ")
	assert.Contains(t, out.String(), "b.txt\n")
}

func TestSession_HasStableID(t *testing.T) {
	session, _, _ := newTestSession(t)
	assert.NotEmpty(t, session.ID().String())
	assert.Equal(t, session.ID(), session.ID())
}
