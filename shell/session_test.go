package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/poiesic/sonnets/core"
	"github.com/poiesic/sonnets/search"
	"github.com/poiesic/sonnets/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const mark = "\x1b[1m\x1b[43m"
const reset = "\x1b[0m"

func newTestSearcher(t *testing.T) *search.Searcher {
	t.Helper()
	return newSearcherWith(t, &core.Document{
		Title: "Test",
		Lines: []string{"a cat sat", "no match here"},
	})
}

func newSearcherWith(t *testing.T, docs ...*core.Document) *search.Searcher {
	t.Helper()
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	ctx := context.Background()
	_, err = repo.AddDocuments(ctx, docs...)
	require.NoError(t, err)

	searcher, err := search.NewSearcher(ctx, repo)
	require.NoError(t, err)
	return searcher
}

func newTestSession(t *testing.T, opts ...ConfigOption) (*Session, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	session, err := NewSession(newTestSearcher(t), &out, NewConfig(opts...))
	require.NoError(t, err)
	return session, &out
}

func TestNewSession(t *testing.T) {
	searcher := newTestSearcher(t)

	t.Run("nil config uses defaults", func(t *testing.T) {
		session, err := NewSession(searcher, io.Discard, nil)
		require.NoError(t, err)
		assert.True(t, session.Highlight())
		assert.Equal(t, search.ANSIStyle{}, session.style)
		assert.Equal(t, "> ", session.prompt)
	})

	t.Run("nil searcher", func(t *testing.T) {
		_, err := NewSession(nil, io.Discard, nil)
		assert.Equal(t, ErrSearcherRequired, err)
	})

	t.Run("nil output", func(t *testing.T) {
		_, err := NewSession(searcher, nil, nil)
		assert.Equal(t, ErrOutputRequired, err)
	})

	t.Run("unknown style", func(t *testing.T) {
		_, err := NewSession(searcher, io.Discard, NewConfig(WithStyle("neon")))
		assert.ErrorIs(t, err, search.ErrUnknownStyle)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		session, err := NewSession(searcher, io.Discard, nil, WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, session.logger)
	})
}

func TestExecute_Query(t *testing.T) {
	t.Run("highlighted", func(t *testing.T) {
		session, out := newTestSession(t)

		quit, err := session.Execute(context.Background(), "cat")
		require.NoError(t, err)
		assert.False(t, quit)

		want := "1 out of 1 sonnets contain \"cat\".\n" +
			"\n[1/1] Test\n" +
			"  a " + mark + "cat" + reset + " sat\n"
		assert.Equal(t, want, out.String())
	})

	t.Run("highlighting off", func(t *testing.T) {
		session, out := newTestSession(t, WithHighlight(false))

		_, err := session.Execute(context.Background(), "cat sat")
		require.NoError(t, err)

		want := "1 out of 1 sonnets contain \"cat sat\".\n" +
			"\n[1/1] Test\n" +
			"  a cat sat\n"
		assert.Equal(t, want, out.String())
	})

	t.Run("both words highlighted on one line", func(t *testing.T) {
		session, out := newTestSession(t)

		_, err := session.Execute(context.Background(), "sat cat")
		require.NoError(t, err)
		assert.Contains(t, out.String(), "  a "+mark+"cat"+reset+" "+mark+"sat"+reset+"\n")
	})

	t.Run("no match", func(t *testing.T) {
		session, out := newTestSession(t)

		_, err := session.Execute(context.Background(), "cat dog")
		require.NoError(t, err)
		assert.Equal(t, "0 out of 1 sonnets contain \"cat dog\".\n", out.String())
	})

	t.Run("query is trimmed", func(t *testing.T) {
		session, out := newTestSession(t)

		_, err := session.Execute(context.Background(), "   cat   ")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out.String(), "1 out of 1 sonnets contain \"cat\".\n"))
	})

	t.Run("plain style", func(t *testing.T) {
		session, out := newTestSession(t, WithStyle("plain"))

		_, err := session.Execute(context.Background(), "test")
		require.NoError(t, err)
		assert.Contains(t, out.String(), "[1/1] [Test]\n")
	})
}

func TestExecute_Commands(t *testing.T) {
	tests := []struct {
		name          string
		line          string
		want          string
		wantQuit      bool
		wantHighlight bool
	}{
		{"blank line", "   \t ", "", false, true},
		{"quit", ":quit", "Bye.\n", true, true},
		{"help", ":help", Help + "\n", false, true},
		{"highlight off", ":highlight off", "Highlighting OFF\n", false, false},
		{"highlight on", ":highlight on", "Highlighting ON\n", false, true},
		{"highlight argument case", ":highlight OFF", "Highlighting OFF\n", false, false},
		{"highlight without argument", ":highlight", "Usage: :highlight on|off\n", false, true},
		{"highlight bad argument", ":highlight maybe", "Usage: :highlight on|off\n", false, true},
		{"highlight extra argument", ":highlight on now", "Usage: :highlight on|off\n", false, true},
		{"unknown command", ":frobnicate", "Unknown command. Type :help for commands.\n", false, true},
		{"commands are case sensitive", ":QUIT", "Unknown command. Type :help for commands.\n", false, true},
		{"surrounding whitespace", "  :quit  ", "Bye.\n", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, out := newTestSession(t)

			quit, err := session.Execute(context.Background(), tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.wantQuit, quit)
			assert.Equal(t, tt.want, out.String())
			assert.Equal(t, tt.wantHighlight, session.Highlight())
		})
	}
}

func TestExecute_ToggleAffectsRendering(t *testing.T) {
	session, out := newTestSession(t)
	ctx := context.Background()

	_, err := session.Execute(ctx, ":highlight off")
	require.NoError(t, err)
	_, err = session.Execute(ctx, "cat")
	require.NoError(t, err)
	assert.NotContains(t, out.String(), mark)

	out.Reset()
	_, err = session.Execute(ctx, ":highlight on")
	require.NoError(t, err)
	_, err = session.Execute(ctx, "cat")
	require.NoError(t, err)
	assert.Contains(t, out.String(), mark+"cat"+reset)
}

func TestRun_Quit(t *testing.T) {
	session, out := newTestSession(t, WithHighlight(false))
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	err := session.Run(context.Background(), strings.NewReader("cat\n:quit\nnever read\n"))
	require.NoError(t, err)

	want := Banner + "\n\n" +
		"> 1 out of 1 sonnets contain \"cat\".\n" +
		"\n[1/1] Test\n" +
		"  a cat sat\n" +
		"> Bye.\n"
	assert.Equal(t, want, out.String())
}

func TestRun_EndOfInput(t *testing.T) {
	session, out := newTestSession(t)
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	err := session.Run(context.Background(), strings.NewReader("\ncat dog\n"))
	require.NoError(t, err)

	want := Banner + "\n\n" +
		"> " +
		"> 0 out of 1 sonnets contain \"cat dog\".\n" +
		"> \nBye.\n"
	assert.Equal(t, want, out.String())
}

func TestRun_LongLine(t *testing.T) {
	session, out := newTestSession(t, WithHighlight(false))
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	long := strings.Repeat("c", 70000)
	err := session.Run(context.Background(), strings.NewReader(long+"\ncat\r\n"))
	require.NoError(t, err)

	assert.Contains(t, out.String(), "0 out of 1 sonnets contain \""+long+"\".\n")
	assert.Contains(t, out.String(), "> 1 out of 1 sonnets contain \"cat\".\n\n[1/1] Test\n  a cat sat\n")
	assert.True(t, strings.HasSuffix(out.String(), "> \nBye.\n"))
}

func TestRun_LastLineWithoutNewline(t *testing.T) {
	session, out := newTestSession(t, WithHighlight(false))

	require.NoError(t, session.Run(context.Background(), strings.NewReader("cat")))
	assert.Contains(t, out.String(), "1 out of 1 sonnets contain \"cat\".\n")
}

func TestRun_Interrupt(t *testing.T) {
	session, out := newTestSession(t)
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	pr, pw := io.Pipe()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- session.Run(ctx, pr)
	}()

	cancel()
	require.NoError(t, <-done)
	// The reader goroutine is blocked on the pipe until it closes.
	require.NoError(t, pw.Close())

	assert.True(t, strings.HasSuffix(out.String(), "> \nBye.\n"))
}

func TestRun_ReadError(t *testing.T) {
	session, out := newTestSession(t)
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	boom := errors.New("boom")
	err := session.Run(context.Background(), iotest.ErrReader(boom))
	assert.ErrorIs(t, err, boom)
	assert.True(t, strings.HasSuffix(out.String(), "\nBye.\n"))
}

func TestWriteResults_HTML(t *testing.T) {
	searcher := newTestSearcher(t)
	results, err := searcher.Search(context.Background(), "cat")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, WriteResults(&out, results, true, search.HTMLStyle{}))
	assert.Contains(t, out.String(), "  a <mark>cat</mark> sat\n")
}

func TestExecute_HTMLEscapesAllText(t *testing.T) {
	searcher := newSearcherWith(t, &core.Document{
		Title: "A <b> & B",
		Lines: []string{"x < y cat", "cat & <i>", "<unmatched>"},
	})

	t.Run("highlighted", func(t *testing.T) {
		var out bytes.Buffer
		session, err := NewSession(searcher, &out, NewConfig(WithStyle("html")))
		require.NoError(t, err)

		_, err = session.Execute(context.Background(), "cat")
		require.NoError(t, err)

		want := "1 out of 1 sonnets contain \"cat\".\n" +
			"\n[1/1] A &lt;b&gt; &amp; B\n" +
			"  x &lt; y <mark>cat</mark>\n" +
			"  <mark>cat</mark> &amp; &lt;i&gt;\n"
		assert.Equal(t, want, out.String())
	})

	t.Run("highlighting off", func(t *testing.T) {
		var out bytes.Buffer
		session, err := NewSession(searcher, &out, NewConfig(WithStyle("html"), WithHighlight(false)))
		require.NoError(t, err)

		_, err = session.Execute(context.Background(), "cat")
		require.NoError(t, err)

		want := "1 out of 1 sonnets contain \"cat\".\n" +
			"\n[1/1] A &lt;b&gt; &amp; B\n" +
			"  x &lt; y cat\n" +
			"  cat &amp; &lt;i&gt;\n"
		assert.Equal(t, want, out.String())
	})

	t.Run("query echo", func(t *testing.T) {
		var out bytes.Buffer
		session, err := NewSession(searcher, &out, NewConfig(WithStyle("html")))
		require.NoError(t, err)

		_, err = session.Execute(context.Background(), "<i>")
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(out.String(), "1 out of 1 sonnets contain \"&lt;i&gt;\".\n"))
		assert.Contains(t, out.String(), "  cat &amp; <mark>&lt;i&gt;</mark>\n")
	})
}
