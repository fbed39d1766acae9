package gestor

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabssanto/gestor/internal/config"
	"github.com/gabssanto/gestor/internal/confirm"
	"github.com/gabssanto/gestor/internal/fsys"
	"github.com/gabssanto/gestor/internal/logging"
	"github.com/gabssanto/gestor/internal/mover"
	"github.com/gabssanto/gestor/internal/scan"
)

// scenarioFiles is the sample tree used throughout these tests.
var scenarioFiles = []string{
	"report[alpha].pdf",
	"notes[alpha].txt",
	"image[beta].png",
	"readme.md",
}

const scenarioTree = "/gestor\n" +
	"└── [alpha]\n" +
	"    ├── pdf/\n" +
	"        └── report[alpha].pdf\n" +
	"    └── txt/\n" +
	"        └── notes[alpha].txt\n"

func setupTestEnv(t *testing.T, fs billy.Filesystem, root string, names ...string) {
	t.Helper()
	color.NoColor = true

	for _, name := range names {
		require.NoError(t, util.WriteFile(fs, fs.Join(root, name), []byte(name), 0644))
	}
}

func newDispatcher(fs billy.Filesystem, c confirm.Confirmer) (*Dispatcher, *bytes.Buffer) {
	var out bytes.Buffer
	return &Dispatcher{FS: fs, Out: &out, Confirm: c, Log: logging.Discard()}, &out
}

func params(cmd config.Command, tagName, source, target string, dryRun bool) config.Params {
	p := config.DefaultParams()
	p.Command = cmd
	p.Tag = tagName
	p.Source = source
	p.Target = target
	p.DryRun = dryRun
	return p
}

type erroringConfirmer struct{}

func (erroringConfirmer) Confirm(string) (bool, error) {
	return false, errors.New("stdin closed")
}

func TestShowScenario(t *testing.T) {
	fs := memfs.New()
	setupTestEnv(t, fs, "/in", scenarioFiles...)

	d, out := newDispatcher(fs, confirm.Fixed(false))
	state, err := d.Show(params(config.CommandShow, "alpha", "/in", "", false))
	require.NoError(t, err)

	assert.Equal(t, StatePreviewed, state)
	assert.Equal(t, scenarioTree, out.String())
}

func TestShowIsIdempotent(t *testing.T) {
	fs := memfs.New()
	setupTestEnv(t, fs, "/in", scenarioFiles...)

	d1, out1 := newDispatcher(fs, nil)
	_, err := d1.Show(params(config.CommandShow, "alpha", "/in", "", false))
	require.NoError(t, err)

	d2, out2 := newDispatcher(fs, nil)
	_, err = d2.Show(params(config.CommandShow, "alpha", "/in", "", true))
	require.NoError(t, err)

	assert.Equal(t, out1.Bytes(), out2.Bytes())
}

func TestShowYAML(t *testing.T) {
	fs := memfs.New()
	setupTestEnv(t, fs, "/in", scenarioFiles...)

	p := params(config.CommandShow, "alpha", "/in", "", false)
	p.Format = config.FormatYAML

	d, out := newDispatcher(fs, nil)
	_, err := d.Show(p)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "tag: alpha")
	assert.Contains(t, out.String(), "/in/report[alpha].pdf")
	assert.NotContains(t, out.String(), "target:")
	assert.NotContains(t, out.String(), "/gestor")
}

func TestShowMissingSource(t *testing.T) {
	d, out := newDispatcher(memfs.New(), nil)

	state, err := d.Show(params(config.CommandShow, "alpha", "/missing", "", false))
	require.Error(t, err)

	assert.ErrorIs(t, err, scan.ErrSourceUnreadable)
	assert.Equal(t, StateIdle, state)
	assert.Empty(t, out.String(), "nothing should be printed before the error")
}

func TestShowInvalidFormat(t *testing.T) {
	p := params(config.CommandShow, "alpha", "/", "", false)
	p.Format = "xml"

	d, _ := newDispatcher(memfs.New(), nil)
	_, err := d.Show(p)
	assert.ErrorContains(t, err, "invalid --format")
}

func TestProcessDryRunScenario(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	out := filepath.Join(dir, "out")
	setupTestEnv(t, fsys.New(), in, scenarioFiles...)

	before, err := scan.Scan(fsys.New(), in, "alpha")
	require.NoError(t, err)

	d, buf := newDispatcher(fsys.New(), erroringConfirmer{})
	state, err := d.Process(params(config.CommandProcess, "alpha", in, out, true))
	require.NoError(t, err)
	assert.Equal(t, StateMoved, state)

	want := scenarioTree +
		`[dry-run] mv "` + filepath.Join(in, "report[alpha].pdf") + `" -> "` + filepath.Join(out, "[alpha]", "pdf", "report[alpha].pdf") + "\"\n" +
		`[dry-run] mv "` + filepath.Join(in, "notes[alpha].txt") + `" -> "` + filepath.Join(out, "[alpha]", "txt", "notes[alpha].txt") + "\"\n"
	assert.Equal(t, want, buf.String())

	after, err := scan.Scan(fsys.New(), in, "alpha")
	require.NoError(t, err)
	assert.Equal(t, before.Groups, after.Groups)
	assert.NoDirExists(t, out)
}

func TestProcessCommitted(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	out := filepath.Join(dir, "out")
	setupTestEnv(t, fsys.New(), in, append(scenarioFiles, "sub/deep[alpha].txt", "Makefile[alpha]")...)

	before, err := scan.Scan(fsys.New(), in, "alpha")
	require.NoError(t, err)

	d, buf := newDispatcher(fsys.New(), confirm.Fixed(true))
	state, err := d.Process(params(config.CommandProcess, "alpha", in, out, false))
	require.NoError(t, err)
	assert.Equal(t, StateMoved, state)

	for _, ext := range before.Groups.Extensions() {
		for _, src := range before.Groups[ext] {
			assert.NoFileExists(t, src)
			assert.FileExists(t, filepath.Join(out, "[alpha]", ext, filepath.Base(src)))
		}
	}

	assert.FileExists(t, filepath.Join(in, "image[beta].png"))
	assert.FileExists(t, filepath.Join(in, "readme.md"))
	assert.Equal(t, 4, strings.Count(buf.String(), "✓ mv "))
}

func TestProcessDeclined(t *testing.T) {
	fs := memfs.New()
	setupTestEnv(t, fs, "/in", scenarioFiles...)

	d, out := newDispatcher(fs, confirm.Fixed(false))
	state, err := d.Process(params(config.CommandProcess, "alpha", "/in", "/out", false))
	require.NoError(t, err)

	assert.Equal(t, StateAborted, state)
	assert.Equal(t, scenarioTree, out.String())

	_, err = fs.Stat("/in/report[alpha].pdf")
	assert.NoError(t, err)
	_, err = fs.Stat("/out")
	assert.True(t, os.IsNotExist(err))
}

func TestProcessWithLineConfirmer(t *testing.T) {
	tests := []struct {
		input string
		want  State
	}{
		{"\n", StateMoved},
		{"y\n", StateMoved},
		{"Y\n", StateMoved},
		{"n\n", StateAborted},
		{"nope\n", StateAborted},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			fs := memfs.New()
			setupTestEnv(t, fs, "/in", scenarioFiles...)

			var out bytes.Buffer
			d := &Dispatcher{
				FS:      fs,
				Out:     &out,
				Confirm: confirm.Line{In: strings.NewReader(tt.input), Out: &out},
				Log:     logging.Discard(),
			}

			state, err := d.Process(params(config.CommandProcess, "alpha", "/in", "/out", false))
			require.NoError(t, err)
			assert.Equal(t, tt.want, state)
			assert.Contains(t, out.String(), confirm.Prompt)
		})
	}
}

func TestProcessEmptyMatch(t *testing.T) {
	fs := memfs.New()
	setupTestEnv(t, fs, "/in", scenarioFiles...)

	d, out := newDispatcher(fs, confirm.Fixed(true))
	state, err := d.Process(params(config.CommandProcess, "gamma", "/in", "/out", false))
	require.NoError(t, err)

	assert.Equal(t, StateMoved, state)
	assert.Equal(t, "/gestor\n└── [gamma]\n", out.String())

	_, err = fs.Stat("/out")
	assert.True(t, os.IsNotExist(err))
}

func TestProcessConfirmError(t *testing.T) {
	fs := memfs.New()
	setupTestEnv(t, fs, "/in", scenarioFiles...)

	d, _ := newDispatcher(fs, erroringConfirmer{})
	state, err := d.Process(params(config.CommandProcess, "alpha", "/in", "/out", false))
	require.Error(t, err)

	assert.Equal(t, StatePreviewed, state)
	assert.Contains(t, err.Error(), "stdin closed")
}

func TestProcessRelocationFailureReportsCompleted(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	out := filepath.Join(dir, "out")
	setupTestEnv(t, fsys.New(), in, "a[alpha].pdf", "b[alpha].txt")

	// The txt group cannot get its directory: a file sits at its path.
	require.NoError(t, os.MkdirAll(filepath.Join(out, "[alpha]"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(out, "[alpha]", "txt"), nil, 0644))

	d, buf := newDispatcher(fsys.New(), confirm.Fixed(true))
	state, err := d.Process(params(config.CommandProcess, "alpha", in, out, false))
	require.Error(t, err)
	assert.Equal(t, StateConfirmed, state)

	var moveErr *mover.MoveError
	require.ErrorAs(t, err, &moveErr)
	assert.ErrorIs(t, err, mover.ErrDestinationUnwritable)
	require.Len(t, moveErr.Completed, 1)
	assert.Equal(t, filepath.Join(in, "a[alpha].pdf"), moveErr.Completed[0].Source)

	assert.Contains(t, buf.String(), "✓ mv")
	assert.FileExists(t, filepath.Join(out, "[alpha]", "pdf", "a[alpha].pdf"))
	assert.FileExists(t, filepath.Join(in, "b[alpha].txt"))
}

func TestTags(t *testing.T) {
	fs := memfs.New()
	setupTestEnv(t, fs, "/in", scenarioFiles...)

	d, out := newDispatcher(fs, nil)
	require.NoError(t, d.Tags(params(config.CommandTags, "", "/in", "", false)))

	assert.Contains(t, out.String(), "alpha")
	assert.Contains(t, out.String(), "2 files")
	assert.Contains(t, out.String(), "beta")
	assert.Contains(t, out.String(), "Total: 2 tags")
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "confirmed", StateConfirmed.String())
	assert.Equal(t, "aborted", StateAborted.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestShowLogsFirstTagOfEachMatch(t *testing.T) {
	fs := memfs.New()
	setupTestEnv(t, fs, "/in", "a[x][alpha].txt", "b[alpha].txt")

	var logs bytes.Buffer
	d, _ := newDispatcher(fs, nil)
	d.Log = logging.New(&logs, logging.Config{Format: "text", Level: "debug"})

	_, err := d.Show(params(config.CommandShow, "alpha", "/in", "", false))
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "first_tag=x")
	assert.Contains(t, logs.String(), "first_tag=alpha")
	assert.Contains(t, logs.String(), "command=show")
}
