package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/envdiff/cli/cmd"
	"github.com/ardnew/envdiff/config"
	"github.com/ardnew/envdiff/log"
	"github.com/ardnew/envdiff/pkg"
)

// TestMain isolates the user configuration and cache directories, which are
// resolved once per process.
func TestMain(m *testing.M) {
	home, err := os.MkdirTemp("", "envdiff-cli-test-*")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	os.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	os.Setenv("XDG_CACHE_HOME", filepath.Join(home, "cache"))

	code := m.Run()

	os.RemoveAll(home)
	os.Exit(code)
}

type exitCode int

// run invokes Run with output captured and exit calls turned into panics
// carrying an exitCode.
func run(t *testing.T, args ...string) (out string, code int, err error) {
	t.Helper()
	t.Cleanup(func() { log.Config(log.WithDefaults(os.Stderr)) })

	var buf bytes.Buffer

	code = -1

	func() {
		defer func() {
			if r := recover(); r != nil {
				c, ok := r.(exitCode)
				if !ok {
					panic(r)
				}

				code = int(c)
			}
		}()

		err = Run(cmd.WithOutput(t.Context(), &buf),
			func(c int) { panic(exitCode(c)) },
			append([]string{"--log-level=error"}, args...)...,
		)
	}()

	return buf.String(), code, err
}

func workdir(t *testing.T, files map[string]string) {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}

	t.Chdir(dir)
}

// userConfig writes content to the user configuration file for the duration
// of the test.
func userConfig(t *testing.T, content string) {
	t.Helper()

	path := configPath(configYAML)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Cleanup(func() { os.Remove(path) })
}

func TestRunDefaultCommand(t *testing.T) {
	workdir(t, map[string]string{
		"a.env": "FOO=1\nBAR=2\n",
		"b.env": "FOO=1\nBAZ=3\n",
	})

	out, _, err := run(t, "a.env", "b.env", "--keys", "--color=never")
	require.NoError(t, err)
	assert.Equal(t,
		"Keys in a.env missing from b.env:\n  1. BAR\n"+
			"Keys in b.env missing from a.env:\n  1. BAZ\n",
		out)

	explicit, _, err := run(t, "compare", "a.env", "b.env", "--color=never")
	require.NoError(t, err)
	assert.Equal(t, out, explicit)
}

func TestRunErrors(t *testing.T) {
	workdir(t, map[string]string{
		"a.env":  "FOO=1\n",
		"b.yaml": "FOO: 1\n",
	})

	_, _, err := run(t, "a.env", "b.yaml")
	require.ErrorIs(t, err, config.ErrFormatMismatch)

	_, _, err = run(t, "a.env", "gone.env")
	require.ErrorIs(t, err, config.ErrFileNotFound)
}

func TestRunVersion(t *testing.T) {
	out, code, _ := run(t, "--version")

	assert.Equal(t, 0, code)
	assert.Equal(t, pkg.Version+"\n", out)
}

func TestRunUserConfig(t *testing.T) {
	workdir(t, map[string]string{
		"a.env": "FOO=1\n",
		"b.env": "FOO=2\n",
	})

	userConfig(t, "compare:\n  values: true\n  output: json\n")

	out, _, err := run(t, "a.env", "b.env")
	require.NoError(t, err)
	assert.Contains(t, out, `"mode": "values"`)

	// Command-line flags override the file.
	out, _, err = run(t, "a.env", "b.env", "--output=text", "--color=never")
	require.NoError(t, err)
	assert.Contains(t, out, "Value differences between a.env and b.env:")
}

func TestRunUserConfigInvalid(t *testing.T) {
	userConfig(t, "- not\n- a mapping\n")

	_, _, err := run(t, "flatten", "x.env")
	require.Error(t, err)
	assert.Contains(t, err.Error(), configYAML)
}

func TestRunInit(t *testing.T) {
	path := configPath(configYAML)
	t.Cleanup(func() { os.Remove(path) })

	out, _, err := run(t, "init")
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)

	_, _, err = run(t, "init")
	require.ErrorIs(t, err, cmd.ErrFileExists)

	_, _, err = run(t, "init", "--force")
	require.NoError(t, err)

	doc, err := config.Parse(t.Context(), path, config.FormatYAML)
	require.NoError(t, err)

	level, ok := doc.Lookup("log-level")
	require.True(t, ok)
	assert.Equal(t, "error", level)

	output, ok := doc.Lookup("compare.output")
	require.True(t, ok)
	assert.Equal(t, "text", output)
}

func TestRunFlatten(t *testing.T) {
	workdir(t, map[string]string{
		"a.yaml": "db:\n  host: localhost\n",
	})

	out, _, err := run(t, "flatten", "a.yaml", "--color=never")
	require.NoError(t, err)
	assert.Equal(t, "db.host=localhost\n", out)
}

func TestScan(t *testing.T) {
	t.Cleanup(func() { log.Config(log.WithDefaults(os.Stderr)) })

	tests := []struct {
		name string
		args []string
		want logConfig
	}{
		{
			name: "assigned values",
			args: []string{"--log-level=debug", "--log-format=json", "--log-time-layout=kitchen"},
			want: logConfig{Level: "debug", Format: "json", TimeLayout: "kitchen", Pretty: true},
		},
		{
			name: "separate values",
			args: []string{"a.env", "--log-level", "warn", "b.env"},
			want: logConfig{Level: "warn", Pretty: true},
		},
		{
			name: "value flag followed by flag",
			args: []string{"--log-level", "--keys"},
			want: logConfig{Pretty: true},
		},
		{
			name: "switches",
			args: []string{"--log-caller", "--no-log-pretty"},
			want: logConfig{Caller: true},
		},
		{
			name: "assigned switches",
			args: []string{"--log-caller=false", "--no-log-pretty=false", "--log-pretty=bogus"},
			want: logConfig{Pretty: true},
		},
		{
			name: "stops at terminator",
			args: []string{"--", "--log-level=debug"},
			want: logConfig{Pretty: true},
		},
		{
			name: "ignores other flags",
			args: []string{"--level=debug", "--no-pretty", "-log-caller"},
			want: logConfig{Pretty: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := logConfig{Pretty: true}
			got.scan(tt.args)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScanConfiguresLogger(t *testing.T) {
	t.Cleanup(func() { log.Config(log.WithDefaults(os.Stderr)) })

	var f logConfig
	f.scan([]string{"--log-level=trace", "--log-format", "json"})

	assert.Equal(t, log.LevelTrace, log.Default().Level())
	assert.Equal(t, log.FormatJSON, log.Default().Format())
}

func TestBasePrefix(t *testing.T) {
	assert.NotEmpty(t, basePrefix())
	assert.NotContains(t, basePrefix(), string(filepath.Separator))
	assert.Equal(t, filepath.Join(configDir(), "x", "y"), configPath("x", "y"))
}
