package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	stdout string
	stderr string
	err    error
}

// execute runs the root command with LFF_HOME pointing at home, or at an
// empty directory when home is "".
func execute(t *testing.T, home string, args ...string) result {
	t.Helper()
	if home == "" {
		home = t.TempDir()
	}
	t.Setenv("LFF_HOME", home)

	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// buildTree creates a small tree and returns its root.
//
//	big.bin        3000
//	mid.txt        2000
//	small.txt        10
//	sub/deep.bin   2500
//	.hidden/h.bin  4000
func buildTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]int{
		"big.bin":       3000,
		"mid.txt":       2000,
		"small.txt":     10,
		"sub/deep.bin":  2500,
		".hidden/h.bin": 4000,
	}
	for rel, size := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), size), 0644))
	}
	return root
}

func line(size, name string) string {
	return fmt.Sprintf("%-4s  %q", size, name)
}

func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}

func TestRootCommand_Help(t *testing.T) {
	res := execute(t, "", "--help")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "lff <directory>")
	assert.Contains(t, res.stdout, "--sort-method")
	assert.Contains(t, res.stdout, "walks a directory tree")
}

func TestVersionFlag(t *testing.T) {
	res := execute(t, "", "--version")

	require.NoError(t, res.err)
	assert.Equal(t, "lff version "+Version+"\n", res.stdout)
}

func TestFind_SortBySize(t *testing.T) {
	root := buildTree(t)

	res := execute(t, "", root, "-m", "0", "-s", "size")

	require.NoError(t, res.err)
	assert.Equal(t, lines(
		line("4000", filepath.Join(root, ".hidden", "h.bin")),
		line("3000", filepath.Join(root, "big.bin")),
		line("2500", filepath.Join(root, "sub", "deep.bin")),
		line("2000", filepath.Join(root, "mid.txt")),
		line("10", filepath.Join(root, "small.txt")),
	), res.stdout)
	assert.Empty(t, res.stderr)
}

func TestFind_Filters(t *testing.T) {
	root := buildTree(t)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "exclude hidden",
			args: []string{"--exclude-hidden"},
			want: []string{"big.bin", "mid.txt", "small.txt", "sub/deep.bin"},
		},
		{
			name: "extension",
			args: []string{"-e", "bin"},
			want: []string{".hidden/h.bin", "big.bin", "sub/deep.bin"},
		},
		{
			name: "name pattern crosses directories",
			args: []string{"-n", "*/sub/*"},
			want: []string{"sub/deep.bin"},
		},
		{
			name: "min size in MiB",
			args: []string{"-m", "0.002"},
			want: []string{".hidden/h.bin", "big.bin", "sub/deep.bin"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{root, "-m", "0", "-s", "name"}, tt.args...)
			res := execute(t, "", args...)
			require.NoError(t, res.err)

			var want []string
			for _, rel := range tt.want {
				want = append(want, filepath.Join(root, filepath.FromSlash(rel)))
			}
			var got []string
			for _, l := range strings.Split(strings.TrimSuffix(res.stdout, "\n"), "\n") {
				var size, name string
				_, err := fmt.Sscanf(l, "%s %q", &size, &name)
				require.NoError(t, err, "line %q", l)
				got = append(got, name)
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestFind_PrettyBaseTen(t *testing.T) {
	root := buildTree(t)

	res := execute(t, "", root, "-m", "0", "-s", "size", "-l", "2", "-p", "--base-ten")

	require.NoError(t, res.err)
	assert.Equal(t, lines(
		fmt.Sprintf("%-6s  %q", "4.0 kB", filepath.Join(root, ".hidden", "h.bin")),
		fmt.Sprintf("%-6s  %q", "3.0 kB", filepath.Join(root, "big.bin")),
	), res.stdout)
}

func TestFind_NoFilesFound(t *testing.T) {
	root := buildTree(t)

	// default threshold is 50 MiB
	res := execute(t, "", root)

	require.NoError(t, res.err)
	assert.Equal(t, "No files found for the specified arguments!\n", res.stdout)
	assert.Equal(t, ExitSuccess, ExitCodeForError(res.err))
}

func TestFind_ZeroLimit(t *testing.T) {
	root := buildTree(t)

	res := execute(t, "", root, "-m", "0", "-l", "0")

	require.NoError(t, res.err)
	assert.Equal(t, "No files found for the specified arguments!\n", res.stdout)
	assert.Empty(t, res.stderr)
}

func TestFind_UnsortedLimitWarns(t *testing.T) {
	root := buildTree(t)

	res := execute(t, "", root, "-m", "0", "-l", "2")

	require.NoError(t, res.err)
	assert.Len(t, strings.Split(strings.TrimSuffix(res.stdout, "\n"), "\n"), 2)
	assert.Contains(t, res.stderr, "[WARN] Showing the first 2 matching files found")
}

func TestFind_SortedLimitDoesNotWarn(t *testing.T) {
	root := buildTree(t)

	res := execute(t, "", root, "-m", "0", "-l", "2", "-s", "size")

	require.NoError(t, res.err)
	assert.Empty(t, res.stderr)
}

func TestFind_ConfigFile(t *testing.T) {
	root := buildTree(t)
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"),
		[]byte("min_size_mib: 0\nsort_method: name\nexclude_hidden: true\n"), 0644))

	t.Run("config supplies defaults", func(t *testing.T) {
		res := execute(t, home, root)
		require.NoError(t, res.err)
		assert.Equal(t, lines(
			line("3000", filepath.Join(root, "big.bin")),
			line("2000", filepath.Join(root, "mid.txt")),
			line("10", filepath.Join(root, "small.txt")),
			line("2500", filepath.Join(root, "sub", "deep.bin")),
		), res.stdout)
	})

	t.Run("flags override config", func(t *testing.T) {
		res := execute(t, home, root, "-s", "size", "--exclude-hidden=false", "-l", "1")
		require.NoError(t, res.err)
		assert.Equal(t, lines(line("4000", filepath.Join(root, ".hidden", "h.bin"))), res.stdout)
	})
}

func TestFind_ExplicitConfig(t *testing.T) {
	root := buildTree(t)
	cfgPath := filepath.Join(t.TempDir(), "lff.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("min_size_mib: 0\nextension: txt\nsort_method: size\n"), 0644))

	res := execute(t, "", root, "--config", cfgPath)

	require.NoError(t, res.err)
	assert.Equal(t, lines(
		line("2000", filepath.Join(root, "mid.txt")),
		line("10", filepath.Join(root, "small.txt")),
	), res.stdout)
}

func TestFind_MalformedConfig(t *testing.T) {
	root := buildTree(t)
	cfgPath := filepath.Join(t.TempDir(), "lff.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("limit: [\n"), 0644))

	res := execute(t, "", root, "--config", cfgPath)

	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, ErrInvalidConfig)
	assert.Equal(t, ExitConfigError, ExitCodeForError(res.err))
	assert.Contains(t, res.err.Error(), "could not load config file")
}

func TestFind_InvalidConfigValue(t *testing.T) {
	root := buildTree(t)

	res := execute(t, "", root, "--log-level", "loud")

	require.Error(t, res.err)
	assert.Equal(t, ExitConfigError, ExitCodeForError(res.err))

	var buf bytes.Buffer
	RenderError(&buf, res.err)
	assert.True(t, strings.HasPrefix(buf.String(), "Error: invalid configuration\n\nCaused by:\n    invalid log_level \"loud\""))
}

func TestFind_InvalidPattern(t *testing.T) {
	root := buildTree(t)

	res := execute(t, "", root, "-n", "[")

	require.Error(t, res.err)
	assert.Equal(t, ExitConfigError, ExitCodeForError(res.err))
	assert.Equal(t, "invalid glob from name pattern flag: '['", res.err.Error())
	assert.Empty(t, res.stdout)
}

func TestFind_MissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")

	res := execute(t, "", dir)

	require.Error(t, res.err)
	assert.Equal(t, ExitRootUnreadable, ExitCodeForError(res.err))

	var buf bytes.Buffer
	RenderError(&buf, res.err)
	assert.Equal(t,
		fmt.Sprintf("Error: invalid supplied start directory: %q\n\nCaused by:\n    open %s: no such file or directory\n", dir, dir),
		buf.String())
}

func TestFind_UsageErrors(t *testing.T) {
	root := buildTree(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "no directory", args: nil},
		{name: "two directories", args: []string{root, root}},
		{name: "unknown flag", args: []string{root, "--bogus"}},
		{name: "negative limit", args: []string{root, "--limit=-1"}},
		{name: "non-numeric size", args: []string{root, "-m", "big"}},
		{name: "unknown sort method", args: []string{root, "-s", "date"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, "", tt.args...)
			require.Error(t, res.err)
			assert.ErrorIs(t, res.err, ErrUsage)
			assert.Equal(t, ExitUsageError, ExitCodeForError(res.err))
			assert.Empty(t, res.stdout)
		})
	}
}

func TestFind_Output(t *testing.T) {
	root := buildTree(t)
	outPath := filepath.Join(t.TempDir(), "reports", "large.txt")

	res := execute(t, "", root, "-m", "0", "-s", "size", "-l", "2", "-o", outPath)

	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, lines(
		line("4000", filepath.Join(root, ".hidden", "h.bin")),
		line("3000", filepath.Join(root, "big.bin")),
	), string(data))
}

func TestFind_OutputUntouchedOnError(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "large.txt")
	require.NoError(t, os.WriteFile(outPath, []byte("previous\n"), 0644))

	res := execute(t, "", filepath.Join(t.TempDir(), "missing"), "-o", outPath)

	require.Error(t, res.err)
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "previous\n", string(data))
}

func TestFind_LogDir(t *testing.T) {
	root := buildTree(t)
	logDir := filepath.Join(t.TempDir(), "logs")

	res := execute(t, "", root, "-m", "0", "--log-dir", logDir, "--log-level", "debug")

	require.NoError(t, res.err)
	data, err := os.ReadFile(filepath.Join(logDir, "latest.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DEBUG] walk ")
	assert.Contains(t, string(data), "[INFO] Listed 5 files under")
	assert.Contains(t, res.stderr, "[INFO] Listed 5 files under")
}
