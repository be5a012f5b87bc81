package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapconv/internal/classfile/classfiletest"
)

const cliMapping = `# compiler: R8
a.Base -> x:
    void run() -> r
a.Child -> y:
`

// execute runs the root command in a scratch directory so a mapconv.yaml or
// .env next to the package is never picked up.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Chdir(t.TempDir())

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.Execute()

	return out.String(), err
}

// resetFlags restores flag defaults; cobra keeps values and Changed marks
// between Execute calls in one process.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}

	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)

	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestConvertCommand(t *testing.T) {
	in := writeTemp(t, "client.txt", cliMapping)
	sidecar := writeTemp(t, "hierarchy.yaml", "classes:\n  a.Child:\n    extends: a.Base\n")
	out := filepath.Join(t.TempDir(), "client.tsrg")

	_, err := execute(t, "convert", in, "-o", out, "--hierarchy", sidecar)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "x a/Base\n\tr ()V run\ny a/Child\n\tr ()V run\n", string(data))
}

func TestCheckCommand(t *testing.T) {
	in := writeTemp(t, "client.txt", cliMapping)
	jar := classfiletest.WriteJar(t,
		classfiletest.Class{Name: "x", Super: "java/lang/Object"},
		classfiletest.Class{Name: "y", Super: "x"},
	)

	out, err := execute(t, "check", in, "--jar", jar)
	require.NoError(t, err)
	assert.Contains(t, out, "classes:   2 (1 with ancestors, 2 edges attached)")
	assert.Contains(t, out, "methods:   1 own, 1 inherited")
	assert.Contains(t, out, "externals: 0")
}

func TestFormatCommand(t *testing.T) {
	in := writeTemp(t, "client.txt", cliMapping)

	out, err := execute(t, "format", in, "-o", "-")
	require.NoError(t, err)
	assert.Equal(t, "a.Base -> x:\n    void run() -> r\na.Child -> y:\n", out)
}

func TestHierarchyCommand(t *testing.T) {
	in := writeTemp(t, "client.txt", cliMapping)
	jar := classfiletest.WriteJar(t,
		classfiletest.Class{Name: "y", Super: "x", Interfaces: []string{"java/lang/Runnable"}},
	)

	out, err := execute(t, "hierarchy", in, jar)
	require.NoError(t, err)
	assert.Contains(t, out, "a.Child:")
	assert.Contains(t, out, "extends: a.Base")
	assert.Contains(t, out, "- java.lang.Runnable")
}

func TestConvertCommandErrors(t *testing.T) {
	_, err := execute(t, "convert")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no input mapping")

	bad := writeTemp(t, "bad.txt", "a.A -> a:\na.A -> b:\n")
	_, err = execute(t, "check", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate class mapping")
}

func TestConvertCommandReadsConfigFile(t *testing.T) {
	in := writeTemp(t, "client.txt", "a.A -> a:\n    int x -> b\n    int x -> b\n")
	out := filepath.Join(t.TempDir(), "from-config.tsrg")
	conf := writeTemp(t, "mapconv.yaml", "allow_redundant: true\noutput: "+out+"\n")

	_, err := execute(t, "--config", conf, "convert", in)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "a a/A\n\tb x\n", string(data))

	bad := writeTemp(t, "bad.yaml", "allow_redundnt: true\n")
	_, err = execute(t, "--config", bad, "check", in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}
