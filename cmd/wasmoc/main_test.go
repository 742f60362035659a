package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func emptyModuleBytes() []byte {
	return []byte{0x00, 'a', 's', 'm', 0x01, 0x00, 0x00, 0x00}
}

func TestDoMain_compilesModule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.wasm")
	require.NoError(t, os.WriteFile(path, emptyModuleBytes(), 0o644))

	exitCode, stdOut, stdErr := runMain(t, []string{path})
	require.Equal(t, 0, exitCode)
	require.Contains(t, stdOut, "compiled")
	require.Empty(t, stdErr)
}

func TestDoMain_missingFile(t *testing.T) {
	exitCode, _, stdErr := runMain(t, []string{filepath.Join(t.TempDir(), "does-not-exist.wasm")})
	require.Equal(t, 1, exitCode)
	require.Contains(t, stdErr, "wasmoc:")
}

func TestDoMain_malformedModule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wasm")
	require.NoError(t, os.WriteFile(path, []byte{0x01, 0x02}, 0o644))

	exitCode, _, stdErr := runMain(t, []string{path})
	require.Equal(t, 1, exitCode)
	require.Contains(t, stdErr, "wasmoc:")
}

func TestDoMain_help(t *testing.T) {
	exitCode, _, stdErr := runMain(t, []string{"-h"})
	require.Equal(t, 0, exitCode)
	require.Contains(t, stdErr, "usage:")
}

func TestDoMain_noArgs(t *testing.T) {
	exitCode, _, stdErr := runMain(t, nil)
	require.Equal(t, 1, exitCode)
	require.Contains(t, stdErr, "usage:")
}

// runMain resets the package-level flag set per call, matching a standard
// flag-based CLI's testing idiom: each invocation of doMain registers its own
// flags afresh, so a second call in the same test binary doesn't panic on a
// redefined flag.
func runMain(t *testing.T, args []string) (int, string, string) {
	t.Helper()
	flag.CommandLine = flag.NewFlagSet("wasmoc", flag.ContinueOnError)
	os.Args = append([]string{"wasmoc"}, args...)

	stdOut := &bytes.Buffer{}
	stdErr := &bytes.Buffer{}
	exitCode := doMain(stdOut, stdErr)
	return exitCode, stdOut.String(), stdErr.String()
}
