package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/clampwind/internal/log"
)

const (
	fluidInput  = ".a { width: clamp(1rem, 3rem); }\n"
	fluidOutput = ".a {\n  width: clamp(1rem, calc(-0.4286rem + 3.5714vw), 3rem);\n}\n"
	plainInput  = ".b { color: red; }\n"
)

type result struct {
	stdout string
	logs   string
	err    error
}

// execute runs the root command in a fresh temporary directory
func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()

	var logs bytes.Buffer
	log.SetOutput(&logs)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetLevel(log.LevelInfo)
	})

	var stdout bytes.Buffer
	if args == nil {
		args = []string{}
	}
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)

	err := cmd.Execute()
	return result{stdout: stdout.String(), logs: logs.String(), err: err}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestStdin(t *testing.T) {
	t.Chdir(t.TempDir())

	r := execute(t, fluidInput)
	require.NoError(t, r.err)
	assert.Equal(t, fluidOutput, r.stdout)
}

func TestStdinLanguage(t *testing.T) {
	t.Chdir(t.TempDir())

	input := "<style>\n  .a { width: clamp(1rem, 3rem); }\n</style>\n"
	r := execute(t, input, "--lang", "html")
	require.NoError(t, r.err)
	assert.Equal(t, "<style>\n  .a {\n    width: clamp(1rem, calc(-0.4286rem + 3.5714vw), 3rem);\n  }\n</style>\n", r.stdout)

	r = execute(t, input, "--lang", "ruby")
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "unsupported language")
}

func TestSingleFileToStdout(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, "a.css", fluidInput)

	r := execute(t, "", "a.css")
	require.NoError(t, r.err)
	assert.Equal(t, fluidOutput, r.stdout)
	assert.Equal(t, fluidInput, readFile(t, "a.css"), "source is untouched")
}

func TestWrite(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, "src/a.css", fluidInput)
	writeFile(t, "src/nested/b.css", plainInput)

	r := execute(t, "", "--write", "src/**/*.css")
	require.NoError(t, r.err)

	assert.Empty(t, r.stdout)
	assert.Equal(t, fluidOutput, readFile(t, "src/a.css"))
	assert.Equal(t, plainInput, readFile(t, "src/nested/b.css"))
	assert.Contains(t, r.logs, "1 of 2 files changed")
}

func TestOutDir(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, "src/a.css", fluidInput)
	writeFile(t, "src/b.css", plainInput)

	r := execute(t, "", "-o", "dist", "src/a.css", "src/b.css")
	require.NoError(t, r.err)

	assert.Equal(t, fluidOutput, readFile(t, "dist/src/a.css"))
	assert.Equal(t, plainInput, readFile(t, "dist/src/b.css"))
	assert.Equal(t, fluidInput, readFile(t, "src/a.css"))
}

func TestMultipleFilesNeedDestination(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, "a.css", fluidInput)
	writeFile(t, "b.css", plainInput)

	r := execute(t, "", "a.css", "b.css")
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "--write or --out-dir")
}

func TestDuplicatePatterns(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, "a.css", fluidInput)

	r := execute(t, "", "a.css", "*.css")
	require.NoError(t, r.err)
	assert.Equal(t, fluidOutput, r.stdout)
}

func TestNoMatches(t *testing.T) {
	t.Chdir(t.TempDir())

	r := execute(t, "", "*.css")
	require.Error(t, r.err)
	assert.Contains(t, r.logs, "No files match")
}

func TestErrorsDoNotStopOtherFiles(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, "a.css", fluidInput)
	writeFile(t, "b.css", ".b { color: red;\n")

	r := execute(t, "", "-w", "a.css", "b.css")
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "b.css")
	assert.Equal(t, fluidOutput, readFile(t, "a.css"))
}

func TestDiagnosticsAreLogged(t *testing.T) {
	t.Chdir(t.TempDir())

	r := execute(t, "@media (width >= 40rem) {\n  @container (width < 30rem) {\n    width: clamp(1rem, 2rem);\n  }\n}\n")
	require.NoError(t, r.err)
	assert.Contains(t, r.logs, "WARN: -:3:5:")
}

func TestTokensFlag(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, "tokens.json", `{
  "breakpoint": {
    "$type": "dimension",
    "sm": { "$value": "32rem" }
  }
}`)

	r := execute(t, fluidInput, "--tokens", "tokens.json")
	require.NoError(t, r.err)
	assert.Equal(t, ".a {\n  width: clamp(1rem, calc(0rem + 3.125vw), 3rem);\n}\n", r.stdout)
}

func TestConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, ".config/clampwind.yaml", "breakpoints:\n  sm: 32rem\n")

	r := execute(t, fluidInput)
	require.NoError(t, r.err)
	assert.Equal(t, ".a {\n  width: clamp(1rem, calc(0rem + 3.125vw), 3rem);\n}\n", r.stdout)
}

func TestConfigFlag(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, "settings.json", `{
  // trailing commas and comments are fine
  "breakpoints": { "sm": "32rem", },
}`)

	r := execute(t, fluidInput, "--config", "settings.json")
	require.NoError(t, r.err)
	assert.Equal(t, ".a {\n  width: clamp(1rem, calc(0rem + 3.125vw), 3rem);\n}\n", r.stdout)
}

func TestConfigInclude(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, "package.json", `{"name": "site", "clampwind": {"include": ["styles/*.css"]}}`)
	writeFile(t, "styles/a.css", fluidInput)

	r := execute(t, "", "-w")
	require.NoError(t, r.err)
	assert.Equal(t, fluidOutput, readFile(t, "styles/a.css"))
}

func TestPrecisionFlag(t *testing.T) {
	t.Chdir(t.TempDir())

	r := execute(t, fluidInput, "--precision", "2")
	require.NoError(t, r.err)
	assert.Equal(t, ".a {\n  width: clamp(1rem, calc(-0.43rem + 3.57vw), 3rem);\n}\n", r.stdout)

	r = execute(t, fluidInput, "--precision", "0")
	require.NoError(t, r.err)
	assert.Equal(t, ".a {\n  width: clamp(1rem, calc(0rem + 4vw), 3rem);\n}\n", r.stdout)

	r = execute(t, fluidInput, "--spacing", "0")
	require.NoError(t, r.err)
	assert.Equal(t, fluidOutput, r.stdout, "zero spacing keeps the default")

	for _, args := range [][]string{
		{"--spacing", "-1"},
		{"--precision", "-2"},
		{"--root-font-size", "-16"},
	} {
		r = execute(t, fluidInput, args...)
		require.Error(t, r.err, args)
		assert.Contains(t, r.err.Error(), "must not be negative")
	}
}

func TestVersionCommand(t *testing.T) {
	r := execute(t, "", "version")
	require.NoError(t, r.err)
	assert.True(t, strings.HasPrefix(r.stdout, "clampwind "))
}

func TestBadLogLevel(t *testing.T) {
	r := execute(t, "", "--log-level", "loud")
	require.Error(t, r.err)
}
