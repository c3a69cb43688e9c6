package terminal

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/de-tools/text-atlas/pkg/models/api"
	"github.com/de-tools/text-atlas/pkg/services/config"
	"github.com/de-tools/text-atlas/pkg/services/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// syncBuffer lets a test read output while a command is still writing it
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type cliResult struct {
	stdout string
	stderr string
	err    error
}

func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer

	cli := NewCLI(Options{
		Input:  strings.NewReader(stdin),
		Output: &stdout,
		ErrOut: &stderr,
	})
	cli.SetArgs(args)
	err := cli.ExecuteContext(context.Background())

	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeText(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCLI_Analyze_File(t *testing.T) {
	path := writeText(t, "text.txt", "The quick brown fox.\n\nJumps over the lazy dog!\n")

	res := runCLI(t, "", "analyze", path)

	require.NoError(t, res.err)
	assert.Equal(t, `3 lines
47 characters
37 characters excluding spaces
9 words
2 paragraphs
3 sentences
`, res.stdout)
}

func TestCLI_Analyze_StdinByDefault(t *testing.T) {
	res := runCLI(t, "hello world", "analyze", "--minimal")

	require.NoError(t, res.err)
	assert.Equal(t, "1 lines\n11 characters\n10 characters excluding spaces\n2 words\n", res.stdout)
}

func TestCLI_Analyze_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "text.txt")

	res := runCLI(t, "", "analyze", missing)

	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, source.ErrInputUnavailable)
	assert.Contains(t, res.err.Error(), missing)
	assert.Empty(t, res.stdout)
}

func TestCLI_Analyze_MultipleInputs(t *testing.T) {
	first := writeText(t, "a.txt", "one")
	second := writeText(t, "b.txt", "two words")

	res := runCLI(t, "", "analyze", "--minimal", first, second)

	require.NoError(t, res.err)
	assert.Equal(t, "==> "+first+" <==\n"+
		"1 lines\n3 characters\n3 characters excluding spaces\n1 words\n"+
		"\n"+
		"==> "+second+" <==\n"+
		"1 lines\n9 characters\n8 characters excluding spaces\n2 words\n", res.stdout)
}

func TestCLI_Analyze_MultipleInputsTable(t *testing.T) {
	first := writeText(t, "a.txt", "one")
	second := writeText(t, "b.txt", "two words")

	res := runCLI(t, "", "analyze", "-f", "table", first, second)

	require.NoError(t, res.err)
	assert.NotContains(t, res.stdout, "==>")
	assert.Equal(t, 1, strings.Count(res.stdout, first))
	assert.Equal(t, 1, strings.Count(res.stdout, second))
}

func TestCLI_Analyze_JSON(t *testing.T) {
	path := writeText(t, "text.txt", "Hi. Bye!")

	res := runCLI(t, "", "analyze", "--format", "json", path)

	require.NoError(t, res.err)
	var report api.Report
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &report))
	assert.Equal(t, 3, report.SentenceCount)
	assert.Equal(t, path, report.Source)
}

func TestCLI_Analyze_Table(t *testing.T) {
	res := runCLI(t, "a b c", "analyze", "-f", "table")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "| Words")
	assert.Contains(t, res.stdout, "Source: -")
}

func TestCLI_Analyze_UnsupportedFormat(t *testing.T) {
	res := runCLI(t, "text", "analyze", "--format", "xml")

	assert.ErrorContains(t, res.err, `unsupported format "xml"`)
}

func TestCLI_Analyze_FormatFromConfig(t *testing.T) {
	cfgPath := writeText(t, "text-atlas.yaml", "report:\n  format: json\n  minimal: true\n")

	res := runCLI(t, "some text", "analyze", "--config", cfgPath)

	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "{"), res.stdout)

	res = runCLI(t, "some text", "analyze", "--config", cfgPath, "--format", "text")

	require.NoError(t, res.err)
	assert.Equal(t, "1 lines\n9 characters\n8 characters excluding spaces\n2 words\n", res.stdout)
}

func TestCLI_Analyze_BadConfig(t *testing.T) {
	res := runCLI(t, "text", "analyze", "--config", filepath.Join(t.TempDir(), "missing.yaml"))

	assert.ErrorContains(t, res.err, "failed to set up analysis")
}

func TestCLI_Sources(t *testing.T) {
	res := runCLI(t, "", "sources")

	require.NoError(t, res.err)
	assert.Equal(t, "Supported input schemes:\nfile\ns3\nstdin\n", res.stdout)
}

func TestCLI_Watch_ReprintsOnChange(t *testing.T) {
	path := writeText(t, "text.txt", "first draft")

	var stdout, stderr syncBuffer
	cli := NewCLI(Options{
		Input:  strings.NewReader(""),
		Output: &stdout,
		ErrOut: &stderr,
	})
	cli.SetArgs([]string{"watch", "--minimal", path})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- cli.ExecuteContext(ctx)
	}()

	reports := func() int {
		return strings.Count(stdout.String(), " words\n")
	}

	require.Eventually(t, func() bool { return reports() == 1 }, 5*time.Second, 10*time.Millisecond)
	assert.Contains(t, stdout.String(), "2 words\n")

	require.NoError(t, os.WriteFile(path, []byte("the final version"), 0o644))
	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), "3 words\n")
	}, 5*time.Second, 10*time.Millisecond)

	// removal is waited out, recreation is reported
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.WriteFile(path, []byte("back again with four"), 0o644))
	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), "4 words\n")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}

func TestCLI_Watch_RejectsRemoteInput(t *testing.T) {
	res := runCLI(t, "", "watch", "s3://bucket/key.txt")

	assert.ErrorContains(t, res.err, "only local files can be watched")
}

func TestNewSourceRegistry_UnknownProfile(t *testing.T) {
	profiles := writeText(t, "s3.ini", "[minio]\nendpoint = http://localhost:9000\n")

	reg, err := NewSourceRegistry(strings.NewReader(""), config.S3Config{
		ProfileFile: profiles,
		Profile:     "prod",
	})
	require.NoError(t, err)

	_, err = reg.Open(context.Background(), "s3://docs/a.txt")
	assert.ErrorIs(t, err, source.ErrInputUnavailable)
	assert.ErrorContains(t, err, "profile prod not found")
}

func TestCLI_Analyze_LocalFileIgnoresBrokenS3Profile(t *testing.T) {
	path := writeText(t, "text.txt", "local words")

	res := runCLI(t, "", "analyze", "--minimal", "--profile-file", path+".missing", "--profile", "prod", path)

	require.NoError(t, res.err)
	assert.Equal(t, "1 lines\n11 characters\n10 characters excluding spaces\n2 words\n", res.stdout)
}

func TestNewSourceRegistry_WithProfile(t *testing.T) {
	profiles := writeText(t, "s3.ini", "[minio]\nendpoint = http://localhost:9000\npath_style = true\n")

	reg, err := NewSourceRegistry(strings.NewReader(""), config.S3Config{
		ProfileFile: profiles,
		Profile:     "minio",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{source.SchemeFile, source.SchemeS3, source.SchemeStdin}, reg.ListSchemes())
}
