package executor

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"termlink/pkg/logging"
)

func init() {
	// Replace the exec command context with our mock in tests
	execCommandContext = mockExecCommandContext
}

func mockExecCommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	cs := []string{"-test.run=TestHelperProcess", "--", name}
	cs = append(cs, args...)
	cmd := exec.CommandContext(ctx, os.Args[0], cs...)
	cmd.Env = []string{"GO_WANT_HELPER_PROCESS=1"}
	return cmd
}

// TestHelperProcess stands in for the wrapped tool.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for i, arg := range args {
		if arg == "--" {
			args = args[i+1:]
			break
		}
	}
	if len(args) < 2 {
		fmt.Print("tool <command>\n")
		os.Exit(0)
	}

	switch args[1] {
	case "fail":
		fmt.Print("partial\n")
		fmt.Fprint(os.Stderr, "boom\n")
		os.Exit(3)
	case "sleep":
		time.Sleep(10 * time.Second)
		os.Exit(0)
	case "env":
		fmt.Print(os.Getenv("TERMLINK_EXTRA"))
		os.Exit(0)
	case "pwd":
		wd, _ := os.Getwd()
		fmt.Print(wd)
		os.Exit(0)
	default:
		fmt.Print(strings.Join(args, "|"))
		os.Exit(0)
	}
}

func TestMain(m *testing.M) {
	logging.InitForCLI(logging.LevelError, io.Discard)
	os.Exit(m.Run())
}

func TestRun_Success(t *testing.T) {
	e := New(Options{Path: "tool"})

	got := e.Run(context.Background(), `show "my stream" --format json`)

	assert.Equal(t, "tool|show|my stream|--format|json", got)
}

func TestRun_BaseArgs(t *testing.T) {
	e := New(Options{Path: "tool", Args: []string{"--profile", "dev"}})

	assert.Equal(t, "tool|--profile|dev|list", e.Run(context.Background(), "list"))
}

func TestRun_FailureIncludesStderr(t *testing.T) {
	e := New(Options{Path: "tool"})

	got := e.Run(context.Background(), "fail")

	assert.Equal(t, "partial\nboom\n", got)
}

func TestRun_Timeout(t *testing.T) {
	e := New(Options{Path: "tool", Timeout: 200 * time.Millisecond})

	start := time.Now()
	got := e.Run(context.Background(), "sleep")

	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Contains(t, got, "timed out after 200ms")
}

func TestRun_WorkDirAndEnv(t *testing.T) {
	t.Setenv("GO_WANT_HELPER_PROCESS", "1")
	dir := t.TempDir()
	e := New(Options{Path: "tool", WorkDir: dir, Env: []string{"TERMLINK_EXTRA=yes"}})

	assert.Equal(t, "yes", e.Run(context.Background(), "env"))

	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		resolved = dir
	}
	assert.Contains(t, []string{dir, resolved}, e.Run(context.Background(), "pwd"))
}

func TestRun_LaunchError(t *testing.T) {
	execCommandContext = exec.CommandContext
	t.Cleanup(func() { execCommandContext = mockExecCommandContext })

	e := New(Options{Path: "/nonexistent/termlink-tool"})

	got := e.Run(context.Background(), "list")

	assert.Contains(t, got, "/nonexistent/termlink-tool")
}

func TestSplit(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a b  c", []string{"a", "b", "c"}},
		{`add "two words"`, []string{"add", "two words"}},
		{`add 'single' x\ y`, []string{"add", "single", "x y"}},
		{`broken "quote`, []string{"broken", `"quote`}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Split(tt.in)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
