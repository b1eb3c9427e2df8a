package commands_test

import (
	"bufio"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestServe_RunNow(t *testing.T) {
	dir := initProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "raw_pdfs", "hdfc", "corrupt.pdf"), []byte("not a pdf"), 0o644))

	cmd := exec.Command(binaryPath, "serve", "--run-now", "--addr", "127.0.0.1:0")
	cmd.Dir = dir
	cmd.Env = cleanEnv()
	stderr, err := cmd.StderrPipe()
	require.NoError(t, err)
	require.NoError(t, cmd.Start())

	finished := make(chan struct{})
	go func() {
		sc := bufio.NewScanner(stderr)
		for sc.Scan() {
			if strings.Contains(sc.Text(), "batch finished") {
				close(finished)
				break
			}
		}
		_, _ = io.Copy(io.Discard, stderr)
	}()

	select {
	case <-finished:
	case <-time.After(10 * time.Second):
		_ = cmd.Process.Kill()
		t.Fatal("startup batch did not finish")
	}

	require.NoError(t, cmd.Process.Signal(syscall.SIGINT))
	require.NoError(t, cmd.Wait())
}
