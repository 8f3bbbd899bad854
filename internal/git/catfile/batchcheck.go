package catfile

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"gitlab.com/gitlab-org/gitref/internal/git"
)

// BatchCheck encapsulates a 'git cat-file --batch-check' process. It is safe
// for concurrent use; requests are serialized.
type BatchCheck struct {
	r   *bufio.Reader
	w   io.WriteCloser
	cmd *exec.Cmd

	closeOnce sync.Once
	closeErr  error
	done      chan struct{}

	sync.Mutex
}

// NewBatchCheck spawns a cat-file process for the repository at gitDir using
// the git executable at gitBin. The process is terminated when ctx is done
// or Close is called.
func NewBatchCheck(ctx context.Context, gitBin, gitDir string) (*BatchCheck, error) {
	cmd := exec.CommandContext(ctx, gitBin, "--git-dir", gitDir, "cat-file", "--batch-check")

	w, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("cat-file stdin: %w", err)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("cat-file stdout: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("spawn cat-file: %w", err)
	}

	totalCatfileProcesses.Inc()
	currentCatfileProcesses.Inc()

	bc := &BatchCheck{
		r:    bufio.NewReader(stdout),
		w:    w,
		cmd:  cmd,
		done: make(chan struct{}),
	}

	go func() {
		select {
		case <-ctx.Done():
			// This is crucial to prevent leaking file descriptors.
			bc.Close()
		case <-bc.done:
		}
	}()

	return bc, nil
}

// Info implements InfoReader.
func (bc *BatchCheck) Info(ctx context.Context, oid git.ObjectID) (*ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Every request must be exactly one line.
	if _, err := git.NewObjectIDFromHex(oid.String()); err != nil {
		return nil, err
	}

	bc.Lock()
	defer bc.Unlock()

	if _, err := fmt.Fprintln(bc.w, oid.String()); err != nil {
		return nil, fmt.Errorf("write cat-file request: %w", err)
	}

	return ParseObjectInfo(bc.r)
}

// Close stops the cat-file process and waits for it to exit.
func (bc *BatchCheck) Close() error {
	bc.closeOnce.Do(func() {
		close(bc.done)
		bc.w.Close()
		bc.closeErr = bc.cmd.Wait()
		currentCatfileProcesses.Dec()
	})

	return bc.closeErr
}
