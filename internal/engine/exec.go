package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"sync"

	"github.com/mattn/go-shellwords"
)

// execRunner spawns one worker process per operation. The request is
// written to the worker's stdin and the worker prints a single JSON
// response on stdout before exiting.
type execRunner struct {
	cmd []string
	mu  sync.Mutex
}

func newExecRunner(command string) (*execRunner, error) {
	parser := shellwords.NewParser()
	args, err := parser.Parse(command)
	if err != nil {
		return nil, fmt.Errorf("parse worker command: %w", err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("worker command is empty")
	}
	return &execRunner{cmd: args}, nil
}

func (r *execRunner) Describe(ctx context.Context) (WorkerResponse, error) {
	return r.run(ctx, WorkerRequest{Op: opDescribe})
}

func (r *execRunner) Generate(ctx context.Context, req WorkerRequest) (WorkerResponse, error) {
	req.Op = opGenerate
	return r.run(ctx, req)
}

func (r *execRunner) run(ctx context.Context, req WorkerRequest) (WorkerResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	payload, err := json.Marshal(req)
	if err != nil {
		return WorkerResponse{}, err
	}
	payload = append(payload, '\n')

	base := r.cmd[0]
	args := append([]string{}, r.cmd[1:]...)
	command := exec.CommandContext(ctx, base, args...)
	command.Stdin = bytes.NewReader(payload)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		return WorkerResponse{}, fmt.Errorf("worker command failed: %w: %s", err, stderr.String())
	}

	var resp WorkerResponse
	if err := json.Unmarshal(bytes.TrimSpace(stdout.Bytes()), &resp); err != nil {
		return WorkerResponse{}, fmt.Errorf("decode worker response: %w", err)
	}
	return resp, nil
}
