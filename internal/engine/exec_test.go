package engine

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeWorkerScript(t *testing.T, body string) string {
	t.Helper()
	script := filepath.Join(t.TempDir(), "worker.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatal(err)
	}
	return script
}

func TestNewExecRunnerRejectsEmptyCommand(t *testing.T) {
	if _, err := newExecRunner(""); err == nil {
		t.Fatal("expected error for empty command")
	}
}

func TestExecRunnerGenerate(t *testing.T) {
	capture := filepath.Join(t.TempDir(), "request.json")
	script := writeWorkerScript(t,
		"cat > "+capture+"\n"+
			`printf '%s' '{"graphemes":"hi there","phonemes":"/hi/","pcm_base64":"AAD/fw==","sample_rate":24000}'`+"\n")

	r, err := newExecRunner(script)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp, err := r.Generate(context.Background(), WorkerRequest{
		Text:     "hi there",
		LangCode: "b",
		Voice:    "bm_george",
		Speed:    1.0,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Graphemes != "hi there" || resp.Phonemes != "/hi/" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.SampleRate != 24000 {
		t.Fatalf("unexpected sample rate %d", resp.SampleRate)
	}
	samples, err := decodeSamples(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(samples) != 2 || samples[0] != 0 {
		t.Fatalf("unexpected samples %v", samples)
	}

	sent, err := os.ReadFile(capture)
	if err != nil {
		t.Fatalf("worker did not receive a request: %v", err)
	}
	var req WorkerRequest
	if err := json.Unmarshal(sent, &req); err != nil {
		t.Fatalf("worker received malformed request: %v", err)
	}
	if req.Op != "generate" {
		t.Fatalf("expected op generate, got %q", req.Op)
	}
	if req.Text != "hi there" || req.Voice != "bm_george" || req.LangCode != "b" {
		t.Fatalf("request fields lost: %+v", req)
	}
}

func TestExecRunnerDescribe(t *testing.T) {
	capture := filepath.Join(t.TempDir(), "request.json")
	script := writeWorkerScript(t,
		"cat > "+capture+"\n"+
			`printf '%s' '{"sample_rate":22050}'`+"\n")

	r, err := newExecRunner(script)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp, err := r.Describe(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.SampleRate != 22050 {
		t.Fatalf("unexpected sample rate %d", resp.SampleRate)
	}

	sent, err := os.ReadFile(capture)
	if err != nil {
		t.Fatalf("worker did not receive a request: %v", err)
	}
	var req WorkerRequest
	if err := json.Unmarshal(sent, &req); err != nil {
		t.Fatal(err)
	}
	if req.Op != "describe" {
		t.Fatalf("expected op describe, got %q", req.Op)
	}
}

func TestExecRunnerWorkerFailure(t *testing.T) {
	script := writeWorkerScript(t, "echo 'model exploded' >&2\nexit 2\n")
	r, err := newExecRunner(script)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = r.Generate(context.Background(), WorkerRequest{Text: "hi."})
	if err == nil {
		t.Fatal("expected error from failing worker")
	}
	if !strings.Contains(err.Error(), "model exploded") {
		t.Fatalf("worker stderr missing from error: %v", err)
	}
}

func TestExecRunnerMalformedOutput(t *testing.T) {
	script := writeWorkerScript(t, "cat > /dev/null\nprintf 'not json'\n")
	r, err := newExecRunner(script)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.Generate(context.Background(), WorkerRequest{Text: "hi."}); err == nil {
		t.Fatal("expected error for malformed worker output")
	}
}
