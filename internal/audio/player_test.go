package audio

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewPlayerParsesCommand(t *testing.T) {
	p, err := NewPlayer(`myplayer -q --device "usb audio"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"myplayer", "-q", "--device", "usb audio"}
	if len(p.cmd) != len(want) {
		t.Fatalf("expected %d args, got %v", len(want), p.cmd)
	}
	for i, w := range want {
		if p.cmd[i] != w {
			t.Fatalf("arg %d: expected %q, got %q", i, w, p.cmd[i])
		}
	}
}

func TestNewPlayerRejectsBlankCommand(t *testing.T) {
	if _, err := NewPlayer("   "); err == nil {
		t.Fatal("expected error for blank command")
	}
}

func TestPlayerRunsCommand(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "played.txt")
	script := filepath.Join(dir, "player.sh")
	body := "#!/bin/sh\nprintf '%s' \"$1\" > " + marker + "\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatal(err)
	}

	p, err := NewPlayer(script)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Play(context.Background(), []float32{0, 0.25, -0.25}, 24000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	recorded, err := os.ReadFile(marker)
	if err != nil {
		t.Fatalf("player was not invoked: %v", err)
	}
	path := string(recorded)
	if !strings.HasSuffix(path, ".wav") {
		t.Fatalf("expected a wav path argument, got %q", path)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("temp file %q not cleaned up", path)
	}
}

func TestPlayerReportsFailure(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "player.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nexit 3\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	p, err := NewPlayer(script)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Play(context.Background(), []float32{0}, 24000); err == nil {
		t.Fatal("expected error from failing player")
	}
}
