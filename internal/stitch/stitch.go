package stitch

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Stitcher merges saved chunk files into one WAV with an external
// media tool.
type Stitcher struct {
	ffmpeg string
	logger *slog.Logger
}

func New(ffmpegPath string, log *slog.Logger) *Stitcher {
	return &Stitcher{
		ffmpeg: ffmpegPath,
		logger: log.With(slog.String("component", "stitch")),
	}
}

type chunkFile struct {
	path  string
	index int
}

// Run concatenates {base}_{n}.wav files under dir into {base}.wav in
// index order and deletes the inputs on success. Zero chunk files is a
// no-op. Tool failures are logged, never returned; the chunk files
// stay on disk for manual recovery.
func (s *Stitcher) Run(ctx context.Context, dir, base string) {
	chunks, err := collectChunks(dir, base)
	if err != nil {
		s.logger.Warn("failed to list chunk files", slogError(err))
		return
	}
	if len(chunks) == 0 {
		s.logger.Info("nothing to stitch")
		return
	}

	listFile := filepath.Join(dir, "chunks.txt")
	if err := writeListFile(listFile, chunks); err != nil {
		s.logger.Warn("failed to write chunk list", slogError(err))
		return
	}
	defer os.Remove(listFile)

	target := filepath.Join(dir, base+".wav")
	if err := s.runFFmpeg(ctx, listFile, target); err != nil {
		s.logger.Warn("stitch failed, chunk files kept", slogError(err))
		return
	}

	for _, chunk := range chunks {
		if err := os.Remove(chunk.path); err != nil {
			s.logger.Warn("failed to remove chunk file", slog.String("path", chunk.path), slogError(err))
		}
	}
	s.logger.Info("chunks stitched", slog.Int("count", len(chunks)), slog.String("path", target))
}

// collectChunks finds {base}_{n}.wav files and sorts them by n, not
// lexicographically, so chunk 10 comes after chunk 9.
func collectChunks(dir, base string) ([]chunkFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	prefix := base + "_"
	var chunks []chunkFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".wav") {
			continue
		}
		index, ok := chunkIndex(strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".wav"))
		if !ok {
			// not a chunk file, leave it alone
			continue
		}
		chunks = append(chunks, chunkFile{path: filepath.Join(dir, name), index: index})
	}
	sort.Slice(chunks, func(i, j int) bool { return chunks[i].index < chunks[j].index })
	return chunks, nil
}

// chunkIndex parses the numeric suffix of a chunk file name. Only the
// form the saver writes qualifies: plain digits, no sign, no leading
// zeros. Anything else is a foreign file and never touched.
func chunkIndex(s string) (int, bool) {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func writeListFile(path string, chunks []chunkFile) error {
	var b strings.Builder
	for _, chunk := range chunks {
		fmt.Fprintf(&b, "file '%s'\n", filepath.Base(chunk.path))
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func (s *Stitcher) runFFmpeg(ctx context.Context, listFile, target string) error {
	args := []string{"-f", "concat", "-safe", "0", "-i", listFile, "-c", "copy", target}
	command := exec.CommandContext(ctx, s.ffmpeg, args...)
	var stderr bytes.Buffer
	command.Stderr = &stderr
	if err := command.Run(); err != nil {
		return fmt.Errorf("%s failed: %w: %s", s.ffmpeg, err, stderr.String())
	}
	return nil
}

func slogError(err error) slog.Attr {
	return slog.String("error", err.Error())
}
