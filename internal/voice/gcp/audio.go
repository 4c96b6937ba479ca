package gcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// runner abstracts process execution.
type runner interface {
	LookPath(file string) (string, error)
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	Run(ctx context.Context, name string, args ...string) error
}

type execRunner struct{}

func (execRunner) LookPath(file string) (string, error) { return exec.LookPath(file) }

func (execRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil && stderr.Len() > 0 {
		return out, fmt.Errorf("%w: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}
	return out, err
}

func (execRunner) Run(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// audio records raw 16-bit mono PCM and plays MP3 files.
type audio struct {
	cfg Config
	run runner
}

func newAudio(cfg Config, r runner) *audio {
	return &audio{cfg: cfg, run: r}
}

var errNoTool = errors.New("no suitable program found on PATH")

// recorder returns the capture command line, writing raw PCM to stdout.
func (a *audio) recorder() ([]string, error) {
	if len(a.cfg.Recorder) > 0 {
		return a.cfg.Recorder, nil
	}
	rate := strconv.Itoa(a.cfg.SampleRate)
	secs := strconv.Itoa(a.cfg.RecordSeconds)
	candidates := [][]string{
		{"arecord", "-q", "-f", "S16_LE", "-r", rate, "-c", "1", "-d", secs, "-t", "raw", "-"},
		{"rec", "-q", "-t", "raw", "-r", rate, "-b", "16", "-c", "1", "-e", "signed-integer", "-", "trim", "0", secs},
	}
	return a.first(candidates, "recorder")
}

// player returns the playback command line; the audio file path is
// appended.
func (a *audio) player() ([]string, error) {
	if len(a.cfg.Player) > 0 {
		return a.cfg.Player, nil
	}
	candidates := [][]string{
		{"mpg123", "-q"},
		{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
		{"afplay"},
	}
	return a.first(candidates, "player")
}

func (a *audio) first(candidates [][]string, what string) ([]string, error) {
	for _, c := range candidates {
		if _, err := a.run.LookPath(c[0]); err == nil {
			return c, nil
		}
	}
	return nil, fmt.Errorf("audio %s: %w", what, errNoTool)
}

func (a *audio) record(ctx context.Context) ([]byte, error) {
	cmd, err := a.recorder()
	if err != nil {
		return nil, err
	}
	out, err := a.run.Output(ctx, cmd[0], cmd[1:]...)
	if err != nil {
		return nil, fmt.Errorf("record with %s: %w", cmd[0], err)
	}
	return out, nil
}

func (a *audio) play(ctx context.Context, mp3 []byte) error {
	if len(mp3) == 0 {
		return errors.New("empty audio")
	}
	cmd, err := a.player()
	if err != nil {
		return err
	}

	f, err := os.CreateTemp("", "edunova-*.mp3")
	if err != nil {
		return fmt.Errorf("create temp audio: %w", err)
	}
	defer os.Remove(f.Name())
	if _, err := f.Write(mp3); err != nil {
		f.Close()
		return fmt.Errorf("write temp audio: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp audio: %w", err)
	}

	args := append(append([]string(nil), cmd[1:]...), f.Name())
	if err := a.run.Run(ctx, cmd[0], args...); err != nil {
		return fmt.Errorf("play with %s: %w", cmd[0], err)
	}
	return nil
}
