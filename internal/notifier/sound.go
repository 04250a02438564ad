package notifier

import (
	"context"
	"io"
	"os"
	"os/exec"
	"time"

	"hotkeytrader/internal/logger"
	"hotkeytrader/internal/trading"
)

// Terminal bell patterns used when no player is configured.
const (
	successBell = "\a"
	errorBell   = "\a\a\a"
)

// SoundConfig selects the audio cue for each outcome.
type SoundConfig struct {
	Player      string
	PlayerArgs  []string
	SuccessFile string
	ErrorFile   string
	Timeout     time.Duration
}

// Sound plays a cue for succeeded and failed actions. Skipped actions are
// silent. Without a player it rings the terminal bell once for success
// and three times for an error.
type Sound struct {
	cfg  SoundConfig
	bell io.Writer
	run  func(ctx context.Context, name string, args ...string) error
}

func NewSound(cfg SoundConfig) *Sound {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Sound{cfg: cfg, bell: os.Stdout, run: runCommand}
}

func (s *Sound) Notify(_ context.Context, out trading.Outcome) {
	var file, pattern string
	switch out.Status {
	case trading.StatusSucceeded:
		file, pattern = s.cfg.SuccessFile, successBell
	case trading.StatusFailed:
		file, pattern = s.cfg.ErrorFile, errorBell
	default:
		return
	}
	if s.cfg.Player == "" || file == "" {
		_, _ = io.WriteString(s.bell, pattern)
		return
	}
	args := append(append([]string(nil), s.cfg.PlayerArgs...), file)
	go s.play(args)
}

func (s *Sound) play(args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Timeout)
	defer cancel()
	if err := s.run(ctx, s.cfg.Player, args...); err != nil {
		logger.Warnf("sound: %s %v failed: %v", s.cfg.Player, args, err)
	}
}

func runCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}
