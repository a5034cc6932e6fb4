package accessibility

import (
	"os/exec"
	"sync"

	"go.uber.org/zap"
)

// Speaker is the text-to-speech sink. Speak cancels any utterance still in
// progress before starting the new one: at most one utterance plays at a
// time and the newest request wins.
type Speaker interface {
	Speak(text string)
	Cancel()
}

// DetectSpeaker finds a usable text-to-speech command on this machine.
// Returns nil when none exists; callers treat a nil Speaker as a silently
// absent capability.
func DetectSpeaker(logger *zap.Logger) Speaker {
	if logger == nil {
		logger = zap.NewNop()
	}
	for _, bin := range []string{"say", "espeak", "espeak-ng"} {
		if path, err := exec.LookPath(bin); err == nil {
			logger.Debug("speech capability detected", zap.String("command", path))
			return &execSpeaker{bin: path, logger: logger}
		}
	}
	logger.Debug("no speech capability, reader mode will be silent")
	return nil
}

// execSpeaker shells out to a local TTS command. Failures are logged and
// swallowed; speech is best-effort.
type execSpeaker struct {
	bin    string
	logger *zap.Logger

	mu  sync.Mutex
	cmd *exec.Cmd
}

func (s *execSpeaker) Speak(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()

	cmd := exec.Command(s.bin, text)
	if err := cmd.Start(); err != nil {
		s.logger.Debug("speech start failed", zap.Error(err))
		return
	}
	s.cmd = cmd
	go func() { _ = cmd.Wait() }()
}

func (s *execSpeaker) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

// cancelLocked must be called with the mutex held.
func (s *execSpeaker) cancelLocked() {
	if s.cmd != nil && s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	s.cmd = nil
}
