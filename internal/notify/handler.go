package notify

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/term"
)

// dispatchTimeout bounds how long a notification may block the watcher.
const dispatchTimeout = 5 * time.Second

// Handler decides whether a watch event deserves a notification and hands
// it to a Sender.
type Handler struct {
	config      Config
	sender      Sender
	interactive func() bool
}

// NewHandler creates a handler that uses the platform sender.
func NewHandler(config Config) *Handler {
	return NewHandlerWithSender(config, NewSender())
}

// NewHandlerWithSender creates a handler with a custom sender.
func NewHandlerWithSender(config Config, sender Sender) *Handler {
	return &Handler{
		config:      config,
		sender:      sender,
		interactive: isInteractive,
	}
}

// Config returns the handler's notification configuration
func (h *Handler) Config() Config {
	return h.config
}

func (h *Handler) isEnabled() bool {
	if !h.config.Enabled {
		return false
	}
	if isCI() {
		logDebug("[notify] skipped: running in CI")
		return false
	}
	if !h.interactive() {
		logDebug("[notify] skipped: no terminal attached")
		return false
	}
	return true
}

func isCI() bool {
	for _, v := range []string{
		"CI",
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"CIRCLECI",
		"JENKINS_URL",
		"BUILDKITE",
		"TF_BUILD",
	} {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// isInteractive checks stdout first because stdin is often piped.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) ||
		term.IsTerminal(int(os.Stderr.Fd())) ||
		term.IsTerminal(int(os.Stdin.Fd()))
}

// OnRegenerated is called after the watched release was rendered again.
func (h *Handler) OnRegenerated(tag string, written bool, duration time.Duration) {
	if !h.isEnabled() {
		return
	}
	if h.config.MinDuration > 0 && duration < h.config.MinDuration {
		logDebug("[notify] skipped: %s below threshold %s", duration, h.config.MinDuration)
		return
	}
	verb := "rendered"
	if written {
		verb = "written"
	}
	h.dispatch(NewNotification("tagnotes",
		fmt.Sprintf("%s %s (%s)", tag, verb, formatDuration(duration)), TypeSuccess))
}

// OnError is called when regenerating the watched release failed.
func (h *Handler) OnError(tag string, err error) {
	if !h.isEnabled() || !h.config.OnError {
		return
	}
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	h.dispatch(NewNotification("tagnotes", fmt.Sprintf("%s failed: %s", tag, msg), TypeFailure))
}

// dispatch sends n without blocking the caller for longer than
// dispatchTimeout. Send failures are only logged.
func (h *Handler) dispatch(n Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- h.sender.Send(n) }()

	select {
	case err := <-done:
		if err != nil {
			logDebug("[notify] send failed: %v", err)
			return
		}
		logDebug("[notify] sent %q", n.Message)
	case <-ctx.Done():
		logDebug("[notify] timed out after %s", dispatchTimeout)
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%.1fm", d.Minutes())
}
