package notify

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Sender delivers a notification to the operating system.
type Sender interface {
	Send(n Notification) error
	Available() bool
}

// NewSender creates a sender for the current OS. Unsupported platforms get
// a sender that does nothing.
func NewSender() Sender {
	switch runtime.GOOS {
	case "darwin":
		return &commandSender{tool: "osascript", args: darwinArgs}
	case "linux":
		return &commandSender{tool: "notify-send", args: linuxArgs}
	default:
		return &noopSender{}
	}
}

// commandSender shells out to a notification tool found in PATH.
type commandSender struct {
	tool string
	args func(n Notification) []string
}

func (s *commandSender) Available() bool {
	_, err := exec.LookPath(s.tool)
	return err == nil
}

func (s *commandSender) Send(n Notification) error {
	if !s.Available() {
		return fmt.Errorf("%s not found in PATH", s.tool)
	}
	if out, err := exec.Command(s.tool, s.args(n)...).CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", s.tool, err, strings.TrimSpace(string(out)))
	}
	return nil
}

func linuxArgs(n Notification) []string {
	urgency := "normal"
	if n.NotificationType == TypeFailure {
		urgency = "critical"
	}
	return []string{"--app-name=tagnotes", "--urgency=" + urgency, n.Title, n.Message}
}

func darwinArgs(n Notification) []string {
	script := fmt.Sprintf("display notification %q with title %q", n.Message, n.Title)
	return []string{"-e", script}
}

type noopSender struct{}

func (s *noopSender) Send(_ Notification) error { return nil }
func (s *noopSender) Available() bool           { return false }
