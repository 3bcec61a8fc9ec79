// Package mail abstracts the transactional email sender.  The service only
// needs (recipient, subject, body) delivery with a success/failure result;
// no templating or provider SDK lives here.
package mail

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nikita-jha/cinema-booking-service-sub000/pkg/logger"
)

// Mailer delivers one transactional message.
type Mailer interface {
	Send(to, subject, body string) error
}

// FileMailer appends each message to an outbox file, one block per message.
// It stands in for a real relay in development and keeps notification
// delivery observable without external infrastructure.
type FileMailer struct {
	From string
	Path string

	mu  sync.Mutex
	log *zap.Logger
}

// NewFileMailer creates a FileMailer writing to path (default
// logs/outbox.log), creating the directory as needed.
func NewFileMailer(from, path string) *FileMailer {
	if path == "" {
		path = filepath.Join("logs", "outbox.log")
	}
	return &FileMailer{From: from, Path: path, log: logger.WithComponent("mailer")}
}

// Send appends the rendered message to the outbox file.  A recipient is
// required; everything else is best effort.
func (m *FileMailer) Send(to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("mail: empty recipient")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(m.Path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(m.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	stamp := time.Now().UTC().Format(time.RFC3339)
	_, err = fmt.Fprintf(f, "%s | from=%s to=%s subject=%q\n%s\n---\n",
		stamp, m.From, to, subject, body)
	if err == nil {
		m.log.Info("mail delivered to outbox", zap.String("to", to), zap.String("subject", subject))
	}
	return err
}
