package verification

import (
	"context"

	"github.com/consensuslabs/reelstream/backend/internal/logger"
)

// Sender delivers a verification code to an email address
type Sender interface {
	Send(ctx context.Context, email, code string) error
}

// LogSender writes codes to the log instead of delivering them.
// It is the default until a mail provider is configured.
type LogSender struct {
	logger logger.Logger
}

// NewLogSender creates a Sender that only logs
func NewLogSender(log logger.Logger) *LogSender {
	return &LogSender{logger: log}
}

func (s *LogSender) Send(ctx context.Context, email, code string) error {
	s.logger.LogInfo("Verification code issued", map[string]interface{}{
		"email": email,
		"code":  code,
	})
	return nil
}
