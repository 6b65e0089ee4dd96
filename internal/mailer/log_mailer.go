package mailer

import (
	"context"

	"go.uber.org/zap"
)

// メール送信の代わりにログに出す
type LogMailer struct {
	log *zap.Logger
}

// DI
func NewLogMailer(log *zap.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, to string, resetURL string) error {
	m.log.Info("password reset mail",
		zap.String("to", to),
		zap.String("url", resetURL),
	)
	return nil
}
