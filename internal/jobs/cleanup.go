// Package jobs runs the background maintenance the request path deliberately
// leaves behind: expired OTP records are soft-consumed in place, and staged
// upload files can be orphaned by a crashed request.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/gucci1909/regis/internal/config"
	"github.com/gucci1909/regis/internal/intake"
	"github.com/gucci1909/regis/internal/otp"
)

const (
	// Expired OTP records are kept around briefly so a late verify attempt
	// still gets the "expired" answer instead of "invalid".
	otpRetention = time.Hour
	staleFileAge = time.Hour
)

type Cleanup struct {
	otpRepo   otp.Repository
	uploadDir string
	logger    *zap.Logger
	cron      *cron.Cron
}

func NewCleanup(otpRepo otp.Repository, cfg config.UploadConfig, logger *zap.Logger) *Cleanup {
	return &Cleanup{
		otpRepo:   otpRepo,
		uploadDir: cfg.Dir,
		logger:    logger,
		cron:      cron.New(),
	}
}

func (c *Cleanup) Start() error {
	if _, err := c.cron.AddFunc("@hourly", c.run); err != nil {
		return err
	}
	c.cron.Start()
	return nil
}

func (c *Cleanup) Stop() {
	<-c.cron.Stop().Done()
}

func (c *Cleanup) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := c.otpRepo.DeleteExpiredBefore(ctx, time.Now().UTC().Add(-otpRetention))
	if err != nil {
		c.logger.Error("failed to purge expired OTPs", zap.Error(err))
	}

	removed, err := intake.CleanupStale(c.uploadDir, staleFileAge)
	if err != nil {
		c.logger.Error("failed to clean staged uploads", zap.Error(err))
	}

	c.logger.Info("cleanup pass finished",
		zap.Int64("otps_deleted", deleted),
		zap.Int("staged_files_removed", removed),
	)
}
