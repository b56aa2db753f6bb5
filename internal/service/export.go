package service

import (
	"context"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/swhelper/siege-backend/internal/app/appconfig"
	"github.com/swhelper/siege-backend/internal/infra"
	"github.com/swhelper/siege-backend/internal/pkg/archiver"
	"github.com/swhelper/siege-backend/internal/repo"
)

var ErrExportNotConfigured = errors.New("export: s3 bucket is not configured")

// Export publishes the stored siege logs to S3 so that a deployment reading from
// the s3 sheet source sees them, and keeps a dated archive copy.
type Export struct {
	Config       *appconfig.Config
	SiegeLogRepo *repo.SiegeLog

	lock     *redsync.Mutex
	archiver *archiver.Archiver
}

func NewExport(conf *appconfig.Config, siegeLogRepo *repo.SiegeLog, locker *infra.Locker) (*Export, error) {
	s := &Export{
		Config:       conf,
		SiegeLogRepo: siegeLogRepo,
		lock:         locker.Mutex("export", 10*time.Minute, 2),
	}
	if conf.S3Bucket == "" {
		return s, nil
	}

	client, err := newS3Client(context.Background(), conf)
	if err != nil {
		return nil, err
	}
	s.archiver = &archiver.Archiver{
		S3Client: client,
		S3Bucket: conf.S3Bucket,
		S3Prefix: conf.S3Prefix,
	}
	return s, nil
}

func (s *Export) ExportSheet(ctx context.Context, date time.Time) error {
	if s.archiver == nil {
		return ErrExportNotConfigured
	}
	if err := s.lock.LockContext(ctx); err != nil {
		return errors.Wrap(err, "failed to acquire lock")
	}
	defer s.lock.UnlockContext(ctx)

	table, err := NewSiegeLogProvider(s.SiegeLogRepo, s.Config.SheetName).Table(ctx, s.Config.SheetName)
	if err != nil {
		return err
	}

	if err := s.archiver.Publish(ctx, table); err != nil {
		return errors.Wrap(err, "failed to publish sheet")
	}

	if err := s.archiver.Archive(ctx, table, date); err != nil {
		if errors.Is(err, archiver.ErrFileAlreadyExists) {
			log.Info().
				Str("evt.name", "export.archive").
				Str("sheet", table.Name).
				Msg("already archived")
			return nil
		}
		return errors.Wrap(err, "failed to archive sheet")
	}
	return nil
}
