package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/swhelper/siege-backend/internal/app/appconfig"
	"github.com/swhelper/siege-backend/internal/model"
	"github.com/swhelper/siege-backend/internal/pkg/cache"
	"github.com/swhelper/siege-backend/internal/pkg/observability"
	"github.com/swhelper/siege-backend/internal/pkg/sheet"
	"github.com/swhelper/siege-backend/internal/repo"
)

const SheetCachePrefix = "sheet"

// Sheet reads battle log sheets from the configured source. When a snapshot cache
// is configured, whole tables are kept in redis for a short TTL; computed results
// are never cached.
type Sheet struct {
	source    string
	provider  sheet.Provider
	snapshots *cache.Set[sheet.Table]
	ttl       time.Duration
}

func NewSheet(conf *appconfig.Config, siegeLogRepo *repo.SiegeLog, redisClient *redis.Client) (*Sheet, error) {
	var provider sheet.Provider
	switch conf.SheetSource {
	case appconfig.SheetSourcePostgres:
		provider = NewSiegeLogProvider(siegeLogRepo, conf.SheetName)
	case appconfig.SheetSourceCSV:
		provider = &sheet.DirProvider{Dir: conf.SheetCSVDir}
	case appconfig.SheetSourceS3:
		client, err := newS3Client(context.Background(), conf)
		if err != nil {
			return nil, err
		}
		provider = &sheet.S3Provider{
			Client: client,
			Bucket: conf.S3Bucket,
			Prefix: conf.S3Prefix,
		}
	default:
		return nil, errors.Errorf("unknown sheet source %q", conf.SheetSource)
	}

	s := NewSheetWithProvider(conf.SheetSource, provider)
	if conf.SheetCacheTTL > 0 && redisClient != nil {
		s.snapshots = cache.NewSet[sheet.Table](redisClient, SheetCachePrefix)
		s.ttl = conf.SheetCacheTTL
	}
	return s, nil
}

// NewSheetWithProvider serves sheets straight from provider without a snapshot cache.
func NewSheetWithProvider(source string, provider sheet.Provider) *Sheet {
	return &Sheet{source: source, provider: provider}
}

func (s *Sheet) Table(ctx context.Context, name string) (*sheet.Table, error) {
	start := time.Now()
	if s.snapshots == nil {
		table, err := s.provider.Table(ctx, name)
		observability.SheetLoadDuration.WithLabelValues(s.source, "false").Observe(time.Since(start).Seconds())
		return table, err
	}

	table, calculated, err := s.snapshots.MutexGetSet(ctx, name, func() (*sheet.Table, error) {
		return s.provider.Table(ctx, name)
	}, s.ttl)
	observability.SheetLoadDuration.WithLabelValues(s.source, lo.Ternary(calculated, "false", "true")).Observe(time.Since(start).Seconds())
	return table, err
}

// Invalidate drops the cached snapshot of name, if any.
func (s *Sheet) Invalidate(ctx context.Context, name string) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.Delete(ctx, name); err != nil {
		log.Warn().Err(err).Str("sheet", name).Msg("failed to invalidate sheet snapshot")
	}
}

// NewSiegeLogProvider serves the siege_logs table as the sheet called sheetName.
func NewSiegeLogProvider(siegeLogRepo *repo.SiegeLog, sheetName string) sheet.Provider {
	return sheet.ProviderFunc(func(ctx context.Context, name string) (*sheet.Table, error) {
		if name != sheetName {
			return nil, errors.Wrapf(sheet.ErrSheetNotFound, "only %q is stored in postgres", sheetName)
		}
		logs, err := siegeLogRepo.GetSiegeLogs(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to get siege logs")
		}
		return &sheet.Table{
			Name:   name,
			Header: model.SiegeLogHeader,
			Rows: lo.Map(logs, func(l *model.SiegeLog, _ int) []any {
				return l.Row()
			}),
		}, nil
	})
}
