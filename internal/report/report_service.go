package report

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go-elms/internal/shared/apperror"
	"go-elms/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	summaryCacheKey = "report:summary"
	summaryCacheTTL = 30 * time.Second
)

var ErrInvalidMonth = apperror.New(
	apperror.CodeInvalidInput,
	"invalid month, expected YYYY-MM",
	http.StatusBadRequest,
)

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	Project(ctx context.Context, f Filter) ([]Row, error)
	RenderCSV(ctx context.Context, f Filter) ([]byte, error)
	RenderPDF(ctx context.Context, f Filter) ([]byte, error)
	Summary(ctx context.Context) (Summary, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	group  singleflight.Group
	logger *zap.Logger
}

// NewService builds the reporting facade. rdb may be nil; the summary is then
// recomputed on every call.
func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{repo: repo, rdb: rdb, logger: l}
}

func (s *service) Project(ctx context.Context, f Filter) ([]Row, error) {
	logger := contextutil.GetLogger(ctx, s.logger)

	if f.Month != "" {
		if _, err := time.Parse("2006-01", f.Month); err != nil {
			return nil, ErrInvalidMonth
		}
	}

	rows, err := s.repo.FindRows(ctx, f)
	if err != nil {
		logger.Error("report query failed", zap.Error(err))
		return nil, apperror.ErrInternal
	}
	return rows, nil
}

func (s *service) RenderCSV(ctx context.Context, f Filter) ([]byte, error) {
	rows, err := s.Project(ctx, f)
	if err != nil {
		return nil, err
	}
	return renderCSV(rows)
}

func (s *service) RenderPDF(ctx context.Context, f Filter) ([]byte, error) {
	rows, err := s.Project(ctx, f)
	if err != nil {
		return nil, err
	}
	return renderPDF(rows)
}

// Summary is cached briefly: the dashboard polls it and the counts query
// scans two tables. Concurrent misses share one recompute.
func (s *service) Summary(ctx context.Context) (Summary, error) {
	logger := contextutil.GetLogger(ctx, s.logger)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, summaryCacheKey).Result(); err == nil {
			var summary Summary
			if err := json.Unmarshal([]byte(cached), &summary); err == nil {
				return summary, nil
			}
		}
	}

	v, err, _ := s.group.Do(summaryCacheKey, func() (any, error) {
		summary, err := s.repo.CountSummary(ctx)
		if err != nil {
			return Summary{}, err
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(summary); err == nil {
				if err := s.rdb.Set(ctx, summaryCacheKey, payload, summaryCacheTTL).Err(); err != nil {
					logger.Warn("summary cache write failed", zap.Error(err))
				}
			}
		}
		return summary, nil
	})
	if err != nil {
		logger.Error("summary query failed", zap.Error(err))
		return Summary{}, apperror.ErrInternal
	}

	return v.(Summary), nil
}
