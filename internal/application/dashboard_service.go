package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/urex-bootcamp/internal/domain/entity"
	repo "github.com/oksasatya/urex-bootcamp/internal/domain/repository"
	"github.com/oksasatya/urex-bootcamp/internal/metrics"
	"github.com/oksasatya/urex-bootcamp/pkg/helpers"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
	maxSearchSize   = 50
)

var ErrUnknownExportFormat = errors.New("unknown export format")

// ExportArchiver stores a copy of an export and returns where it went.
type ExportArchiver interface {
	Archive(ctx context.Context, filename, contentType string, body []byte) (string, error)
}

// Dashboard is everything the admin dashboard shows.
type Dashboard struct {
	Registrations []entity.Registration `json:"registrations"`
	Stats         Stats                 `json:"stats"`
}

// PageResult is one page of registrations, newest first.
type PageResult struct {
	Registrations []entity.Registration `json:"registrations"`
	Page          int                   `json:"page"`
	Size          int                   `json:"size"`
	Total         int                   `json:"total"`
}

// Export is a rendered export file.
type Export struct {
	Filename    string
	ContentType string
	Body        []byte
}

type DashboardService struct {
	Repo       repo.RegistrationRepository
	Indexer    RegistrationIndexer
	Archiver   ExportArchiver
	Metrics    *metrics.Metrics
	Logger     *logrus.Logger
	DateLayout string
	now        func() time.Time
}

func NewDashboardService(r repo.RegistrationRepository, idx RegistrationIndexer, archiver ExportArchiver, m *metrics.Metrics, logger *logrus.Logger, dateLayout string) *DashboardService {
	return &DashboardService{
		Repo:       r,
		Indexer:    idx,
		Archiver:   archiver,
		Metrics:    m,
		Logger:     logger,
		DateLayout: dateLayout,
		now:        time.Now,
	}
}

// Load fetches every registration and recomputes the stats.
func (s *DashboardService) Load(ctx context.Context) (*Dashboard, error) {
	regs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	if regs == nil {
		regs = []entity.Registration{}
	}
	return &Dashboard{Registrations: regs, Stats: ComputeStats(regs)}, nil
}

// Page returns the 1-based page of the given size together with the total count.
func (s *DashboardService) Page(ctx context.Context, page, size int) (*PageResult, error) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	res := &PageResult{Page: page, Size: size}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		regs, err := s.Repo.Page(gctx, size, (page-1)*size)
		if err != nil {
			return fmt.Errorf("page registrations: %w", err)
		}
		res.Registrations = regs
		return nil
	})
	g.Go(func() error {
		n, err := s.Repo.Count(gctx)
		if err != nil {
			return fmt.Errorf("count registrations: %w", err)
		}
		res.Total = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if res.Registrations == nil {
		res.Registrations = []entity.Registration{}
	}
	return res, nil
}

// Search runs a full-text query over the registrations index.
func (s *DashboardService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.Indexer == nil || q == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > maxSearchSize {
		size = 10
	}
	return s.Indexer.Search(ctx, q, size)
}

// Export renders regs in the given format. regs are the records already
// loaded for the request; nothing is fetched again.
func (s *DashboardService) Export(ctx context.Context, regs []entity.Registration, format string) (*Export, error) {
	var (
		buf bytes.Buffer
		ct  string
		err error
	)
	switch format {
	case "", ExportFormatCSV:
		format, ct = ExportFormatCSV, ContentTypeCSV
		err = ExportCSV(&buf, regs, s.DateLayout)
	case ExportFormatXLSX:
		ct = ContentTypeXLSX
		err = ExportXLSX(&buf, regs, s.DateLayout)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExportFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s export: %w", format, err)
	}

	exp := &Export{Filename: ExportFilename(s.now(), format), ContentType: ct, Body: buf.Bytes()}
	s.Metrics.IncrementExport(format)
	s.archive(ctx, exp)
	return exp, nil
}

func (s *DashboardService) archive(ctx context.Context, exp *Export) {
	if s.Archiver == nil {
		return
	}
	uri, err := s.Archiver.Archive(ctx, exp.Filename, exp.ContentType, exp.Body)
	if err != nil {
		helpers.LogWarn(s.Logger, "export archive failed", err, logrus.Fields{"filename": exp.Filename})
		return
	}
	if s.Logger != nil {
		s.Logger.WithField("uri", uri).Info("export archived")
	}
}
