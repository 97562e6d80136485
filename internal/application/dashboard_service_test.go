package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oksasatya/urex-bootcamp/internal/domain/entity"
	"github.com/oksasatya/urex-bootcamp/internal/domain/repository/mocks"
)

type fakeArchiver struct {
	names []string
	err   error
}

func (f *fakeArchiver) Archive(_ context.Context, filename, _ string, _ []byte) (string, error) {
	f.names = append(f.names, filename)
	return "gs://bucket/exports/" + filename, f.err
}

func newDashboardService(t *testing.T) (*DashboardService, *mocks.MockRegistrationRepository, *fakeIndexer, *fakeArchiver) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRegistrationRepository(ctrl)
	idx := &fakeIndexer{}
	arc := &fakeArchiver{}
	svc := NewDashboardService(r, idx, arc, nil, nil, "1/2/2006")
	svc.now = func() time.Time { return time.Date(2025, 6, 7, 12, 0, 0, 0, time.UTC) }
	return svc, r, idx, arc
}

func TestLoad(t *testing.T) {
	svc, r, _, _ := newDashboardService(t)
	r.EXPECT().List(gomock.Any()).Return(exportFixture(), nil)

	d, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, d.Registrations, 2)
	assert.Equal(t, 2, d.Stats.Total)
	assert.Equal(t, 50, d.Stats.BeginnerPercentage)
}

func TestLoadEmptyAndFailure(t *testing.T) {
	svc, r, _, _ := newDashboardService(t)
	r.EXPECT().List(gomock.Any()).Return(nil, nil)
	d, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, d.Registrations)
	assert.Equal(t, "N/A", d.Stats.MostCommonMajor)

	r.EXPECT().List(gomock.Any()).Return(nil, errors.New("timeout"))
	_, err = svc.Load(context.Background())
	assert.Error(t, err)
}

func TestPage(t *testing.T) {
	svc, r, _, _ := newDashboardService(t)
	r.EXPECT().Page(gomock.Any(), 10, 20).Return(exportFixture()[:1], nil)
	r.EXPECT().Count(gomock.Any()).Return(21, nil)

	p, err := svc.Page(context.Background(), 3, 10)
	require.NoError(t, err)
	assert.Equal(t, 21, p.Total)
	assert.Equal(t, 3, p.Page)
	assert.Len(t, p.Registrations, 1)
}

func TestPageClampsAndPropagatesErrors(t *testing.T) {
	svc, r, _, _ := newDashboardService(t)
	r.EXPECT().Page(gomock.Any(), MaxPageSize, 0).Return(nil, nil)
	r.EXPECT().Count(gomock.Any()).Return(0, errors.New("boom"))

	_, err := svc.Page(context.Background(), 0, 10_000)
	assert.ErrorContains(t, err, "count registrations")
}

func TestSearch(t *testing.T) {
	svc, _, idx, _ := newDashboardService(t)
	idx.hits = []map[string]any{{"full_name": "Jane"}}

	hits, err := svc.Search(context.Background(), "jane", 0)
	require.NoError(t, err)
	assert.Len(t, hits, 1)

	hits, err = svc.Search(context.Background(), "", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestExportUsesLoadedRecordsAndArchives(t *testing.T) {
	svc, _, _, arc := newDashboardService(t)
	// no repository expectations: export must not fetch

	exp, err := svc.Export(context.Background(), exportFixture(), "")
	require.NoError(t, err)
	assert.Equal(t, "urex-registrations-2025-06-07.csv", exp.Filename)
	assert.Equal(t, ContentTypeCSV, exp.ContentType)
	assert.True(t, strings.HasPrefix(string(exp.Body), "Full Name,"))
	assert.Equal(t, []string{exp.Filename}, arc.names)

	arc.err = errors.New("bucket missing")
	exp, err = svc.Export(context.Background(), []entity.Registration{}, ExportFormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "urex-registrations-2025-06-07.xlsx", exp.Filename)

	_, err = svc.Export(context.Background(), nil, "pdf")
	assert.ErrorIs(t, err, ErrUnknownExportFormat)
}
