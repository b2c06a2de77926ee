package reportsrv

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/nexhire/nexhire/pkg/ats/report"
	"github.com/nexhire/nexhire/pkg/errx"
	"github.com/nexhire/nexhire/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tenant = kernel.NewTenantID("tenant-1")

type fakeReportRepo struct {
	records []report.RecruiterPerformanceRecord
}

func (f *fakeReportRepo) FindRecruiterRecords(ctx context.Context, tenantID kernel.TenantID, dateRange report.DateRange) ([]report.RecruiterPerformanceRecord, error) {
	return f.records, nil
}

func (f *fakeReportRepo) FindRecruiterRecord(ctx context.Context, tenantID kernel.TenantID, recruiter string, dateRange report.DateRange) (*report.RecruiterPerformanceRecord, error) {
	for _, r := range f.records {
		if r.Recruiter == recruiter {
			rec := r
			return &rec, nil
		}
	}
	return nil, nil
}

func (f *fakeReportRepo) FindTeamRecords(ctx context.Context, tenantID kernel.TenantID, teamID kernel.TeamID, dateRange report.DateRange) ([]report.RecruiterPerformanceRecord, error) {
	return f.records, nil
}

type memoryArchive struct {
	files map[string][]byte
}

func newMemoryArchive() *memoryArchive {
	return &memoryArchive{files: map[string][]byte{}}
}

func (m *memoryArchive) Write(ctx context.Context, path string, data []byte, contentType string) error {
	m.files[path] = data
	return nil
}

func (m *memoryArchive) Read(ctx context.Context, path string) ([]byte, error) {
	return m.files[path], nil
}

func (m *memoryArchive) Exists(ctx context.Context, path string) (bool, error) {
	_, ok := m.files[path]
	return ok, nil
}

func (m *memoryArchive) Delete(ctx context.Context, path string) error {
	delete(m.files, path)
	return nil
}

func validRange() report.DateRange {
	return report.DateRange{
		From: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	}
}

func seededService() (*ReportService, *memoryArchive) {
	repo := &fakeReportRepo{records: []report.RecruiterPerformanceRecord{
		{
			Recruiter:         "alice",
			ProfilesSubmitted: 10,
			SentToClient:      5,
			Offers:            report.OfferCounters{Made: 2, Accepted: 1},
			Joining:           report.JoiningCounters{Joined: 1},
		},
		{
			Recruiter:         "bob",
			ProfilesSubmitted: 4,
			SentToClient:      2,
		},
	}}
	archive := newMemoryArchive()
	return NewReportService(repo, archive), archive
}

func TestGetRecruiterMetrics(t *testing.T) {
	svc, _ := seededService()

	resp, err := svc.GetRecruiterMetrics(context.Background(), tenant, "alice", validRange())
	require.NoError(t, err)

	assert.Equal(t, "alice", resp.Recruiter)
	assert.Equal(t, 10, resp.Record.ProfilesSubmitted)
	assert.Len(t, resp.Metrics, 11)
}

func TestGetRecruiterMetricsUnknownRecruiter(t *testing.T) {
	svc, _ := seededService()

	_, err := svc.GetRecruiterMetrics(context.Background(), tenant, "nobody", validRange())

	var coded *errx.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, report.CodeRecruiterNotFound, coded.Code)
}

func TestGetRecruiterMetricsValidatesRange(t *testing.T) {
	svc, _ := seededService()
	r := validRange()
	r.From, r.To = r.To, r.From

	_, err := svc.GetRecruiterMetrics(context.Background(), tenant, "alice", r)

	var coded *errx.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, report.CodeInvalidDateRange, coded.Code)
}

func TestGetAllRecruiterMetrics(t *testing.T) {
	svc, _ := seededService()

	resp, err := svc.GetAllRecruiterMetrics(context.Background(), tenant, validRange())
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "alice", resp.Recruiters[0].Recruiter)
	assert.Equal(t, "bob", resp.Recruiters[1].Recruiter)
}

func TestGetFunnelSumsAcrossRecruiters(t *testing.T) {
	svc, _ := seededService()

	resp, err := svc.GetFunnel(context.Background(), tenant, validRange())
	require.NoError(t, err)

	assert.Equal(t, 14, resp.Totals.ProfilesSubmitted)
	assert.Equal(t, 7, resp.Totals.SentToClient)
	require.Len(t, resp.Stages, 9)
	assert.Equal(t, "Profiles Submitted", resp.Stages[0].Name)
	assert.Equal(t, 14, resp.Stages[0].Count)
}

func TestExportRecruiterReportArchivesRendering(t *testing.T) {
	svc, archive := seededService()

	resp, err := svc.ExportRecruiterReport(context.Background(), tenant, "alice", report.FormatTabular, validRange())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.Path, "reports/tenant-1/alice/"))
	assert.True(t, strings.HasSuffix(resp.Path, ".tsv"))
	assert.Equal(t, string(report.FormatTabular), resp.Format)

	stored, ok := archive.files[resp.Path]
	require.True(t, ok)
	assert.Contains(t, string(stored), "recruiter\talice")
}
