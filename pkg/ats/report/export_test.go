package report

import (
	"strings"
	"testing"

	"github.com/nexhire/nexhire/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDispatchesByFormat(t *testing.T) {
	r := sampleRecord()
	metrics := DeriveMetrics(r)

	tabular, err := Render(FormatTabular, r, metrics)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(tabular, "recruiter\talice\n"))

	table, err := Render(FormatReport, r, metrics)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(table, "Recruiter Performance Report: alice\n"))
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render(ExportFormat("pdf"), sampleRecord(), nil)

	require.Error(t, err)
	var coded *errx.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, CodeUnknownFormat, coded.Code)
	assert.Equal(t, "pdf", coded.Details["format"])
}

func TestRenderTabularRows(t *testing.T) {
	r := sampleRecord()
	out := RenderTabular(r, DeriveMetrics(r))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	// 10 record rows plus one row per metric.
	require.Len(t, lines, 10+11)
	assert.Equal(t, "recruiter\talice", lines[0])
	assert.Equal(t, "sent_to_client\t20", lines[4])
	assert.Equal(t, "interviews_total\t36", lines[6])
	assert.Equal(t, "Submission to Client Rate\t0.5000", lines[10])
	assert.Contains(t, out, "profiles_submitted\t40")
	assert.Contains(t, out, "Join Rate\t0.5000")

	for _, line := range lines {
		assert.Contains(t, line, "\t", "every row is tab separated: %q", line)
	}
}

func TestRenderReportTableListsEveryMetric(t *testing.T) {
	r := sampleRecord()
	metrics := DeriveMetrics(r)
	out := RenderReportTable(r, metrics)

	assert.Contains(t, out, "Metric")
	assert.Contains(t, out, "Formula")
	for _, m := range metrics {
		assert.Contains(t, out, m.Name)
		assert.Contains(t, out, m.Formula)
	}
}

func TestRenderFormatsAreProjectionsOfTheSameInput(t *testing.T) {
	r := sampleRecord()
	metrics := DeriveMetrics(r)

	tabular, err := Render(FormatTabular, r, metrics)
	require.NoError(t, err)
	table, err := Render(FormatReport, r, metrics)
	require.NoError(t, err)

	// Same values surface in both renderings.
	for _, m := range metrics {
		assert.Contains(t, tabular, m.Name)
		assert.Contains(t, table, m.Name)
	}
	assert.NotEqual(t, tabular, table)
}
