package dataset_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ec2-instance-browser/internal/dataset"
	"github.com/rshade/ec2-instance-browser/internal/dataset/datasettest"
)

func openSample(t *testing.T) *dataset.Gateway {
	t.Helper()
	path := datasettest.Build(t, datasettest.Sample())
	gw, err := dataset.Open(context.Background(), path, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = gw.Close() })
	return gw
}

func TestOpen_MissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.db")

	gw, err := dataset.Open(context.Background(), path, zerolog.Nop())
	require.Error(t, err)
	assert.Nil(t, gw)
	assert.ErrorIs(t, err, dataset.ErrDatasetUnavailable)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NotErrorIs(t, err, dataset.ErrQueryFailed)

	var ue *dataset.UnavailableError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, path, ue.Path)
	assert.Contains(t, err.Error(), "Database file not found")
	assert.Contains(t, err.Error(), "data.db")
	assert.Contains(t, err.Error(), dir)
}

func TestOpen_Directory(t *testing.T) {
	dir := t.TempDir()

	_, err := dataset.Open(context.Background(), dir, zerolog.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrDatasetUnavailable)
	assert.Contains(t, err.Error(), dir)
}

func TestGateway_ListInstances(t *testing.T) {
	gw := openSample(t)

	rows, err := gw.ListInstances(context.Background())
	require.NoError(t, err)

	var types []string
	for _, r := range rows {
		types = append(types, r.InstanceType)
	}
	// Ordered ascending; orphan price/disk rows are never surfaced.
	assert.Equal(t, []string{"c5d.large", "g5.xlarge", "m5.large", "t3.micro", "x9.free"}, types)

	byType := make(map[string]dataset.InstanceRow)
	for _, r := range rows {
		byType[r.InstanceType] = r
	}

	m5 := byType["m5.large"]
	assert.Equal(t, 2, m5.VCPUs)
	assert.Equal(t, int64(8192), m5.MemorySizeInMiB)
	assert.Equal(t, "EBS only", m5.Storage)
	assert.Equal(t, "Up to 10 Gigabit", m5.NetworkPerformance)
	require.NotNil(t, m5.OnDemandLinuxHourly)
	assert.InDelta(t, 0.096, *m5.OnDemandLinuxHourly, 1e-12)

	// No price rows at all.
	assert.Nil(t, byType["c5d.large"].OnDemandLinuxHourly)

	// A literal zero price is a valid minimum.
	free := byType["x9.free"]
	require.NotNil(t, free.OnDemandLinuxHourly)
	assert.Zero(t, *free.OnDemandLinuxHourly)
}

func TestGateway_ListDisks(t *testing.T) {
	gw := openSample(t)

	rows, err := gw.ListDisks(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []dataset.DiskRow{
		{InstanceType: "g5.xlarge", Count: 1, SizeInGB: 250, Type: "ssd"},
		{InstanceType: "c5d.large", Count: 1, SizeInGB: 50, Type: "ssd"},
		{InstanceType: "orphan.large", Count: 2, SizeInGB: 100, Type: "hdd"},
	}, rows)
}

func TestGateway_ListRegions(t *testing.T) {
	gw := openSample(t)

	tests := []struct {
		name         string
		instanceType string
		want         []string
	}{
		{
			name:         "distinct and sorted",
			instanceType: "t3.micro",
			want:         []string{"EU (Ireland)", "US East (N. Virginia)"},
		},
		{
			name:         "no price samples",
			instanceType: "c5d.large",
			want:         []string{},
		},
		{
			name:         "unknown type",
			instanceType: "nope.nano",
			want:         []string{},
		},
		{
			name:         "quote in value is bound, not interpolated",
			instanceType: "t3.micro' OR '1'='1",
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := gw.ListRegions(context.Background(), tt.instanceType)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGateway_QueryFailure(t *testing.T) {
	gw := openSample(t)

	_, err := gw.Query(context.Background(), `SELECT nope FROM "missing-table"`)
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrQueryFailed)
	assert.NotErrorIs(t, err, dataset.ErrDatasetUnavailable)

	var qe *dataset.QueryError
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, "adhoc", qe.Query)

	// The gateway keeps serving after a failed query.
	rows, err := gw.ListInstances(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 5)
}

func TestGateway_Query(t *testing.T) {
	gw := openSample(t)

	rows, err := gw.Query(context.Background(),
		`SELECT instanceType, vCpus FROM "instance-types" WHERE vCpus > ? ORDER BY instanceType`, 2)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "g5.xlarge", rows[0]["instanceType"])
	assert.EqualValues(t, 4, rows[0]["vCpus"])

	rows, err = gw.Query(context.Background(), `SELECT instanceType FROM "instance-types" WHERE 0`)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGateway_ReadOnly(t *testing.T) {
	gw := openSample(t)

	_, err := gw.Query(context.Background(), `DELETE FROM "instance-types"`)
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrQueryFailed)

	rows, err := gw.ListInstances(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 5)
}

func TestGateway_CanceledContext(t *testing.T) {
	gw := openSample(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gw.ListInstances(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrQueryFailed)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGateway_ConcurrentQueries(t *testing.T) {
	gw := openSample(t)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := gw.ListInstances(context.Background())
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := gw.ListDisks(context.Background())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}
