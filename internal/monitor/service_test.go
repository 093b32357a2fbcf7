package monitor

import (
	"context"
	"errors"
	"testing"

	"github.com/aleister1102/careerwatch/internal/config"
	"github.com/aleister1102/careerwatch/internal/datastore"
	"github.com/aleister1102/careerwatch/internal/errorwrapper"
	"github.com/aleister1102/careerwatch/internal/extractor"
	"github.com/aleister1102/careerwatch/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExtractor serves canned results per source ID.
type fakeExtractor struct {
	results map[string]models.ExtractResult
	errs    map[string]error
}

func (fe *fakeExtractor) Extract(_ context.Context, src config.SourceConfig) (models.ExtractResult, error) {
	if err, failed := fe.errs[src.ID]; failed {
		return models.ExtractResult{}, err
	}
	return fe.results[src.ID], nil
}

func (fe *fakeExtractor) Close() error { return nil }

// fakeNotifier captures the digest it was asked to send.
type fakeNotifier struct {
	sent [][]models.ChangeRecord
	err  error
}

func (fn *fakeNotifier) Notify(records []models.ChangeRecord) error {
	fn.sent = append(fn.sent, records)
	return fn.err
}

func testConfig(t *testing.T, sourceIDs ...string) *config.GlobalConfig {
	t.Helper()
	cfg := config.NewDefaultGlobalConfig()
	cfg.StorageConfig.SnapshotDir = t.TempDir()
	for _, id := range sourceIDs {
		cfg.Sources = append(cfg.Sources, config.SourceConfig{
			ID:            id,
			URL:           "https://careers.example.com/" + id,
			CountSelector: "span.count",
			TitleSelector: "h3.title",
		})
	}
	return cfg
}

func newTestService(cfg *config.GlobalConfig, fe *fakeExtractor, fn *fakeNotifier) (*Service, *datastore.SnapshotStore) {
	store := datastore.NewSnapshotStore(cfg.StorageConfig, zerolog.Nop())
	extractors := map[string]extractor.SourceExtractor{"browser": fe}
	return NewService(cfg, store, nil, fn, extractors, zerolog.Nop()), store
}

func TestService_FirstRun_SavesSnapshotWithoutNotifying(t *testing.T) {
	cfg := testConfig(t, "google-careers")
	fe := &fakeExtractor{results: map[string]models.ExtractResult{
		"google-careers": {Count: 12, Titles: []string{"A", "B"}},
	}}
	fn := &fakeNotifier{}
	svc, store := newTestService(cfg, fe, fn)

	require.NoError(t, svc.Run(context.Background()))

	assert.Empty(t, fn.sent, "first observation must not notify")

	counts, titles := store.Load()
	assert.Equal(t, models.CountSnapshot{"google-careers": 12}, counts)
	assert.Equal(t, models.TitleSnapshot{"google-careers": {"A", "B"}}, titles)
}

func TestService_CountIncrease_SendsDigest(t *testing.T) {
	cfg := testConfig(t, "google-careers")
	fe := &fakeExtractor{results: map[string]models.ExtractResult{
		"google-careers": {Count: 15, Titles: []string{"A"}},
	}}
	fn := &fakeNotifier{}
	svc, store := newTestService(cfg, fe, fn)

	require.NoError(t, store.Save(
		models.CountSnapshot{"google-careers": 10},
		models.TitleSnapshot{"google-careers": {"A"}},
	))

	require.NoError(t, svc.Run(context.Background()))

	require.Len(t, fn.sent, 1)
	require.Len(t, fn.sent[0], 1)
	digestRecord := fn.sent[0][0]
	assert.Equal(t, models.CountIncreased, digestRecord.CountChange.Outcome)
	assert.Equal(t, 5, digestRecord.CountChange.Delta)

	counts, _ := store.Load()
	assert.Equal(t, 15, counts["google-careers"])
}

func TestService_UnchangedSource_Skipped(t *testing.T) {
	cfg := testConfig(t, "google-careers")
	fe := &fakeExtractor{results: map[string]models.ExtractResult{
		"google-careers": {Count: 10, Titles: []string{"A", "B"}},
	}}
	fn := &fakeNotifier{}
	svc, store := newTestService(cfg, fe, fn)

	require.NoError(t, store.Save(
		models.CountSnapshot{"google-careers": 10},
		models.TitleSnapshot{"google-careers": {"A", "B"}},
	))

	require.NoError(t, svc.Run(context.Background()))

	assert.Empty(t, fn.sent)
}

func TestService_FailedSource_KeepsOldSnapshotEntry(t *testing.T) {
	cfg := testConfig(t, "failing", "healthy")
	fe := &fakeExtractor{
		results: map[string]models.ExtractResult{
			"healthy": {Count: 7, Titles: []string{"X"}},
		},
		errs: map[string]error{
			"failing": errorwrapper.NewExtractionError("failing", "count selector not found", errorwrapper.ErrSelectorTimeout),
		},
	}
	fn := &fakeNotifier{}
	svc, store := newTestService(cfg, fe, fn)

	require.NoError(t, store.Save(
		models.CountSnapshot{"failing": 33, "healthy": 5},
		models.TitleSnapshot{"failing": {"Old Title"}},
	))

	require.NoError(t, svc.Run(context.Background()))

	counts, titles := store.Load()
	// The failed source keeps its previous values; the healthy one is updated.
	assert.Equal(t, 33, counts["failing"])
	assert.Equal(t, []string{"Old Title"}, titles["failing"])
	assert.Equal(t, 7, counts["healthy"])
	assert.Equal(t, []string{"X"}, titles["healthy"])
}

func TestService_TitleOnlyChange_EligibleUnderDefaultPolicy(t *testing.T) {
	cfg := testConfig(t, "google-careers")
	fe := &fakeExtractor{results: map[string]models.ExtractResult{
		"google-careers": {Count: 10, Titles: []string{"B", "A"}},
	}}
	fn := &fakeNotifier{}
	svc, store := newTestService(cfg, fe, fn)

	require.NoError(t, store.Save(
		models.CountSnapshot{"google-careers": 10},
		models.TitleSnapshot{"google-careers": {"A", "B"}},
	))

	require.NoError(t, svc.Run(context.Background()))

	require.Len(t, fn.sent, 1)
	assert.True(t, fn.sent[0][0].HasTitleChanges())
}

func TestService_NotificationFailure_SnapshotStillSaved(t *testing.T) {
	cfg := testConfig(t, "google-careers")
	fe := &fakeExtractor{results: map[string]models.ExtractResult{
		"google-careers": {Count: 20, Titles: []string{"A"}},
	}}
	fn := &fakeNotifier{err: errors.New("smtp unreachable")}
	svc, store := newTestService(cfg, fe, fn)

	require.NoError(t, store.Save(models.CountSnapshot{"google-careers": 10}, models.TitleSnapshot{}))

	require.NoError(t, svc.Run(context.Background()))

	counts, _ := store.Load()
	assert.Equal(t, 20, counts["google-careers"], "snapshot must be saved despite notification failure")
}

func TestService_DecreaseNotEligibleUnderDefaultPolicy(t *testing.T) {
	cfg := testConfig(t, "google-careers")
	fe := &fakeExtractor{results: map[string]models.ExtractResult{
		"google-careers": {Count: 8, Titles: []string{"A"}},
	}}
	fn := &fakeNotifier{}
	svc, store := newTestService(cfg, fe, fn)

	require.NoError(t, store.Save(
		models.CountSnapshot{"google-careers": 10},
		models.TitleSnapshot{"google-careers": {"A"}},
	))

	require.NoError(t, svc.Run(context.Background()))

	assert.Empty(t, fn.sent)

	// The decreased count is still persisted for the next run.
	counts, _ := store.Load()
	assert.Equal(t, 8, counts["google-careers"])
}

func TestService_BatchedDigest_CoversAllEligibleSources(t *testing.T) {
	cfg := testConfig(t, "alpha", "beta")
	fe := &fakeExtractor{results: map[string]models.ExtractResult{
		"alpha": {Count: 11, Titles: []string{"A"}},
		"beta":  {Count: 21, Titles: []string{"B"}},
	}}
	fn := &fakeNotifier{}
	svc, store := newTestService(cfg, fe, fn)

	require.NoError(t, store.Save(
		models.CountSnapshot{"alpha": 10, "beta": 20},
		models.TitleSnapshot{"alpha": {"A"}, "beta": {"B"}},
	))

	require.NoError(t, svc.Run(context.Background()))

	// One digest covering both sources, not one email per source.
	require.Len(t, fn.sent, 1)
	assert.Len(t, fn.sent[0], 2)
}
