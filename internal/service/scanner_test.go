package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	githubMocks "github.com/tracker-tv/github-hygiene-bot/internal/github/mocks"
	"github.com/tracker-tv/github-hygiene-bot/internal/risk"
	"github.com/tracker-tv/github-hygiene-bot/models"
)

func newScanner(mockClient *githubMocks.MockClient, p *models.Policy) ScannerService {
	return NewScannerService(mockClient, NewIndexService(mockClient, p), p, risk.NewScorer(risk.DefaultWeights()), WithClock(clock))
}

func expectBranch(mockClient *githubMocks.MockClient) {
	mockClient.
		EXPECT().
		GetDefaultBranch(mock.Anything, "StegVerse", "api").
		Once().
		Return("main", nil)
}

func expectFile(mockClient *githubMocks.MockClient, path, content string, found bool) {
	mockClient.
		EXPECT().
		GetFile(mock.Anything, "StegVerse", "api", path, "main").
		Once().
		Return(content, found, nil)
}

func TestNewScannerService(t *testing.T) {
	mockClient := githubMocks.NewMockClient(t)

	svc := newScanner(mockClient, testPolicy())

	assert.NotNil(t, svc)
	assert.Implements(t, (*ScannerService)(nil), svc)
}

func TestScan_MissingStructuralFile(t *testing.T) {
	ctx := context.Background()
	mockClient := githubMocks.NewMockClient(t)

	expectBranch(mockClient)
	expectFile(mockClient, "README.md", "", false)

	report, err := newScanner(mockClient, testPolicy()).Scan(ctx, testRepo)

	require.NoError(t, err)
	assert.Equal(t, "StegVerse/api", report.Repo)
	assert.Equal(t, "main", report.Ref)
	assert.Equal(t, fixedNow, report.ScannedAt)
	assert.False(t, report.IndexPresent)
	assert.Empty(t, report.LogicQueue)
	require.Len(t, report.StructureQueue, 1)

	item := report.StructureQueue[0]
	assert.Equal(t, "README.md", item.Path)
	assert.Equal(t, models.QueueActionAdd, item.Action)
	assert.Equal(t, models.ReasonMissingRequired, item.Reason)
	assert.Equal(t, 10, item.WantedEpoch)
	assert.Equal(t, "3.0.0", item.WantedVersion)
	assert.Nil(t, item.FoundMetadata)
	assert.Equal(t, []string{}, item.DependsOnSecrets)
	assert.InDelta(t, 1.5, item.RiskScore, 1e-9)
	assert.NoError(t, item.Validate(models.QueueStructure))
}

func TestScan_CurrentFileEmitsNothing(t *testing.T) {
	ctx := context.Background()
	mockClient := githubMocks.NewMockClient(t)

	expectBranch(mockClient)
	expectFile(mockClient, "README.md", stamped("README.md", 10, "3.0.0"), true)

	report, err := newScanner(mockClient, testPolicy()).Scan(ctx, testRepo)

	require.NoError(t, err)
	assert.Empty(t, report.StructureQueue)
	assert.Empty(t, report.LogicQueue)
}

func TestScan_StaleFromTree(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantMeta bool
	}{
		{name: "older epoch", content: stamped("README.md", 9, "4.0.0"), wantMeta: true},
		{name: "older version", content: stamped("README.md", 10, "2.1"), wantMeta: true},
		{name: "no metadata block", content: "# api\n", wantMeta: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := githubMocks.NewMockClient(t)
			expectBranch(mockClient)
			expectFile(mockClient, "README.md", tt.content, true)

			report, err := newScanner(mockClient, testPolicy()).Scan(context.Background(), testRepo)

			require.NoError(t, err)
			require.Len(t, report.StructureQueue, 1)
			item := report.StructureQueue[0]
			assert.Equal(t, models.QueueActionReplace, item.Action)
			assert.Equal(t, models.ReasonStaleTree, item.Reason)
			if tt.wantMeta {
				require.NotNil(t, item.FoundMetadata)
				assert.Equal(t, "README.md", item.FoundMetadata.File)
			} else {
				assert.Nil(t, item.FoundMetadata)
			}
		})
	}
}

func TestScan_NonStructuralFileGoesToLogicQueue(t *testing.T) {
	ctx := context.Background()
	mockClient := githubMocks.NewMockClient(t)
	p := testPolicy(models.RequiredFile{Path: "scw/scw_core.py", DependsOnSecrets: []string{"GH_STEGVERSE_PAT"}})

	expectBranch(mockClient)
	expectFile(mockClient, "scw/scw_core.py", "", false)

	report, err := newScanner(mockClient, p).Scan(ctx, testRepo)

	require.NoError(t, err)
	assert.Empty(t, report.StructureQueue)
	require.Len(t, report.LogicQueue, 1)

	item := report.LogicQueue[0]
	assert.Equal(t, models.QueueActionTriage, item.Action)
	assert.Equal(t, models.QueueActionAdd, item.ProposedAction)
	assert.Equal(t, models.ReasonMissingRequired, item.Reason)
	assert.Equal(t, []string{"GH_STEGVERSE_PAT"}, item.DependsOnSecrets)
	assert.NoError(t, item.Validate(models.QueueLogic))
}

func TestScan_VersionCategory(t *testing.T) {
	ctx := context.Background()
	mockClient := githubMocks.NewMockClient(t)
	p := testPolicy(models.RequiredFile{Path: "SECURITY.md", VersionCategory: "docs"})

	expectBranch(mockClient)
	expectFile(mockClient, "SECURITY.md", stamped("SECURITY.md", 10, "1.0.0"), true)

	report, err := newScanner(mockClient, p).Scan(ctx, testRepo)

	require.NoError(t, err)
	assert.Empty(t, report.StructureQueue)
}

func TestScan_IndexFirst(t *testing.T) {
	ctx := context.Background()
	mockClient := githubMocks.NewMockClient(t)
	p := testPolicy(
		models.RequiredFile{Path: "README.md"},
		models.RequiredFile{Path: "SECURITY.md"},
		models.RequiredFile{Path: ".github/workflows/ci.yml"},
	)
	p.Scan.IndexFirst = true

	idx := models.FileIndex{
		Sig: models.FileIndexSig,
		Files: []models.IndexEntry{
			{Path: "README.md", Version: "1.0.0", Epoch: 9},
			{Path: "SECURITY.md", Version: "3.0.0", Epoch: 10},
		},
	}
	raw, err := json.Marshal(idx)
	require.NoError(t, err)

	expectBranch(mockClient)
	expectFile(mockClient, models.DefaultIndexPath, string(raw), true)
	expectFile(mockClient, ".github/workflows/ci.yml", "", false)

	report, err := newScanner(mockClient, p).Scan(ctx, testRepo)

	require.NoError(t, err)
	assert.True(t, report.IndexPresent)
	assert.Empty(t, report.Notes)
	require.Len(t, report.StructureQueue, 2)

	assert.Equal(t, "README.md", report.StructureQueue[0].Path)
	assert.Equal(t, models.QueueActionReplace, report.StructureQueue[0].Action)
	assert.Equal(t, models.ReasonStaleIndex, report.StructureQueue[0].Reason)
	require.NotNil(t, report.StructureQueue[0].FoundMetadata)
	assert.Equal(t, 9, report.StructureQueue[0].FoundMetadata.Epoch)

	assert.Equal(t, ".github/workflows/ci.yml", report.StructureQueue[1].Path)
	assert.Equal(t, models.ReasonMissingRequired, report.StructureQueue[1].Reason)
}

func TestScan_IndexWithWrongSignatureIsIgnored(t *testing.T) {
	ctx := context.Background()
	mockClient := githubMocks.NewMockClient(t)
	p := testPolicy()
	p.Scan.IndexFirst = true

	expectBranch(mockClient)
	expectFile(mockClient, models.DefaultIndexPath, `{"sv_index_sig":"fileindex:v0","files":[{"path":"README.md","sv_epoch":99}]}`, true)
	expectFile(mockClient, "README.md", "", false)

	report, err := newScanner(mockClient, p).Scan(ctx, testRepo)

	require.NoError(t, err)
	assert.False(t, report.IndexPresent)
	assert.Len(t, report.Notes, 1)
	require.Len(t, report.StructureQueue, 1)
	assert.Equal(t, models.ReasonMissingRequired, report.StructureQueue[0].Reason)
}

func TestScan_ProviderError(t *testing.T) {
	ctx := context.Background()
	mockClient := githubMocks.NewMockClient(t)

	expectBranch(mockClient)
	mockClient.
		EXPECT().
		GetFile(mock.Anything, "StegVerse", "api", "README.md", "main").
		Once().
		Return("", false, errors.New("boom"))

	report, err := newScanner(mockClient, testPolicy()).Scan(ctx, testRepo)

	assert.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), "README.md")
}

func TestScan_DefaultBranchError(t *testing.T) {
	ctx := context.Background()
	mockClient := githubMocks.NewMockClient(t)

	mockClient.
		EXPECT().
		GetDefaultBranch(mock.Anything, "StegVerse", "api").
		Once().
		Return("", errors.New("forbidden"))

	report, err := newScanner(mockClient, testPolicy()).Scan(ctx, testRepo)

	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestScan_Idempotent(t *testing.T) {
	ctx := context.Background()
	mockClient := githubMocks.NewMockClient(t)
	p := testPolicy(
		models.RequiredFile{Path: "README.md"},
		models.RequiredFile{Path: "scw/risk.py"},
	)

	mockClient.
		EXPECT().
		GetDefaultBranch(mock.Anything, "StegVerse", "api").
		Times(2).
		Return("main", nil)
	mockClient.
		EXPECT().
		GetFile(mock.Anything, "StegVerse", "api", "README.md", "main").
		Times(2).
		Return(stamped("README.md", 3, "1.0.0"), true, nil)
	mockClient.
		EXPECT().
		GetFile(mock.Anything, "StegVerse", "api", "scw/risk.py", "main").
		Times(2).
		Return("", false, nil)

	svc := newScanner(mockClient, p)
	first, err := svc.Scan(ctx, testRepo)
	require.NoError(t, err)
	second, err := svc.Scan(ctx, testRepo)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
