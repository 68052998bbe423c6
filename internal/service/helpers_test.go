package service

import (
	"time"

	"github.com/tracker-tv/github-hygiene-bot/internal/svmeta"
	"github.com/tracker-tv/github-hygiene-bot/models"
)

var (
	testRepo = models.Repository{Name: "api", FullName: "StegVerse/api", Owner: "StegVerse"}
	fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
)

func clock() time.Time { return fixedNow }

func testPolicy(files ...models.RequiredFile) *models.Policy {
	if len(files) == 0 {
		files = []models.RequiredFile{{Path: "README.md"}}
	}
	return &models.Policy{
		PolicyEpoch:             10,
		RequiredFiles:           files,
		MinVersions:             map[string]string{"workflow": "3.0.0", "docs": "1.0.0"},
		StructureAllowlistGlobs: []string{"README.md", "SECURITY.md", ".github/workflows/*.yml"},
		Scan:                    models.ScanOptions{IndexPath: models.DefaultIndexPath},
	}
}

func stamped(path string, epoch int, version string) string {
	meta := models.NewSvMeta()
	meta.File = path
	meta.Version = version
	meta.Epoch = epoch
	meta.Sig = models.SvMetaSig
	return svmeta.Stamp(meta, svmeta.StyleFor(path)) + "body\n"
}
