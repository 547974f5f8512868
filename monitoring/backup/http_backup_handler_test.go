package backup

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prysmaticlabs/gasper/testing/assert"
)

type fakeExporter struct {
	outputDir string
	override  bool
	err       error
}

func (f *fakeExporter) Backup(_ context.Context, outputPath string, permissionOverride bool) error {
	f.outputDir = outputPath
	f.override = permissionOverride
	return f.err
}

func TestHandler(t *testing.T) {
	bk := &fakeExporter{}
	h := Handler(bk, "/backups")

	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest("GET", "/db/backup?permissionOverride", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
	assert.Equal(t, "/backups", bk.outputDir)
	assert.Equal(t, true, bk.override)

	bk.err = errors.New("disk full")
	rr = httptest.NewRecorder()
	h(rr, httptest.NewRequest("GET", "/db/backup", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, false, bk.override)
}
