package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/feedmedia/internal/client/client"
	"github.com/dmitrijs2005/feedmedia/internal/client/config"
	"github.com/dmitrijs2005/feedmedia/internal/client/models"
	"github.com/dmitrijs2005/feedmedia/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploadService struct {
	calls     int
	lastCreds models.Credentials
	lastPath  string
	report    *models.Report
	err       error
}

func (f *fakeUploadService) Run(ctx context.Context, creds models.Credentials, localPath string) (*models.Report, error) {
	f.calls++
	f.lastCreds = creds
	f.lastPath = localPath
	return f.report, f.err
}

var okReport = &models.Report{
	Target: models.UploadTarget{FilePath: "/feedmedias/pictures-1.jpg?X-Amz-Signature=abc", ThumbnailPath: "/feedmedias/thumbnail-1.jpg?X-Amz-Signature=def"},
	Upload: &models.UploadResult{StatusCode: 200, ETag: `"e1"`},
}

func TestApp_Run(t *testing.T) {
	uploadErr := &client.StatusError{Kind: client.ErrUpload, Op: "put", StatusCode: 403}

	tests := []struct {
		name     string
		cfg      config.Config
		svc      *fakeUploadService
		wantCode int
		wantRuns int
	}{
		{"success", config.Config{Handle: "stant", Password: "stant", FilePath: "logo.jpg"}, &fakeUploadService{report: okReport}, ExitOK, 1},
		{"missing file", config.Config{Handle: "stant", Password: "stant"}, &fakeUploadService{}, ExitUsage, 0},
		{"auth failure", config.Config{Handle: "stant", Password: "bad", FilePath: "logo.jpg"}, &fakeUploadService{err: client.ErrAuthentication}, ExitFailure, 1},
		{"upload failure", config.Config{Handle: "stant", Password: "stant", FilePath: "logo.jpg"}, &fakeUploadService{report: okReport, err: uploadErr}, ExitFailure, 1},
		{"upload failure tolerated", config.Config{Handle: "stant", Password: "stant", FilePath: "logo.jpg", ContinueOnUploadError: true}, &fakeUploadService{report: okReport, err: uploadErr}, ExitOK, 1},
		{"auth failure not tolerated", config.Config{Handle: "stant", Password: "bad", FilePath: "logo.jpg", ContinueOnUploadError: true}, &fakeUploadService{err: client.ErrAuthentication}, ExitFailure, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			var out bytes.Buffer
			app := newApp(&cfg, logging.NewNopLogger(), tt.svc, strings.NewReader(""), &out)

			assert.Equal(t, tt.wantCode, app.Run(context.Background()))
			assert.Equal(t, tt.wantRuns, tt.svc.calls)
		})
	}
}

func TestApp_Run_PrintsReportWithoutSignatures(t *testing.T) {
	cfg := config.Config{Handle: "stant", Password: "stant", FilePath: "logo.jpg"}
	var out bytes.Buffer
	app := newApp(&cfg, logging.NewNopLogger(), &fakeUploadService{report: okReport}, strings.NewReader(""), &out)

	require.Equal(t, ExitOK, app.Run(context.Background()))
	assert.Contains(t, out.String(), "/feedmedias/pictures-1.jpg")
	assert.Contains(t, out.String(), "/feedmedias/thumbnail-1.jpg")
	assert.Contains(t, out.String(), `200 "e1"`)
	assert.NotContains(t, out.String(), "X-Amz-Signature")
}

func TestApp_Run_PromptsForMissingCredentials(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) { return []byte("stant"), nil }

	cfg := config.Config{FilePath: "logo.jpg"}
	svc := &fakeUploadService{report: okReport}
	var out bytes.Buffer
	app := newApp(&cfg, logging.NewNopLogger(), svc, strings.NewReader("stant\n"), &out)

	require.Equal(t, ExitOK, app.Run(context.Background()))
	assert.Equal(t, models.Credentials{Handle: "stant", Password: "stant"}, svc.lastCreds)
	assert.Equal(t, "logo.jpg", svc.lastPath)
}

func TestApp_Run_PasswordPromptFails(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) { return nil, errors.New("not a terminal") }

	cfg := config.Config{Handle: "stant", FilePath: "logo.jpg"}
	svc := &fakeUploadService{}
	app := newApp(&cfg, logging.NewNopLogger(), svc, strings.NewReader(""), &bytes.Buffer{})

	assert.Equal(t, ExitUsage, app.Run(context.Background()))
	assert.Zero(t, svc.calls)
}

func TestNewApp_RejectsBadURLs(t *testing.T) {
	cfg := config.Config{}
	cfg.LoadDefaults()

	cfg.ServerURL = "not a url"
	_, err := NewApp(&cfg, logging.NewNopLogger())
	require.Error(t, err)

	cfg.LoadDefaults()
	cfg.StorageURL = ""
	_, err = NewApp(&cfg, logging.NewNopLogger())
	require.Error(t, err)

	cfg.LoadDefaults()
	cfg.Thumbnail = true
	app, err := NewApp(&cfg, logging.NewNopLogger())
	require.NoError(t, err)
	assert.NotNil(t, app)
}
