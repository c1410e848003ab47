// services/uplink/uplink.go
//
// Optional photo upload to a remote blob endpoint, so captures taken in the
// field can be inspected off-device. Mirrors the glasses' companion server
// contract: multipart POST, response body carries the public URL.
package uplink

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const maxUploadSize = 100 * 1024 * 1024

// Uploader pushes local photos to the configured endpoint.
type Uploader struct {
	endpoint string
	client   *http.Client

	now func() time.Time
}

func NewUploader(endpoint string) *Uploader {
	return &Uploader{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
		now:      time.Now,
	}
}

// Enabled reports whether an endpoint is configured; uploads are optional.
func (u *Uploader) Enabled() bool { return u != nil && u.endpoint != "" }

// RemotePath names the blob for a local photo, timestamped so repeated
// uploads never collide.
func (u *Uploader) RemotePath(localPath string) string {
	ext := filepath.Ext(localPath)
	return fmt.Sprintf("photos/%s%s", u.now().Format("20060102_150405.000000"), ext)
}

// UploadPhoto sends the photo as a multipart POST and returns the public URL
// reported by the server.
func (u *Uploader) UploadPhoto(ctx context.Context, localPath string) (string, error) {
	info, err := os.Stat(localPath)
	if err != nil {
		return "", fmt.Errorf("uplink: %w", err)
	}
	if info.Size() > maxUploadSize {
		return "", fmt.Errorf("uplink: %s exceeds %d bytes", localPath, maxUploadSize)
	}
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("uplink: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("remote_path", u.RemotePath(localPath)); err != nil {
		return "", fmt.Errorf("uplink: %w", err)
	}
	part, err := mw.CreateFormFile("file", filepath.Base(localPath))
	if err != nil {
		return "", fmt.Errorf("uplink: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("uplink: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("uplink: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("uplink: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("uplink: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", fmt.Errorf("uplink: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("uplink: %s returned %s: %s", u.endpoint, resp.Status, strings.TrimSpace(string(raw)))
	}
	return strings.TrimSpace(string(raw)), nil
}
