// services/camera/camera.go
//
// Still-photo capture for OCR. The sensor is an external collaborator: the
// service only names the artifact and delegates to a Camera implementation.
package camera

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Prathmesh-K/SmartGlassesPi/errcode"
)

// Camera writes a still image to outputPath.
type Camera interface {
	Capture(ctx context.Context, outputPath string) error
}

// DefaultCapturesDir is where artifacts accumulate. Nothing here cleans them
// up; retention is out of scope.
const DefaultCapturesDir = "captures"

// Resolution used for capture; high enough for reliable text recognition.
const (
	CaptureWidth  = 1920
	CaptureHeight = 1080
)

// Service owns artifact naming under the captures directory.
type Service struct {
	cam Camera
	dir string

	now   func() time.Time
	newID func() string
}

func NewService(cam Camera, dir string) *Service {
	if dir == "" {
		dir = DefaultCapturesDir
	}
	return &Service{
		cam:   cam,
		dir:   dir,
		now:   time.Now,
		newID: func() string { return uuid.NewString()[:8] },
	}
}

// CapturePhoto produces a fresh timestamped image file and returns its path.
// The uuid suffix keeps paths fresh even within one timestamp second.
func (s *Service) CapturePhoto(ctx context.Context) (string, error) {
	const op = "camera.capture"

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", errcode.New(errcode.CameraUnavailable, op, err)
	}
	name := fmt.Sprintf("capture_%s_%s.jpg", s.now().Format("20060102_150405"), s.newID())
	path := filepath.Join(s.dir, name)

	if err := s.cam.Capture(ctx, path); err != nil {
		return "", errcode.New(errcode.CameraUnavailable, op, err)
	}
	return path, nil
}
