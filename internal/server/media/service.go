// Package media is the thumbnail derivation pipeline. It reacts to objects
// finalized under plantings/ or checkins/, derives a bounded JPEG thumbnail,
// uploads it alongside the original under a thumb_ prefix, and writes a signed
// read URL back onto the originating record.
package media

import (
	"context"
	"database/sql"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/tigerroots/collective/internal/events"
	"github.com/tigerroots/collective/internal/logging"
	"github.com/tigerroots/collective/internal/server/objstore"
	"github.com/tigerroots/collective/internal/server/repositories/repomanager"
)

// ThumbPrefix marks derived objects. Objects already carrying the prefix are
// ignored so the pipeline never re-triggers on its own output.
const ThumbPrefix = "thumb_"

type Service struct {
	db          *sql.DB
	rm          repomanager.RepositoryManager
	store       objstore.Store
	logger      logging.Logger
	maxDim      int
	jpegQuality int
	urlValidity time.Duration
	tmpDir      string
}

func NewService(db *sql.DB, rm repomanager.RepositoryManager, store objstore.Store, logger logging.Logger,
	maxDim, jpegQuality int, urlValidity time.Duration) *Service {
	return &Service{
		db:          db,
		rm:          rm,
		store:       store,
		logger:      logger.With("module", "media"),
		maxDim:      maxDim,
		jpegQuality: jpegQuality,
		urlValidity: urlValidity,
		tmpDir:      os.TempDir(),
	}
}

// Register subscribes the pipeline on the bus.
func (s *Service) Register(bus events.Bus) {
	bus.Subscribe(events.TopicObjectFinalized, func(ctx context.Context, e events.Event) error {
		return s.HandleObjectFinalized(ctx, e.ObjectPath)
	})
}

// HandleObjectFinalized derives and publishes the thumbnail for one uploaded
// photo. Paths outside plantings/ and checkins/, malformed paths, and the
// pipeline's own thumb_ outputs are skipped. Temp files are removed whether
// or not derivation succeeds.
func (s *Service) HandleObjectFinalized(ctx context.Context, objectPath string) error {
	segs := strings.Split(objectPath, "/")
	top := segs[0]
	if top != "plantings" && top != "checkins" {
		return nil
	}

	base := path.Base(objectPath)
	if strings.HasPrefix(base, ThumbPrefix) {
		return nil
	}

	// plantings/<pid>/<file> or checkins/<pid>/<cid>/<file>
	if (top == "plantings" && len(segs) != 3) || (top == "checkins" && len(segs) != 4) {
		s.logger.Warn(ctx, "ignoring object with unexpected path", "path", objectPath)
		return nil
	}

	tmp := filepath.Join(s.tmpDir, base)
	tmpThumb := filepath.Join(s.tmpDir, ThumbPrefix+base)
	defer os.Remove(tmp)
	defer os.Remove(tmpThumb)

	if err := s.store.Download(ctx, objectPath, tmp); err != nil {
		return err
	}

	if err := deriveThumbnail(tmp, tmpThumb, s.maxDim, s.jpegQuality); err != nil {
		return err
	}

	dest := path.Join(path.Dir(objectPath), ThumbPrefix+base)
	if err := s.store.Upload(ctx, dest, tmpThumb, "image/jpeg"); err != nil {
		return err
	}

	url, err := s.store.PresignGet(ctx, dest, s.urlValidity)
	if err != nil {
		return err
	}

	repo := s.rm.Plantings(s.db)
	if top == "plantings" {
		err = repo.SetThumbURL(ctx, segs[1], url)
	} else {
		err = repo.SetCheckInThumbURL(ctx, segs[1], segs[2], url)
	}
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "thumbnail derived", "source", objectPath, "thumb", dest)
	return nil
}

// deriveThumbnail shrinks the image to fit within maxDim on both axes and
// always re-encodes as JPEG, regardless of the source format or extension.
func deriveThumbnail(src, dst string, maxDim, quality int) error {
	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return err
	}

	thumb := imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)

	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer f.Close()

	return imaging.Encode(f, thumb, imaging.JPEG, imaging.JPEGQuality(quality))
}
