package controllers

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"whisp/config"
	"whisp/logger"
	"whisp/store"
)

const (
	cleanupInterval = 10 * time.Minute

	// uploadGrace keeps files that were just written but whose
	// message or avatar update has not committed yet.
	uploadGrace = time.Hour
)

// StartUploadJanitor periodically deletes upload files that no
// message attachment or user avatar references anymore.
func StartUploadJanitor(s store.Store, cfg *config.Config, log *logger.Logger) {
	janitorLog := log.Named("janitor")
	ticker := time.NewTicker(cleanupInterval)
	go func() {
		for range ticker.C {
			if err := sweepUploads(context.Background(), s, cfg.Upload.Dir, uploadGrace, janitorLog); err != nil {
				janitorLog.WithError(err).Error("upload sweep failed")
			}
		}
	}()
}

func sweepUploads(ctx context.Context, s store.Store, dir string, grace time.Duration, log *logger.Logger) error {
	referenced := make(map[string]bool)

	images, err := s.MessageImageURLs(ctx)
	if err != nil {
		return err
	}
	avatars, err := s.UserAvatarURLs(ctx)
	if err != nil {
		return err
	}
	for _, url := range append(images, avatars...) {
		referenced[filepath.Base(url)] = true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	removed := 0
	cutoff := time.Now().Add(-grace)
	for _, entry := range entries {
		if entry.IsDir() || referenced[entry.Name()] {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			log.WithField("file", entry.Name()).WithError(err).Warn("removing orphaned upload failed")
			continue
		}
		removed++
	}

	if removed > 0 {
		log.WithField("removed", removed).Info("cleaned up orphaned uploads")
	}
	return nil
}
