package cleanup

import (
	"context"
	"os"
	"path/filepath"
	"time"

	log "github.com/leakydata/srt-voiceover/logger"
)

// Synthesis and editing leave intermediate audio behind; runs are
// expected to re-run, so scratch files are kept a few days for
// debugging before being swept.
const maxScratchAge = 3 * 24 * time.Hour

// CleanupScratchDirectories sweeps aged files from the temp and log
// directories the engine writes to.
func CleanupScratchDirectories(ctx context.Context) {
	tmpDir := os.Getenv("SRT_VOICEOVER_TMP")
	_ = CleanupDirectory(ctx, tmpDir, maxScratchAge)
	logDir := os.Getenv("SRT_VOICEOVER_LOG_DIR")
	_ = CleanupDirectory(ctx, logDir, maxScratchAge)
}

// CleanupDirectory removes entries older than maxAge. Entries that
// cannot be statted or removed are logged and skipped.
func CleanupDirectory(ctx context.Context, directory string, maxAge time.Duration) *log.Status {
	now := time.Now()
	count := 0
	entries, err := os.ReadDir(directory)
	if err != nil {
		return log.Error(ctx, 500, err, "Error reading directory", directory)
	}
	for _, entry := range entries {
		entryPath := filepath.Join(directory, entry.Name())
		info, err := os.Stat(entryPath)
		if err != nil {
			log.Warn(ctx, "Unable to stat", entryPath, err)
			continue
		}
		if now.Sub(info.ModTime()) > maxAge {
			err = os.RemoveAll(entryPath)
			if err != nil {
				log.Warn(ctx, "Unable to remove", entryPath, err)
				continue
			}
			count++
		}
	}
	log.Info(ctx, "Removed from directory", directory, count)
	return nil
}
