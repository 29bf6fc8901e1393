package filecsv

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"channel-insights/infrastructure/logger"
)

// ContentType is the media type of the exported document
const ContentType = "text/csv; charset=utf-8"

// ExportFileName returns the download name for an export created at now
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("youtube-analysis-%d.csv", now.UnixMilli())
}

// FileName returns the download name for an export created at now
func (e Exporter) FileName(now time.Time) string {
	return ExportFileName(now)
}

// NewFile creates (or truncates) the file at path for writing.
func NewFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while creating export directory")
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while open file")
		return nil, err
	}

	return file, nil
}

// WriteExport writes an already rendered document to dir under name.
// It returns the path of the written file.
func WriteExport(dir, name, content string) (string, error) {
	path := filepath.Join(dir, filepath.Base(name))
	file, err := NewFile(path)
	if err != nil {
		return "", err
	}
	if _, err := file.WriteString(content); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	logger.GetLogger().WithField("path", path).Info("Analysis exported")
	return path, nil
}
