package assets

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"channel-insights/infrastructure/logger"
)

// Build recreates dist as a copy of src. Directories and regular files are
// copied; anything else (symlinks, sockets) is skipped.
func Build(src, dist string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("asset root %s: %w", src, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("asset root %s is not a directory", src)
	}
	if nested, err := sameOrNested(src, dist); err != nil {
		return err
	} else if nested {
		return fmt.Errorf("dist %s must not be the asset root or inside it", dist)
	}
	if contains, err := sameOrNested(dist, src); err != nil {
		return err
	} else if contains {
		return fmt.Errorf("dist %s must not contain the asset root", dist)
	}

	if err := os.RemoveAll(dist); err != nil {
		return fmt.Errorf("remove %s: %w", dist, err)
	}
	if err := os.MkdirAll(dist, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dist, err)
	}
	if err := CopyDir(src, dist); err != nil {
		return err
	}

	logger.GetLogger().WithField("dist", dist).Info("Build complete. Serve the dist directory with any static server.")
	return nil
}

// CopyDir copies the tree under src into the existing directory dst
func CopyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		switch {
		case d.IsDir():
			return os.MkdirAll(target, 0o755)
		case d.Type().IsRegular():
			return copyFile(path, target)
		default:
			logger.GetLogger().WithField("path", path).Debug("Skipping non-regular file")
			return nil
		}
	})
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, out.Close())
	}()

	if _, err = io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return nil
}

func sameOrNested(src, dist string) (bool, error) {
	absSrc, err := filepath.Abs(src)
	if err != nil {
		return false, err
	}
	absDist, err := filepath.Abs(dist)
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(absSrc, absDist)
	if err != nil {
		return false, nil
	}
	outside := rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
	return !outside, nil
}
