package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/informaticafecor/OCRProyecto/pkg/constants"
)

// NormalizePath standardizes file paths
func NormalizePath(path string) string {
	return filepath.Clean(path)
}

// EnsureDir creates a directory if it doesn't exist
func EnsureDir(dirPath string) error {
	if dirPath == "" {
		return fmt.Errorf("directory path cannot be empty")
	}
	return os.MkdirAll(dirPath, constants.DefaultDirPermission)
}

// IsPDF reports whether the path carries a .pdf extension.
func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// CopyFile copies src to dst byte for byte, creating parent directories as
// needed.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return NewIOError(fmt.Sprintf("cannot open source file: %s", src), err)
	}
	defer in.Close()

	if err := EnsureDir(filepath.Dir(dst)); err != nil {
		return NewIOError(fmt.Sprintf("cannot create output directory for: %s", dst), err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return NewIOError(fmt.Sprintf("cannot create destination file: %s", dst), err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return NewIOError(fmt.Sprintf("copy failed: %s -> %s", src, dst), err)
	}
	return out.Sync()
}

// CreateBackup copies the file into a backups subdirectory next to it (or
// into backupDir when given), naming the copy <stem>_backup_<timestamp><ext>.
// Returns the backup path, or an error when the source is unreadable.
func CreateBackup(filePath, backupDir string) (string, error) {
	if _, err := os.Stat(filePath); err != nil {
		return "", NewNotFoundError(fmt.Sprintf("file does not exist for backup: %s", filePath), err)
	}

	if backupDir == "" {
		backupDir = filepath.Join(filepath.Dir(filePath), constants.BackupDirName)
	}
	if err := EnsureDir(backupDir); err != nil {
		return "", NewIOError("cannot create backup directory", err)
	}

	ext := filepath.Ext(filePath)
	stem := strings.TrimSuffix(filepath.Base(filePath), ext)
	timestamp := time.Now().Format(constants.BackupTimestamp)
	backupPath := filepath.Join(backupDir, fmt.Sprintf("%s_backup_%s%s", stem, timestamp, ext))

	if err := CopyFile(filePath, backupPath); err != nil {
		return "", err
	}
	return backupPath, nil
}

// GenerateOutputFilename derives a collision-free output path for inputPath.
// The base name carries the given suffix; when a file already exists at the
// candidate path an incrementing numeric counter is appended until free.
// Calling it twice without writing a file returns the same path.
func GenerateOutputFilename(inputPath, outputDir, suffix string) string {
	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(inputPath)
	}

	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext) + suffix
	candidate := filepath.Join(dir, base+ext)

	counter := 1
	for {
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, counter, ext))
		counter++
	}
}

// ListPDFFiles returns the sorted PDF files in a directory, optionally
// descending into subdirectories.
func ListPDFFiles(directory string, recursive bool) ([]string, error) {
	info, err := os.Stat(directory)
	if err != nil || !info.IsDir() {
		return nil, NewValidationError(fmt.Sprintf("not a valid directory: %s", directory), err)
	}

	var files []string
	if recursive {
		err = filepath.WalkDir(directory, func(path string, d os.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if !d.IsDir() && IsPDF(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, NewIOError(fmt.Sprintf("failed to scan directory: %s", directory), err)
		}
	} else {
		entries, err := os.ReadDir(directory)
		if err != nil {
			return nil, NewIOError(fmt.Sprintf("failed to read directory: %s", directory), err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && IsPDF(entry.Name()) {
				files = append(files, filepath.Join(directory, entry.Name()))
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// FormatFileSize formats a byte count in human-readable units.
func FormatFileSize(sizeBytes int64) string {
	if sizeBytes == 0 {
		return "0 B"
	}

	units := []string{"B", "KB", "MB", "GB", "TB"}
	size := float64(sizeBytes)
	unitIndex := 0

	for size >= 1024 && unitIndex < len(units)-1 {
		size /= 1024
		unitIndex++
	}

	if unitIndex == 0 {
		return fmt.Sprintf("%d %s", int64(size), units[unitIndex])
	}
	return fmt.Sprintf("%.1f %s", size, units[unitIndex])
}

// FormatDuration formats a duration in human-readable units.
func FormatDuration(d time.Duration) string {
	seconds := d.Seconds()
	switch {
	case seconds < 1:
		return fmt.Sprintf("%d ms", d.Milliseconds())
	case seconds < 60:
		return fmt.Sprintf("%.1f s", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm %ds", int(seconds)/60, int(seconds)%60)
	default:
		return fmt.Sprintf("%dh %dm", int(seconds)/3600, (int(seconds)%3600)/60)
	}
}

// FileSize returns the size of a file in bytes, or 0 when unreadable.
func FileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
