package extraction

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/mholt/archives"
	"github.com/pkg/errors"
)

// ExtractArchive extracts every regular member of a zip (or other supported)
// archive into a new temporary directory. The caller owns the returned directory.
// System files such as macOS resource forks are skipped.
func ExtractArchive(ctx context.Context, archivePath string) ([]string, string, error) {
	destDir, err := os.MkdirTemp("", "bundle-extract-*")
	if err != nil {
		return nil, "", err
	}

	fsys, err := archives.FileSystem(ctx, archivePath, nil)
	if err != nil {
		os.RemoveAll(destDir)
		return nil, "", errors.Wrap(err, "open archive")
	}

	var files []string
	err = fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "__MACOSX" {
				return fs.SkipDir
			}
			return nil
		}
		if ShouldIgnore(path.Base(p)) {
			return nil
		}

		destPath := filepath.Join(destDir, filepath.FromSlash(p))
		if err := copyMember(fsys, p, destPath); err != nil {
			return err
		}
		files = append(files, destPath)
		return nil
	})
	if err != nil {
		os.RemoveAll(destDir)
		return nil, "", errors.Wrap(err, "extract archive")
	}

	return files, destDir, nil
}

func copyMember(fsys fs.FS, name, destPath string) error {
	reader, err := fsys.Open(name)
	if err != nil {
		return err
	}
	defer reader.Close()

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return err
	}
	outFile, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer outFile.Close()

	_, err = io.Copy(outFile, reader)
	return err
}

// ShouldIgnore reports whether an archive member is an OS artefact rather than data.
func ShouldIgnore(filename string) bool {
	switch {
	case filename == "":
		return true
	case strings.HasPrefix(filename, "."):
		// hidden files, ._ resource forks, .DS_Store
		return true
	case strings.EqualFold(filename, "thumbs.db"):
		return true
	}
	return false
}
