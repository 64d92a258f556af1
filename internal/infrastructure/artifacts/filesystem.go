package artifacts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/turtacn/Alloyance-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Alloyance-Intelligence/pkg/errors"
)

// FilesystemStore serves artifacts from a single local directory.  The
// directory must exist before the store is constructed; a missing artifact
// directory is a deployment fault, not something to paper over at runtime.
type FilesystemStore struct {
	dir    string
	logger logging.Logger
}

var _ Store = (*FilesystemStore)(nil)

// NewFilesystemStore opens dir as an artifact store.
func NewFilesystemStore(dir string, log logging.Logger) (*FilesystemStore, error) {
	if dir == "" {
		return nil, errors.New(errors.ErrCodeInvalidParam, "artifact directory is empty")
	}
	if log == nil {
		log = logging.NewNopLogger()
	}

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrCodeStoreUnavailable, "artifact directory %q does not exist", dir)
		}
		return nil, errors.Wrap(err, errors.ErrCodeStoreUnavailable, fmt.Sprintf("cannot open artifact directory %q", dir))
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrCodeStoreUnavailable, "artifact path %q is not a directory", dir)
	}

	s := &FilesystemStore{dir: dir, logger: log.Named("artifacts")}
	s.logger.Debug("filesystem artifact store opened", logging.String("dir", dir))
	return s, nil
}

// Get reads the named artifact from disk.
func (s *FilesystemStore) Get(_ context.Context, name string) ([]byte, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	payload, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrCodeArtifactNotFound, "artifact %q not found", name)
		}
		return nil, errors.Wrap(err, errors.ErrCodeStoreUnavailable, fmt.Sprintf("cannot read artifact %q", name))
	}
	return payload, nil
}

// Exists reports whether the named artifact is present on disk.
func (s *FilesystemStore) Exists(_ context.Context, name string) (bool, error) {
	if err := validateName(name); err != nil {
		return false, err
	}

	if _, err := os.Stat(filepath.Join(s.dir, name)); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrap(err, errors.ErrCodeStoreUnavailable, fmt.Sprintf("cannot stat artifact %q", name))
	}
	return true, nil
}

// List enumerates the regular files in the artifact directory.  os.ReadDir
// already sorts entries by name, which is the ordering List promises.
func (s *FilesystemStore) List(_ context.Context) ([]ObjectInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStoreUnavailable, fmt.Sprintf("cannot list artifact directory %q", s.dir))
	}

	infos := make([]ObjectInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeStoreUnavailable, fmt.Sprintf("cannot stat artifact %q", entry.Name()))
		}
		infos = append(infos, ObjectInfo{
			Name:         entry.Name(),
			Size:         fi.Size(),
			LastModified: fi.ModTime(),
		})
	}
	return infos, nil
}

//Personal.AI order the ending
