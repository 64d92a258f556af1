// Package artifacts provides read-only access to the trained model artifacts
// (imputer, label encoders, per-indicator models and their manifest) through a
// pluggable Store: a local directory for development and single-node
// deployments, or a MinIO / S3-compatible bucket for shared ones.
package artifacts

import (
	"context"
	"strings"
	"time"

	"github.com/turtacn/Alloyance-Intelligence/internal/config"
	"github.com/turtacn/Alloyance-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Alloyance-Intelligence/pkg/errors"
)

// Supported values for config.ArtifactsConfig.Backend.
const (
	BackendFilesystem = "filesystem"
	BackendMinIO      = "minio"
)

// ObjectInfo describes one stored artifact.
type ObjectInfo struct {
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Store is the read side of an artifact repository.  Artifacts live in a flat
// namespace keyed by file name; nothing in the engine ever writes through a
// Store, so the interface stays retrieval-only.
type Store interface {
	// Get returns the raw payload of the named artifact.  An absent
	// artifact yields ErrCodeArtifactNotFound; transport and I/O failures
	// yield ErrCodeStoreUnavailable.
	Get(ctx context.Context, name string) ([]byte, error)

	// Exists reports whether the named artifact is present without
	// fetching its payload.
	Exists(ctx context.Context, name string) (bool, error)

	// List enumerates every artifact in the store, sorted by name.
	List(ctx context.Context) ([]ObjectInfo, error)
}

// NewStore builds the Store selected by cfg.Backend.
func NewStore(cfg config.ArtifactsConfig, log logging.Logger) (Store, error) {
	switch cfg.Backend {
	case BackendFilesystem:
		return NewFilesystemStore(cfg.Dir, log)
	case BackendMinIO:
		return NewObjectStore(cfg.MinIO, log)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidConfig, "artifact backend %q is not supported", cfg.Backend)
	}
}

// validateName rejects names that would escape the store's flat namespace.
// Artifact names are plain file names; anything resembling a path is refused
// before it reaches the backend.
func validateName(name string) error {
	if name == "" {
		return errors.New(errors.ErrCodeInvalidParam, "artifact name is empty")
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return errors.Newf(errors.ErrCodeInvalidParam, "artifact name %q must be a plain file name", name)
	}
	return nil
}

//Personal.AI order the ending
