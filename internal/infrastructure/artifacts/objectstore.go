package artifacts

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/turtacn/Alloyance-Intelligence/internal/config"
	"github.com/turtacn/Alloyance-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Alloyance-Intelligence/pkg/errors"
)

// MinIOAPI is the subset of the minio-go client the object store uses.
// *minio.Client satisfies it; tests substitute a mock.
type MinIOAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
}

// ObjectStore serves artifacts from a MinIO / S3-compatible bucket, optionally
// under a key prefix.
type ObjectStore struct {
	api    MinIOAPI
	bucket string
	prefix string
	logger logging.Logger
}

var _ Store = (*ObjectStore)(nil)

// NewObjectStore connects to the configured endpoint and verifies the bucket
// exists before returning.  An unreachable endpoint or missing bucket is a
// deployment fault surfaced immediately rather than on first Get.
func NewObjectStore(cfg config.MinIOConfig, log logging.Logger) (*ObjectStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStoreUnavailable, "cannot construct object store client")
	}

	store, err := NewObjectStoreWithAPI(client, cfg, log)
	if err != nil {
		return nil, err
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ok, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStoreUnavailable, fmt.Sprintf("object store %q is unreachable", cfg.Endpoint))
	}
	if !ok {
		return nil, errors.Newf(errors.ErrCodeStoreUnavailable, "artifact bucket %q does not exist", cfg.Bucket)
	}

	store.logger.Info("object artifact store connected",
		logging.String("endpoint", cfg.Endpoint),
		logging.String("bucket", cfg.Bucket),
		logging.Bool("ssl", cfg.UseSSL))
	return store, nil
}

// NewObjectStoreWithAPI wires the store onto an existing API client without
// touching the network.
func NewObjectStoreWithAPI(api MinIOAPI, cfg config.MinIOConfig, log logging.Logger) (*ObjectStore, error) {
	if api == nil {
		return nil, errors.New(errors.ErrCodeInvalidParam, "object store API client is nil")
	}
	if cfg.Bucket == "" {
		return nil, errors.New(errors.ErrCodeInvalidParam, "artifact bucket is empty")
	}
	if log == nil {
		log = logging.NewNopLogger()
	}

	return &ObjectStore{
		api:    api,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
		logger: log.Named("artifacts"),
	}, nil
}

// Get downloads the named artifact.
func (s *ObjectStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	obj, err := s.api.GetObject(ctx, s.bucket, s.key(name), minio.GetObjectOptions{})
	if err != nil {
		return nil, s.mapError(name, err)
	}
	defer obj.Close()

	// minio-go resolves GetObject lazily; absence surfaces at Stat time.
	if _, err := obj.Stat(); err != nil {
		return nil, s.mapError(name, err)
	}

	payload, err := io.ReadAll(obj)
	if err != nil {
		return nil, s.mapError(name, err)
	}
	return payload, nil
}

// Exists reports presence via a metadata-only stat.
func (s *ObjectStore) Exists(ctx context.Context, name string) (bool, error) {
	if err := validateName(name); err != nil {
		return false, err
	}

	if _, err := s.api.StatObject(ctx, s.bucket, s.key(name), minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, errors.Wrap(err, errors.ErrCodeStoreUnavailable, fmt.Sprintf("cannot stat artifact %q", name))
	}
	return true, nil
}

// List enumerates the artifacts under the configured prefix, sorted by name.
func (s *ObjectStore) List(ctx context.Context) ([]ObjectInfo, error) {
	opts := minio.ListObjectsOptions{Recursive: true}
	if s.prefix != "" {
		opts.Prefix = s.prefix + "/"
	}

	var infos []ObjectInfo
	for obj := range s.api.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, errors.Wrap(obj.Err, errors.ErrCodeStoreUnavailable, "cannot list artifact bucket")
		}
		name := strings.TrimPrefix(obj.Key, opts.Prefix)
		if name == "" || strings.Contains(name, "/") {
			// Nested keys are not artifacts.
			continue
		}
		infos = append(infos, ObjectInfo{
			Name:         name,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

func (s *ObjectStore) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

func (s *ObjectStore) mapError(name string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return errors.Newf(errors.ErrCodeArtifactNotFound, "artifact %q not found", name)
	}
	return errors.Wrap(err, errors.ErrCodeStoreUnavailable, fmt.Sprintf("cannot fetch artifact %q", name))
}

//Personal.AI order the ending
