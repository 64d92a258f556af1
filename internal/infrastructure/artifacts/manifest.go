package artifacts

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/turtacn/Alloyance-Intelligence/pkg/errors"
	"github.com/turtacn/Alloyance-Intelligence/pkg/types/lca"
)

// Manifest maps artifact names to the lowercase SHA-256 hex digest of their
// payloads.  The training pipeline writes it next to the artifacts it covers;
// the loader uses it to refuse tampered or truncated files.
type Manifest map[string]string

// ParseManifest decodes and validates a manifest payload.
func ParseManifest(payload []byte) (Manifest, error) {
	var raw map[string]string
	if err := yaml.Unmarshal(payload, &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeArtifactDecode, "manifest is not valid YAML")
	}
	if len(raw) == 0 {
		return nil, errors.New(errors.ErrCodeArtifactDecode, "manifest lists no artifacts")
	}

	m := make(Manifest, len(raw))
	for name, digest := range raw {
		if name == "" {
			return nil, errors.New(errors.ErrCodeArtifactDecode, "manifest contains an unnamed artifact")
		}
		decoded, err := hex.DecodeString(digest)
		if err != nil || len(decoded) != sha256.Size {
			return nil, errors.Newf(errors.ErrCodeArtifactDecode, "manifest digest for %q is not a SHA-256 hex string", name)
		}
		m[name] = strings.ToLower(digest)
	}
	return m, nil
}

// LoadManifest fetches and parses the manifest artifact from the store.
func LoadManifest(ctx context.Context, store Store) (Manifest, error) {
	payload, err := store.Get(ctx, lca.ArtifactManifest)
	if err != nil {
		return nil, err
	}
	return ParseManifest(payload)
}

// Digest returns the lowercase SHA-256 hex digest of payload.
func Digest(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// Verify checks payload against the manifest entry for name.  Verification is
// strict: an artifact the manifest does not list fails, the same as one whose
// digest differs.
func (m Manifest) Verify(name string, payload []byte) error {
	want, ok := m[name]
	if !ok {
		return errors.Newf(errors.ErrCodeChecksumMismatch, "artifact %q is not listed in the manifest", name)
	}
	if got := Digest(payload); got != want {
		return errors.Newf(errors.ErrCodeChecksumMismatch, "artifact %q checksum mismatch: manifest %s, payload %s", name, want, got)
	}
	return nil
}

// Names returns the listed artifact names, sorted.
func (m Manifest) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

//Personal.AI order the ending
