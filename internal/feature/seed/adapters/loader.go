// Package adapters reads seed collections from local files or object storage.
package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"gopkg.in/yaml.v3"
)

const objectScheme = "s3://"

// ErrStorageNotConfigured is returned for an s3:// location when no object storage client is set.
var ErrStorageNotConfigured = errors.New("object storage is not configured")

// ObjectStore is the object storage read/write used by seed sources.
type ObjectStore interface {
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error)
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Loader resolves a seed location into a JSON document.
// Locations are either local paths or s3://bucket/key URLs; .yaml and .yml
// sources are converted to JSON.
type Loader struct {
	objects       ObjectStore
	defaultBucket string
}

// NewLoader creates a Loader. objects may be nil when only local files are used.
func NewLoader(objects ObjectStore, defaultBucket string) *Loader {
	return &Loader{objects: objects, defaultBucket: defaultBucket}
}

// Load reads location and returns its content as JSON.
func (l *Loader) Load(ctx context.Context, location string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(location, objectScheme) {
		data, err = l.loadObject(ctx, location)
	} else {
		data, err = os.ReadFile(location)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read seed source %s: %w", location, err)
	}
	return toJSON(location, data)
}

// Publish uploads a local seed file to object storage and returns its s3:// location.
func (l *Loader) Publish(ctx context.Context, file, key string) (string, error) {
	if l.objects == nil {
		return "", ErrStorageNotConfigured
	}
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return "", err
	}
	if key == "" {
		key = path.Base(file)
	}
	if _, err := l.objects.PutObject(ctx, l.defaultBucket, key, f, st.Size(), minio.PutObjectOptions{
		ContentType: contentType(file),
	}); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", file, err)
	}
	return objectScheme + l.defaultBucket + "/" + key, nil
}

func (l *Loader) loadObject(ctx context.Context, location string) ([]byte, error) {
	if l.objects == nil {
		return nil, ErrStorageNotConfigured
	}
	bucket, key := splitObjectLocation(strings.TrimPrefix(location, objectScheme), l.defaultBucket)
	obj, err := l.objects.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	return io.ReadAll(obj)
}

// splitObjectLocation splits "bucket/key". A location without a slash is a key in the default bucket.
func splitObjectLocation(rest, defaultBucket string) (bucket, key string) {
	i := strings.IndexByte(rest, '/')
	if i < 0 {
		return defaultBucket, rest
	}
	return rest[:i], rest[i+1:]
}

func isYAML(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

func contentType(name string) string {
	if isYAML(name) {
		return "application/yaml"
	}
	return "application/json"
}

func toJSON(name string, data []byte) ([]byte, error) {
	if !isYAML(name) {
		return data, nil
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return json.Marshal(normalize(doc))
}

// normalize turns the map[any]any values yaml may produce into JSON-encodable maps.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalize(val)
		}
		return m
	case []any:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	default:
		return v
	}
}
