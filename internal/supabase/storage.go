package supabase

import (
	"bytes"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	storage "github.com/supabase-community/storage-go"
	"ppf-order-backend/internal/metrics"
	"ppf-order-backend/internal/models"
)

// objectStore is the slice of the storage API the photo store relies on.
type objectStore interface {
	Put(key, contentType string, data []byte) error
	Delete(key string) error
}

type bucketStore struct {
	client *storage.Client
	bucket string
}

func (b *bucketStore) Put(key, contentType string, data []byte) error {
	upsert := false
	_, err := b.client.UploadFile(b.bucket, key, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	return err
}

func (b *bucketStore) Delete(key string) error {
	_, err := b.client.RemoveFile(b.bucket, []string{key})
	return err
}

// PhotoStore keeps vehicle photos in a public Supabase Storage bucket.
// Store failures are returned; Remove failures are logged and dropped.
type PhotoStore struct {
	objects objectStore
	bucket  string
	baseURL string
	metrics *metrics.Metrics
	logger  *log.Entry
	newID   func() string
}

func NewPhotoStore(supabaseURL, serviceKey, bucket string, m *metrics.Metrics) *PhotoStore {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	client := storage.NewClient(baseURL+"/storage/v1", serviceKey, nil)

	return newPhotoStore(&bucketStore{client: client, bucket: bucket}, baseURL, bucket, m)
}

func newPhotoStore(objects objectStore, baseURL, bucket string, m *metrics.Metrics) *PhotoStore {
	return &PhotoStore{
		objects: objects,
		bucket:  bucket,
		baseURL: baseURL,
		metrics: m,
		logger:  log.WithField("component", "photo_store"),
		newID:   uuid.NewString,
	}
}

// Store uploads data under a fresh random name and returns its public URL.
func (s *PhotoStore) Store(data []byte, originalFileName, contentType string) (string, error) {
	name := ObjectName(s.newID(), originalFileName)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := s.objects.Put(name, contentType, data); err != nil {
		s.metrics.PhotoUpload(false)
		s.logger.WithError(err).WithField("object", name).Error("photo upload failed")
		return "", fmt.Errorf("%w: %w", models.ErrUpload, err)
	}

	s.metrics.PhotoUpload(true)
	return s.PublicURL(name), nil
}

// Remove deletes the object named by the last path segment of photoURL.
func (s *PhotoStore) Remove(photoURL string) {
	key := ObjectKey(photoURL)
	if key == "" {
		s.logger.WithField("url", photoURL).Warn("no object key in photo url, skipping removal")
		return
	}

	if err := s.objects.Delete(key); err != nil {
		s.metrics.PhotoRemoval(false)
		s.logger.WithError(err).WithField("object", key).Error("photo removal failed")
		return
	}
	s.metrics.PhotoRemoval(true)
}

func (s *PhotoStore) PublicURL(name string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, name)
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// SanitizeFileName drops every character outside [a-zA-Z0-9.-].
func SanitizeFileName(name string) string {
	return unsafeFileChars.ReplaceAllString(name, "")
}

// ObjectName combines id with the extension of the sanitized original
// name. Names without an extension get none.
func ObjectName(id, originalFileName string) string {
	clean := SanitizeFileName(originalFileName)
	i := strings.LastIndex(clean, ".")
	if i < 0 || i == len(clean)-1 {
		return id
	}
	return id + "." + clean[i+1:]
}

// ObjectKey returns the final path segment of a photo URL.
func ObjectKey(photoURL string) string {
	p := photoURL
	if u, err := url.Parse(photoURL); err == nil {
		p = u.Path
	}
	key := path.Base(p)
	if key == "." || key == "/" {
		return ""
	}
	return key
}
