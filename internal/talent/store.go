package talent

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/juaenergy/solar-platform/pkg/logging"
)

// S3API is the subset of the S3 client used by the résumé store.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ResumeStore persists decoded résumé attachments.
type ResumeStore interface {
	Put(ctx context.Context, applicationID, filename string, data []byte) (*StoredResume, error)
}

// S3ResumeStore stores résumés in an S3 bucket under
// applications/<id>/<filename>.
type S3ResumeStore struct {
	bucket   string
	s3Client S3API
	logger   *logging.Logger
}

// NewS3ResumeStore creates an S3-backed résumé store.
func NewS3ResumeStore(s3Client S3API, bucket string, logger *logging.Logger) *S3ResumeStore {
	if logger == nil {
		logger = logging.Default()
	}
	return &S3ResumeStore{bucket: bucket, s3Client: s3Client, logger: logger}
}

// Enabled returns true if the store is configured.
func (s *S3ResumeStore) Enabled() bool {
	return s != nil && s.bucket != "" && s.s3Client != nil
}

// Put uploads a résumé to S3.
func (s *S3ResumeStore) Put(ctx context.Context, applicationID, filename string, data []byte) (*StoredResume, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("talent: resume store not configured")
	}

	key := fmt.Sprintf("applications/%s/%s", applicationID, filepath.Base(filename))

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("talent: s3 put %s: %w", key, err)
	}

	s.logger.Info("resume stored", "key", key, "size", len(data))

	return &StoredResume{Key: key, Filename: filepath.Base(filename), Size: len(data)}, nil
}

// InMemoryResumeStore keeps résumés in process memory. Used in tests and when
// no bucket is configured.
type InMemoryResumeStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewInMemoryResumeStore creates an empty in-memory résumé store.
func NewInMemoryResumeStore() *InMemoryResumeStore {
	return &InMemoryResumeStore{objects: make(map[string][]byte)}
}

// Put stores a résumé under the same key scheme as the S3 store.
func (s *InMemoryResumeStore) Put(ctx context.Context, applicationID, filename string, data []byte) (*StoredResume, error) {
	key := fmt.Sprintf("applications/%s/%s", applicationID, filepath.Base(filename))

	s.mu.Lock()
	s.objects[key] = append([]byte(nil), data...)
	s.mu.Unlock()

	return &StoredResume{Key: key, Filename: filepath.Base(filename), Size: len(data)}, nil
}

// Get retrieves a stored résumé by key.
func (s *InMemoryResumeStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	return data, ok
}

// Store records accepted applications for the lifetime of the process. The
// caller supplies the application ID so the résumé object key and the stored
// submission share it.
type Store interface {
	Save(ctx context.Context, id string, app *Application, resume *StoredResume) (*Submission, error)
}

// InMemoryStore is the in-memory Store implementation.
type InMemoryStore struct {
	mu          sync.RWMutex
	submissions map[string]*Submission
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{submissions: make(map[string]*Submission)}
}

// Save records an accepted application.
func (s *InMemoryStore) Save(ctx context.Context, id string, app *Application, resume *StoredResume) (*Submission, error) {
	sub := &Submission{
		ID:          id,
		Application: *app,
		Resume:      resume,
		ReceivedAt:  time.Now().UTC(),
	}

	s.mu.Lock()
	s.submissions[sub.ID] = sub
	s.mu.Unlock()

	return sub, nil
}

// GetByID retrieves an application by ID.
func (s *InMemoryStore) GetByID(id string) (*Submission, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.submissions[id]
	return sub, ok
}
