// Package filestore persists attachment bytes.
//
// Store validates an upload's declared media type and size, derives a
// collision-resistant storage name, and hands the bytes to a waffle storage
// backend (local disk or S3). Validation trusts the client-declared media
// type; content is never sniffed.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
)

// DefaultMaxSize is the attachment size ceiling (50 MiB).
const DefaultMaxSize int64 = 50 << 20

// nameAttempts bounds how many fresh names Save tries when a name is taken.
const nameAttempts = 3

var (
	// ErrInvalidMediaType is returned when the declared media type is not allowed.
	ErrInvalidMediaType = errors.New("invalid file type. Only PDF, PPT, DOC, XLS, images, and videos are allowed")
	// ErrFileTooLarge is returned when the declared or actual size exceeds the ceiling.
	ErrFileTooLarge = errors.New("file too large")
	// ErrNotFound is returned by Open when no bytes exist under the name.
	ErrNotFound = errors.New("file not found on server")
	// ErrBadName is returned for names that are not a single path element.
	ErrBadName = errors.New("invalid storage name")
	// ErrNameTaken is returned when every generated name already exists.
	ErrNameTaken = errors.New("storage name already in use")
)

// Upload describes one incoming file.
type Upload struct {
	GroupID      string
	OriginalName string
	MediaType    string // as declared by the client
	Size         int64  // as declared by the client
	Body         io.Reader
}

// Result describes bytes that were persisted.
type Result struct {
	StorageName string
	Size        int64
}

// Store is the validation and naming layer in front of a storage backend.
type Store struct {
	backend storage.Store
	maxSize int64
	spool   bool

	now    func() time.Time
	random func() string
}

// New returns a Store writing to backend. maxSize <= 0 selects DefaultMaxSize.
func New(backend storage.Store, maxSize int64) *Store {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Store{
		backend: backend,
		maxSize: maxSize,
		spool:   needsSpool(backend.Backend()),
		now:     time.Now,
		random:  func() string { return uuid.New().String()[:8] },
	}
}

// needsSpool reports whether a backend wants a seekable body of known
// length. Object stores sign the payload, disk and memory do not.
func needsSpool(kind string) bool {
	switch kind {
	case "local", "memory":
		return false
	}
	return true
}

// Validate checks a declared media type and size. The media type is checked
// first, so an oversized file of a forbidden type reports ErrInvalidMediaType.
func (s *Store) Validate(mediaType string, size int64) error {
	if !AllowedMediaType(mediaType) {
		return ErrInvalidMediaType
	}
	if size > s.maxSize {
		return ErrFileTooLarge
	}
	return nil
}

// Save validates u and writes its bytes under a fresh name. Nothing is
// written when validation fails. A name that already exists is never
// overwritten or removed; Save draws a new random part and tries again.
// If the body turns out to be larger than the ceiling despite the declared
// size, nothing is kept and ErrFileTooLarge is returned.
func (s *Store) Save(ctx context.Context, u Upload) (Result, error) {
	if err := s.Validate(u.MediaType, u.Size); err != nil {
		return Result{}, err
	}

	body := io.LimitReader(u.Body, s.maxSize+1)
	if s.spool {
		f, n, err := spoolToTemp(ctx, body)
		if err != nil {
			return Result{}, err
		}
		defer func() {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}()
		if n > s.maxSize {
			return Result{}, ErrFileTooLarge
		}
		return s.putFresh(ctx, u, func() (io.Reader, error) {
			_, err := f.Seek(0, io.SeekStart)
			return f, err
		}, n)
	}

	counted := &countingReader{r: &ctxReader{ctx: ctx, r: body}}
	res, err := s.putFresh(ctx, u, func() (io.Reader, error) { return counted, nil }, -1)
	if err != nil {
		return Result{}, err
	}
	if counted.n > s.maxSize {
		// The name was generated and written by this call, so it is ours to remove.
		_ = s.backend.Delete(context.WithoutCancel(ctx), res.StorageName)
		return Result{}, ErrFileTooLarge
	}
	res.Size = counted.n
	return res, nil
}

// putFresh writes the body under a newly generated name. Both waffle backends
// check IfNotExists before consuming the body, so the same reader can be
// offered again after a collision.
func (s *Store) putFresh(ctx context.Context, u Upload, body func() (io.Reader, error), size int64) (Result, error) {
	for attempt := 0; attempt < nameAttempts; attempt++ {
		name := StorageName(u.GroupID, u.OriginalName, s.now(), s.random())
		r, err := body()
		if err != nil {
			return Result{}, fmt.Errorf("store %s: %w", name, err)
		}
		err = s.backend.Put(ctx, name, r, &storage.PutOptions{
			ContentType: u.MediaType,
			IfNotExists: true,
		})
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			continue
		case err != nil:
			// The backend discards partial writes itself; the name may belong
			// to another upload, so it is left alone.
			return Result{}, fmt.Errorf("store %s: %w", name, err)
		}
		return Result{StorageName: name, Size: size}, nil
	}
	return Result{}, ErrNameTaken
}

// Open returns a reader over the stored bytes, or ErrNotFound.
func (s *Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if !validName(name) {
		return nil, ErrNotFound
	}
	rc, err := s.backend.Get(ctx, name)
	if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidPath) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return rc, nil
}

// Delete removes stored bytes. It is idempotent.
func (s *Store) Delete(ctx context.Context, name string) error {
	if !validName(name) {
		return ErrBadName
	}
	err := s.backend.Delete(ctx, name)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}

// Ping checks that the backend answers a one-key listing.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.backend.List(ctx, "", &storage.ListOptions{MaxKeys: 1})
	return err
}

// spoolToTemp copies r into a temporary file and returns it with the byte
// count. The caller closes and removes the file.
func spoolToTemp(ctx context.Context, r io.Reader) (*os.File, int64, error) {
	f, err := os.CreateTemp("", "studyhub-upload-*")
	if err != nil {
		return nil, 0, fmt.Errorf("spool upload: %w", err)
	}
	n, err := io.Copy(f, &ctxReader{ctx: ctx, r: r})
	if err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return nil, 0, fmt.Errorf("spool upload: %w", err)
	}
	return f, n, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// ctxReader stops a copy once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
