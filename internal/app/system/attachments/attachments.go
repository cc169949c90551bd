// Package attachments maintains the per-group ledger of uploaded files and
// keeps it consistent with the bytes in the file store.
//
// Adding an attachment stores the bytes first, then commits the ledger
// entry; if the commit fails the bytes are deleted again. Removing an
// attachment deletes the bytes best-effort and then always drops the entry.
// Ledger writes are conditional on the group's version and are retried
// after re-reading the group and re-checking the access policy.
package attachments

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/dalemusser/studyhub/internal/app/policy/attachmentpolicy"
	groupstore "github.com/dalemusser/studyhub/internal/app/store/groups"
	"github.com/dalemusser/studyhub/internal/app/system/filestore"
	"github.com/dalemusser/studyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	ErrGroupNotFound      = errors.New("group not found")
	ErrNotAMember         = errors.New("must be a group member to upload files")
	ErrAttachmentNotFound = errors.New("file not found")
	ErrForbidden          = errors.New("you can only delete files you uploaded or if you are the group creator")
)

// DefaultMaxAttempts bounds retries of a conflicting ledger write.
const DefaultMaxAttempts = 5

// GroupStore is the subset of the group store the ledger writes through.
type GroupStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error)
	AppendAttachment(ctx context.Context, id primitive.ObjectID, version int64, a models.Attachment) error
	RemoveAttachment(ctx context.Context, id primitive.ObjectID, version int64, attachmentID primitive.ObjectID) error
}

// Ledger coordinates group documents and stored bytes.
type Ledger struct {
	groups      GroupStore
	files       *filestore.Store
	log         *zap.Logger
	maxAttempts int
}

// New returns a Ledger.
func New(groups GroupStore, files *filestore.Store, logger *zap.Logger) *Ledger {
	return &Ledger{
		groups:      groups,
		files:       files,
		log:         logger,
		maxAttempts: DefaultMaxAttempts,
	}
}

// DownloadURL is the access-checked route that streams an attachment.
func DownloadURL(groupID, attachmentID primitive.ObjectID) string {
	return fmt.Sprintf("/api/groups/%s/files/%s/download", groupID.Hex(), attachmentID.Hex())
}

// Upload is one file offered for a group.
type Upload struct {
	GroupID      primitive.ObjectID
	UploaderID   primitive.ObjectID
	OriginalName string
	MediaType    string
	Size         int64
	Body         io.Reader
}

// Add stores u's bytes and records them in the group's ledger.
//
// Membership is checked before any byte is written. filestore validation
// errors (ErrInvalidMediaType, ErrFileTooLarge) are returned unwrapped.
func (l *Ledger) Add(ctx context.Context, u Upload) (models.Attachment, error) {
	g, err := l.loadGroup(ctx, u.GroupID)
	if err != nil {
		return models.Attachment{}, err
	}
	if !attachmentpolicy.CanUpload(&g, u.UploaderID) {
		return models.Attachment{}, ErrNotAMember
	}

	res, err := l.files.Save(ctx, filestore.Upload{
		GroupID:      g.ID.Hex(),
		OriginalName: u.OriginalName,
		MediaType:    u.MediaType,
		Size:         u.Size,
		Body:         u.Body,
	})
	if err != nil {
		return models.Attachment{}, err
	}

	a := models.Attachment{
		ID:           primitive.NewObjectID(),
		OriginalName: u.OriginalName,
		StorageName:  res.StorageName,
		Size:         res.Size,
		MediaType:    u.MediaType,
		UploadedBy:   u.UploaderID,
		UploadedAt:   time.Now().UTC(),
	}
	a.FileURL = DownloadURL(g.ID, a.ID)

	if err := l.commitAdd(ctx, g, a); err != nil {
		l.rollback(ctx, g.ID, a)
		return models.Attachment{}, err
	}
	return a, nil
}

func (l *Ledger) commitAdd(ctx context.Context, g models.Group, a models.Attachment) error {
	for attempt := 1; ; attempt++ {
		err := l.groups.AppendAttachment(ctx, g.ID, g.Version, a)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, groupstore.ErrNotFound):
			return ErrGroupNotFound
		case !errors.Is(err, groupstore.ErrVersionConflict):
			return fmt.Errorf("commit attachment: %w", err)
		case attempt >= l.maxAttempts:
			return fmt.Errorf("commit attachment after %d attempts: %w", attempt, err)
		}

		l.backoff(ctx, attempt)
		if g, err = l.loadGroup(ctx, g.ID); err != nil {
			return err
		}
		if !attachmentpolicy.CanUpload(&g, a.UploadedBy) {
			return ErrNotAMember
		}
	}
}

// rollback removes bytes whose ledger entry could not be committed. A
// failure here is logged, never returned.
func (l *Ledger) rollback(ctx context.Context, groupID primitive.ObjectID, a models.Attachment) {
	if err := l.files.Delete(context.WithoutCancel(ctx), a.StorageName); err != nil {
		l.log.Warn("failed to roll back stored attachment bytes",
			zap.String("group_id", groupID.Hex()),
			zap.String("attachment_id", a.ID.Hex()),
			zap.String("storage_name", a.StorageName),
			zap.Error(err))
	}
}

// List returns a group's attachments in upload order.
func (l *Ledger) List(ctx context.Context, groupID primitive.ObjectID) ([]models.Attachment, error) {
	g, err := l.loadGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g.Attachments == nil {
		return []models.Attachment{}, nil
	}
	return g.Attachments, nil
}

// Get returns one attachment's metadata.
func (l *Ledger) Get(ctx context.Context, groupID, attachmentID primitive.ObjectID) (models.Attachment, error) {
	g, err := l.loadGroup(ctx, groupID)
	if err != nil {
		return models.Attachment{}, err
	}
	a, ok := g.Attachment(attachmentID)
	if !ok {
		return models.Attachment{}, ErrAttachmentNotFound
	}
	return a, nil
}

// Open returns an attachment's metadata and a reader over its bytes. When the
// ledger entry exists but the bytes do not, filestore.ErrNotFound is returned.
func (l *Ledger) Open(ctx context.Context, groupID, attachmentID primitive.ObjectID) (models.Attachment, io.ReadCloser, error) {
	a, err := l.Get(ctx, groupID, attachmentID)
	if err != nil {
		return models.Attachment{}, nil, err
	}
	rc, err := l.files.Open(ctx, a.StorageName)
	if err != nil {
		return models.Attachment{}, nil, err
	}
	return a, rc, nil
}

// Remove deletes an attachment on behalf of requester. The bytes are deleted
// best-effort; the ledger entry is removed whatever the outcome of that.
func (l *Ledger) Remove(ctx context.Context, groupID, attachmentID, requester primitive.ObjectID) error {
	g, err := l.loadGroup(ctx, groupID)
	if err != nil {
		return err
	}
	a, ok := g.Attachment(attachmentID)
	if !ok {
		return ErrAttachmentNotFound
	}
	if !attachmentpolicy.CanDelete(&g, a, requester) {
		return ErrForbidden
	}

	if err := l.files.Delete(ctx, a.StorageName); err != nil {
		l.log.Warn("failed to delete attachment bytes; removing ledger entry anyway",
			zap.String("group_id", g.ID.Hex()),
			zap.String("attachment_id", a.ID.Hex()),
			zap.String("storage_name", a.StorageName),
			zap.Error(err))
	}

	for attempt := 1; ; attempt++ {
		err := l.groups.RemoveAttachment(ctx, g.ID, g.Version, a.ID)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, groupstore.ErrNotFound):
			return ErrGroupNotFound
		case !errors.Is(err, groupstore.ErrVersionConflict):
			return fmt.Errorf("remove attachment: %w", err)
		case attempt >= l.maxAttempts:
			return fmt.Errorf("remove attachment after %d attempts: %w", attempt, err)
		}

		l.backoff(ctx, attempt)
		if g, err = l.loadGroup(ctx, g.ID); err != nil {
			return err
		}
		if _, still := g.Attachment(a.ID); !still {
			// A concurrent remove got there first.
			return nil
		}
	}
}

// PurgeBytes deletes the stored bytes of every attachment in g. It is used
// after the group document itself has been deleted; failures are logged.
func (l *Ledger) PurgeBytes(ctx context.Context, g models.Group) {
	for _, a := range g.Attachments {
		if err := l.files.Delete(ctx, a.StorageName); err != nil {
			l.log.Warn("failed to delete attachment bytes of deleted group",
				zap.String("group_id", g.ID.Hex()),
				zap.String("attachment_id", a.ID.Hex()),
				zap.String("storage_name", a.StorageName),
				zap.Error(err))
		}
	}
}

func (l *Ledger) loadGroup(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	g, err := l.groups.GetByID(ctx, id)
	if errors.Is(err, groupstore.ErrNotFound) {
		return models.Group{}, ErrGroupNotFound
	}
	if err != nil {
		return models.Group{}, fmt.Errorf("load group: %w", err)
	}
	return g, nil
}

func (l *Ledger) backoff(ctx context.Context, attempt int) {
	d := time.Duration(attempt)*5*time.Millisecond + time.Duration(rand.IntN(5))*time.Millisecond
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
