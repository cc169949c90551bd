// Package cascade deletes groups and users together with what hangs off them.
package cascade

import (
	"context"
	"errors"

	groupstore "github.com/dalemusser/studyhub/internal/app/store/groups"
	messagestore "github.com/dalemusser/studyhub/internal/app/store/messages"
	userstore "github.com/dalemusser/studyhub/internal/app/store/users"
	"github.com/dalemusser/studyhub/internal/app/system/attachments"
	"github.com/dalemusser/studyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	ErrGroupNotFound = errors.New("group not found")
	ErrUserNotFound  = errors.New("user not found")
)

// Deleter removes groups and users.
type Deleter struct {
	groups   *groupstore.Store
	messages *messagestore.Store
	users    *userstore.Store
	ledger   *attachments.Ledger
	log      *zap.Logger
}

func New(db *mongo.Database, ledger *attachments.Ledger, logger *zap.Logger) *Deleter {
	return &Deleter{
		groups:   groupstore.New(db),
		messages: messagestore.New(db),
		users:    userstore.New(db),
		ledger:   ledger,
		log:      logger,
	}
}

// DeleteGroup removes the group document, then its messages and the stored
// bytes of its attachments, and returns the removed group. Only the first
// step can fail the call.
func (d *Deleter) DeleteGroup(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	g, err := d.groups.Delete(ctx, id)
	if errors.Is(err, groupstore.ErrNotFound) {
		return models.Group{}, ErrGroupNotFound
	}
	if err != nil {
		return models.Group{}, err
	}

	cleanup := context.WithoutCancel(ctx)
	if _, err := d.messages.DeleteByGroup(cleanup, id); err != nil {
		d.log.Warn("failed to delete messages of deleted group",
			zap.String("group_id", id.Hex()), zap.Error(err))
	}
	d.ledger.PurgeBytes(cleanup, g)
	return g, nil
}

// DeleteUser removes the account and takes the user out of every group they
// joined. Groups the user created are kept.
func (d *Deleter) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	n, err := d.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}

	if _, err := d.groups.RemoveMemberEverywhere(context.WithoutCancel(ctx), id); err != nil {
		d.log.Warn("failed to remove deleted user from groups",
			zap.String("user_id", id.Hex()), zap.Error(err))
	}
	return nil
}
