// internal/app/features/auditlog/list.go
package auditlog

import (
	"context"
	"net/http"
	"strings"
	"time"

	apierrors "github.com/dalemusser/studyhub/internal/app/features/errors"
	"github.com/dalemusser/studyhub/internal/app/store/audit"
	groupstore "github.com/dalemusser/studyhub/internal/app/store/groups"
	"github.com/dalemusser/studyhub/internal/app/store/queries/groupqueries"
	userstore "github.com/dalemusser/studyhub/internal/app/store/users"
	"github.com/dalemusser/studyhub/internal/app/system/paging"
	"github.com/dalemusser/studyhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// ServeList handles GET /admin/audit.
//
// Query parameters: category, eventType, userId, groupId, startDate and
// endDate (YYYY-MM-DD, UTC, endDate inclusive), start and limit.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	filter, msg := parseFilter(r)
	if msg != "" {
		apierrors.BadRequest(w, msg)
		return
	}
	win := paging.FromRequest(r)
	filter.Limit = int64(win.Limit)
	filter.Offset = win.Skip()

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	store := audit.New(h.DB)
	events, err := store.Query(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Failed to fetch audit log", err)
		return
	}
	total, err := store.Count(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Failed to fetch audit log", err)
		return
	}

	apierrors.WriteJSON(w, http.StatusOK, listResponse{
		Events: h.views(ctx, events),
		Range:  win.ComputeRange(len(events), total),
	})
}

// ServeEventTypes handles GET /admin/audit/event-types, listing the event
// types per category for filter pickers.
func (h *Handler) ServeEventTypes(w http.ResponseWriter, r *http.Request) {
	apierrors.WriteJSON(w, http.StatusOK, eventTypes)
}

func parseFilter(r *http.Request) (audit.QueryFilter, string) {
	f := audit.QueryFilter{
		Category:  strings.TrimSpace(query.Get(r, "category")),
		EventType: strings.TrimSpace(query.Get(r, "eventType")),
	}
	if f.Category != "" {
		if _, ok := eventTypes[f.Category]; !ok {
			return f, "Unknown category"
		}
	}

	for _, p := range []struct {
		name string
		dst  **primitive.ObjectID
	}{
		{"userId", &f.UserID},
		{"groupId", &f.GroupID},
	} {
		raw := strings.TrimSpace(query.Get(r, p.name))
		if raw == "" {
			continue
		}
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return f, "Invalid " + p.name
		}
		*p.dst = &id
	}

	if s := strings.TrimSpace(query.Get(r, "startDate")); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return f, "startDate must be YYYY-MM-DD"
		}
		f.StartTime = &t
	}
	if s := strings.TrimSpace(query.Get(r, "endDate")); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return f, "endDate must be YYYY-MM-DD"
		}
		endOfDay := t.Add(24*time.Hour - time.Nanosecond)
		f.EndTime = &endOfDay
	}
	return f, ""
}

// views resolves user names and group titles. Lookup failures degrade to
// bare ids rather than failing the request.
func (h *Handler) views(ctx context.Context, events []audit.Event) []eventView {
	userSet := make(map[primitive.ObjectID]struct{})
	groupSet := make(map[primitive.ObjectID]struct{})
	for _, e := range events {
		if e.ActorID != nil {
			userSet[*e.ActorID] = struct{}{}
		}
		if e.UserID != nil {
			userSet[*e.UserID] = struct{}{}
		}
		if e.GroupID != nil {
			groupSet[*e.GroupID] = struct{}{}
		}
	}

	names := map[primitive.ObjectID]string{}
	if len(userSet) > 0 {
		var err error
		names, err = userstore.New(h.DB).NamesByIDs(ctx, keys(userSet))
		if err != nil {
			h.Log.Warn("failed to resolve user names for audit log", zap.Error(err))
			names = map[primitive.ObjectID]string{}
		}
	}
	titles := map[primitive.ObjectID]string{}
	if len(groupSet) > 0 {
		var err error
		titles, err = groupstore.New(h.DB).TitlesByIDs(ctx, keys(groupSet))
		if err != nil {
			h.Log.Warn("failed to resolve group titles for audit log", zap.Error(err))
			titles = map[primitive.ObjectID]string{}
		}
	}

	person := func(id *primitive.ObjectID) *groupqueries.PersonRef {
		if id == nil {
			return nil
		}
		return &groupqueries.PersonRef{ID: *id, Name: names[*id]}
	}

	out := make([]eventView, 0, len(events))
	for _, e := range events {
		v := eventView{
			ID:            e.ID,
			Timestamp:     e.Timestamp,
			Category:      e.Category,
			EventType:     e.EventType,
			Actor:         person(e.ActorID),
			User:          person(e.UserID),
			IP:            e.IP,
			Success:       e.Success,
			FailureReason: e.FailureReason,
			Details:       e.Details,
		}
		if e.GroupID != nil {
			v.Group = &groupRef{ID: *e.GroupID, Title: titles[*e.GroupID]}
		}
		out = append(out, v)
	}
	return out
}

func keys(set map[primitive.ObjectID]struct{}) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}
