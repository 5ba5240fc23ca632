package audit

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/caristo/adminhub/internal/app/system/listkit"
)

// Event categories
const (
	CategoryAuth  = "auth"
	CategoryAdmin = "admin"
)

// Auth event types
const (
	EventLoginSuccess             = "login_success"
	EventLoginFailedUserNotFound  = "login_failed_user_not_found"
	EventLoginFailedWrongPassword = "login_failed_wrong_password"
	EventLoginFailedUserDisabled  = "login_failed_user_disabled"
	EventLogout                   = "logout"
	EventPasswordChanged          = "password_changed"
)

// Admin event types. Entity holds which marketplace entity was touched
// (banner, role, payout, service, policy, settings) or "admin" for
// local account management.
const (
	EventEntityCreated   = "entity_created"
	EventEntityUpdated   = "entity_updated"
	EventEntityDeleted   = "entity_deleted"
	EventStatusChanged   = "status_changed"
	EventPayoutMarkPaid  = "payout_marked_paid"
	EventSettingsUpdated = "settings_updated"
	EventAdminCreated    = "admin_created"
	EventAdminUpdated    = "admin_updated"
	EventAdminDisabled   = "admin_disabled"
	EventAdminEnabled    = "admin_enabled"
	EventAdminDeleted    = "admin_deleted"
)

// Event is one recorded admin or auth action.
type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Timestamp time.Time          `bson:"timestamp"`

	Category  string `bson:"category"`
	EventType string `bson:"event_type"`

	// ActorID is the dashboard admin who performed the action; nil for
	// failed logins by unknown accounts.
	ActorID    *primitive.ObjectID `bson:"actor_id,omitempty"`
	ActorEmail string              `bson:"actor_email,omitempty"`

	// Entity and EntityID identify what was acted on. EntityID is the
	// upstream identifier for marketplace entities or a local ObjectID
	// hex for admin accounts.
	Entity   string `bson:"entity,omitempty"`
	EntityID string `bson:"entity_id,omitempty"`

	IP        string `bson:"ip"`
	UserAgent string `bson:"user_agent,omitempty"`

	Success       bool   `bson:"success"`
	FailureReason string `bson:"failure_reason,omitempty"`

	Details map[string]string `bson:"details,omitempty"`
}

// Store manages the audit event trail.
type Store struct {
	c *mongo.Collection
}

// New creates a new audit Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("audit_events")}
}

// EnsureIndexes creates the indexes the audit log screen queries on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "timestamp", Value: -1}},
		},
		{
			Keys: bson.D{
				{Key: "actor_id", Value: 1},
				{Key: "timestamp", Value: -1},
			},
		},
		{
			Keys: bson.D{
				{Key: "category", Value: 1},
				{Key: "event_type", Value: 1},
				{Key: "timestamp", Value: -1},
			},
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Log records an audit event.
func (s *Store) Log(ctx context.Context, event Event) error {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_, err := s.c.InsertOne(ctx, event)
	return err
}

func listFilter(q listkit.Query) bson.M {
	filter := bson.M{}
	if q.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"actor_email": primitive.Regex{Pattern: q.Search, Options: "i"}},
			bson.M{"entity": primitive.Regex{Pattern: q.Search, Options: "i"}},
			bson.M{"event_type": primitive.Regex{Pattern: q.Search, Options: "i"}},
		}
	}
	if q.Status != "" {
		filter["category"] = q.Status
	}
	if q.DateRange != nil {
		timeQuery := bson.M{}
		if !q.DateRange.From.IsZero() {
			timeQuery["$gte"] = q.DateRange.From
		}
		if !q.DateRange.To.IsZero() {
			timeQuery["$lte"] = q.DateRange.To
		}
		if len(timeQuery) > 0 {
			filter["timestamp"] = timeQuery
		}
	}
	return filter
}

// List returns a page of events matching the query, newest first. The
// query's status filter selects the event category.
func (s *Store) List(ctx context.Context, q listkit.Query) ([]Event, listkit.Meta, error) {
	q = q.Normalize()
	filter := listFilter(q)

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, listkit.Meta{}, err
	}
	meta := listkit.ComputeMeta(q.Page, q.Limit, total)

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetSkip(int64(meta.Page-1) * int64(meta.Limit)).
		SetLimit(int64(meta.Limit))

	cursor, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, listkit.Meta{}, err
	}
	defer cursor.Close(ctx)

	var events []Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, listkit.Meta{}, err
	}
	return events, meta, nil
}
