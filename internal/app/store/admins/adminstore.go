package adminstore

import (
	"context"
	"errors"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/caristo/adminhub/internal/app/system/listkit"
	"github.com/caristo/adminhub/internal/domain/models"
)

var (
	// ErrDuplicateEmail is returned when the email already belongs to
	// another admin account.
	ErrDuplicateEmail = errors.New("an admin with this email already exists")
	errBadRole        = errors.New(`role must be "superadmin"|"admin"`)
	errBadStatus      = errors.New(`status must be "active"|"disabled"`)
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("admins")}
}

// EnsureIndexes creates the unique email index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GetByID loads an admin by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	var a models.Admin
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByEmail looks up an admin by case-insensitive email.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var a models.Admin
	if err := s.c.FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new admin after normalizing and validating fields,
// hashing the plaintext password with bcrypt.
func (s *Store) Create(ctx context.Context, a models.Admin, password string) (models.Admin, error) {
	a.ID = primitive.NewObjectID()
	a.FullName = strings.TrimSpace(a.FullName)
	a.FullNameCI = text.Fold(a.FullName)
	a.Email = normalizeEmail(a.Email)
	if a.Status == "" {
		a.Status = models.AdminStatusActive
	}

	switch a.Role {
	case models.RoleSuperAdmin, models.RoleAdmin:
	default:
		return models.Admin{}, errBadRole
	}
	switch a.Status {
	case models.AdminStatusActive, models.AdminStatusDisabled:
	default:
		return models.Admin{}, errBadStatus
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Admin{}, err
	}
	a.PasswordHash = hash

	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Admin{}, ErrDuplicateEmail
		}
		return models.Admin{}, err
	}
	return a, nil
}

// Update holds the editable fields of an admin account.
type Update struct {
	FullName string
	Email    string
	Role     string
	Status   string
}

// UpdateAdmin updates an admin's profile fields.
func (s *Store) UpdateAdmin(ctx context.Context, id primitive.ObjectID, upd Update) error {
	set := bson.M{
		"full_name":    strings.TrimSpace(upd.FullName),
		"full_name_ci": text.Fold(strings.TrimSpace(upd.FullName)),
		"email":        normalizeEmail(upd.Email),
		"role":         upd.Role,
		"status":       upd.Status,
		"updated_at":   time.Now(),
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if wafflemongo.IsDup(err) {
		return ErrDuplicateEmail
	}
	return err
}

// SetStatus enables or disables an account.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	switch status {
	case models.AdminStatusActive, models.AdminStatusDisabled:
	default:
		return errBadStatus
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}})
	return err
}

// SetPassword replaces the account's password hash.
func (s *Store) SetPassword(ctx context.Context, id primitive.ObjectID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.c.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"password_hash": hash, "updated_at": time.Now()}})
	return err
}

// TouchLogin records a successful sign-in time.
func (s *Store) TouchLogin(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"last_login_at": now, "updated_at": now}})
	return err
}

// Delete removes an admin account.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Authenticate verifies an email/password pair and returns the account.
// Callers distinguish a missing account, a bad password, and a disabled
// account by the returned error.
var (
	ErrNotFound      = errors.New("admin not found")
	ErrBadPassword   = errors.New("wrong password")
	ErrAccountLocked = errors.New("account disabled")
)

func (s *Store) Authenticate(ctx context.Context, email, password string) (*models.Admin, error) {
	a, err := s.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(password)); err != nil {
		return nil, ErrBadPassword
	}
	if !a.Enabled() {
		return nil, ErrAccountLocked
	}
	return a, nil
}

// List returns a page of admins matching the query's search and status
// filters, newest first, along with paging metadata.
func (s *Store) List(ctx context.Context, q listkit.Query) ([]models.Admin, listkit.Meta, error) {
	q = q.Normalize()

	filter := bson.M{}
	if q.Search != "" {
		folded := text.Fold(q.Search)
		filter["$or"] = bson.A{
			bson.M{"full_name_ci": primitive.Regex{Pattern: regexQuote(folded)}},
			bson.M{"email": primitive.Regex{Pattern: regexQuote(folded), Options: "i"}},
		}
	}
	if q.Status != "" {
		filter["status"] = q.Status
	}

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, listkit.Meta{}, err
	}
	meta := listkit.ComputeMeta(q.Page, q.Limit, total)

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(meta.Page-1) * int64(meta.Limit)).
		SetLimit(int64(meta.Limit))

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, listkit.Meta{}, err
	}
	defer cur.Close(ctx)

	var admins []models.Admin
	if err := cur.All(ctx, &admins); err != nil {
		return nil, listkit.Meta{}, err
	}
	return admins, meta, nil
}

// regexQuote escapes regex metacharacters in user-supplied search text.
func regexQuote(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`\.+*?()|[]{}^$`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
