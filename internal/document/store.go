// Package document is the MongoDB store behind the reactive API. Collection
// and field names follow the documents the web client already reads.
package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	"complaint-portal/config"
	"complaint-portal/internal/authz"
	"complaint-portal/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection      = "users"
	categoriesCollection = "categories"
	complaintsCollection = "complaints"
	responsesCollection  = "responses"
	officialsCollection  = "officials"
	adminsCollection     = "admins"

	connectTimeout = 10 * time.Second
)

type Store struct {
	db *mongo.Database
}

func NewStore(db *mongo.Database) *Store {
	return &Store{db: db}
}

// Connect dials MongoDB and makes sure the indexes exist.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	store := NewStore(client.Database(cfg.Database))
	if err := store.EnsureIndexes(ctx); err != nil {
		client.Disconnect(context.Background())
		return nil, nil, err
	}
	return client, store, nil
}

// EnsureIndexes creates the lookup indexes and the unique indexes that
// enforce one account per email and one official or admin record per user.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	indexes := map[string][]mongo.IndexModel{
		usersCollection:      {{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		officialsCollection:  {{Keys: bson.D{{Key: "userId", Value: 1}}, Options: unique}, {Keys: bson.D{{Key: "categoryId", Value: 1}}}},
		adminsCollection:     {{Keys: bson.D{{Key: "userId", Value: 1}}, Options: unique}},
		complaintsCollection: {{Keys: bson.D{{Key: "submitterId", Value: 1}}}, {Keys: bson.D{{Key: "categoryId", Value: 1}}}, {Keys: bson.D{{Key: "status", Value: 1}}}},
		responsesCollection:  {{Keys: bson.D{{Key: "complaintId", Value: 1}}}},
	}
	for coll, models := range indexes {
		if _, err := s.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", coll, err)
		}
	}
	return nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return model.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return model.ErrDuplicate
	default:
		return err
	}
}

// ParseID turns a hex id into an ObjectID. Malformed ids cannot name a
// document, so they are reported as not found.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, model.ErrNotFound
	}
	return id, nil
}

func (s *Store) insert(ctx context.Context, coll string, doc interface{}) (primitive.ObjectID, error) {
	res, err := s.db.Collection(coll).InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, translate(err)
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

func findOne[T any](ctx context.Context, c *mongo.Collection, filter interface{}) (*T, error) {
	var out T
	if err := c.FindOne(ctx, filter).Decode(&out); err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func findAll[T any](ctx context.Context, c *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cur, err := c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) CreateUser(ctx context.Context, u *User) error {
	u.CreatedAt = time.Now().UTC()
	id, err := s.insert(ctx, usersCollection, u)
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*User, error) {
	return findOne[User](ctx, s.db.Collection(usersCollection), bson.M{"email": email})
}

func (s *Store) UserByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	return findOne[User](ctx, s.db.Collection(usersCollection), bson.M{"_id": id})
}

func (s *Store) IsAdmin(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	n, err := s.db.Collection(adminsCollection).CountDocuments(ctx, bson.M{"userId": userID})
	return n > 0, err
}

func (s *Store) AddAdmin(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.insert(ctx, adminsCollection, Admin{UserID: userID})
	return err
}

func (s *Store) RemoveAdmin(ctx context.Context, userID primitive.ObjectID) error {
	res, err := s.db.Collection(adminsCollection).DeleteOne(ctx, bson.M{"userId": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (s *Store) ListAdmins(ctx context.Context) ([]Admin, error) {
	return findAll[Admin](ctx, s.db.Collection(adminsCollection), bson.M{})
}

func (s *Store) OfficialByUser(ctx context.Context, userID primitive.ObjectID) (*Official, error) {
	return findOne[Official](ctx, s.db.Collection(officialsCollection), bson.M{"userId": userID})
}

// CreateOfficial relies on the unique userId index; a second appointment
// of the same user fails with model.ErrDuplicate.
func (s *Store) CreateOfficial(ctx context.Context, o *Official) error {
	id, err := s.insert(ctx, officialsCollection, o)
	if err != nil {
		return err
	}
	o.ID = id
	return nil
}

func (s *Store) ListOfficials(ctx context.Context) ([]Official, error) {
	return findAll[Official](ctx, s.db.Collection(officialsCollection), bson.M{})
}

func (s *Store) CreateCategory(ctx context.Context, c *Category) error {
	id, err := s.insert(ctx, categoriesCollection, c)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (s *Store) Categories(ctx context.Context) ([]Category, error) {
	return findAll[Category](ctx, s.db.Collection(categoriesCollection), bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

func (s *Store) CategoryByID(ctx context.Context, id primitive.ObjectID) (*Category, error) {
	return findOne[Category](ctx, s.db.Collection(categoriesCollection), bson.M{"_id": id})
}

func (s *Store) CreateComplaint(ctx context.Context, c *Complaint) error {
	c.CreatedAt = time.Now().UTC()
	id, err := s.insert(ctx, complaintsCollection, c)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (s *Store) ComplaintByID(ctx context.Context, id primitive.ObjectID) (*Complaint, error) {
	return findOne[Complaint](ctx, s.db.Collection(complaintsCollection), bson.M{"_id": id})
}

func (s *Store) ComplaintsBySubmitter(ctx context.Context, userID primitive.ObjectID) ([]Complaint, error) {
	return findAll[Complaint](ctx, s.db.Collection(complaintsCollection), bson.M{"submitterId": userID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (s *Store) ComplaintsByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]Complaint, error) {
	return findAll[Complaint](ctx, s.db.Collection(complaintsCollection), bson.M{"categoryId": categoryID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (s *Store) SetComplaintStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := s.db.Collection(complaintsCollection).UpdateByID(ctx, id, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (s *Store) InsertResponse(ctx context.Context, r *Response) error {
	r.CreatedAt = time.Now().UTC()
	id, err := s.insert(ctx, responsesCollection, r)
	if err != nil {
		return err
	}
	r.ID = id
	return nil
}

func (s *Store) ResponsesFor(ctx context.Context, complaintID primitive.ObjectID) ([]Response, error) {
	return findAll[Response](ctx, s.db.Collection(responsesCollection), bson.M{"complaintId": complaintID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
}

// ResolveRoles implements authz.RoleResolver for tokens issued by the
// reactive API, whose subject is a user ObjectID.
func (s *Store) ResolveRoles(ctx context.Context, userID string) (authz.RoleFacts, error) {
	var facts authz.RoleFacts

	uid, err := ParseID(userID)
	if err != nil {
		return facts, nil
	}

	facts.IsAdmin, err = s.IsAdmin(ctx, uid)
	if err != nil {
		return facts, err
	}

	official, err := s.OfficialByUser(ctx, uid)
	if errors.Is(err, model.ErrNotFound) {
		return facts, nil
	}
	if err != nil {
		return facts, err
	}

	role := &authz.OfficialRole{CategoryID: official.CategoryID.Hex(), Title: official.Title}
	if category, err := s.CategoryByID(ctx, official.CategoryID); err == nil {
		role.CategoryName = category.Name
	}
	facts.Official = role
	return facts, nil
}
