package reactive_test

import (
	"context"
	"sync"
	"time"

	"complaint-portal/internal/authz"
	"complaint-portal/internal/document"
	"complaint-portal/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore mirrors document.Store, unique indexes included.
type memStore struct {
	mu         sync.Mutex
	users      []document.User
	categories []document.Category
	complaints []document.Complaint
	responses  []document.Response
	officials  []document.Official
	admins     map[primitive.ObjectID]bool
}

func newMemStore() *memStore {
	return &memStore{admins: make(map[primitive.ObjectID]bool)}
}

func (m *memStore) CreateUser(ctx context.Context, u *document.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return model.ErrDuplicate
		}
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now()
	m.users = append(m.users, *u)
	return nil
}

func (m *memStore) UserByEmail(ctx context.Context, email string) (*document.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, model.ErrNotFound
}

func (m *memStore) UserByID(ctx context.Context, id primitive.ObjectID) (*document.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			u := u
			return &u, nil
		}
	}
	return nil, model.ErrNotFound
}

func (m *memStore) OfficialByUser(ctx context.Context, userID primitive.ObjectID) (*document.Official, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.officials {
		if o.UserID == userID {
			o := o
			return &o, nil
		}
	}
	return nil, model.ErrNotFound
}

func (m *memStore) CreateOfficial(ctx context.Context, o *document.Official) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.officials {
		if existing.UserID == o.UserID {
			return model.ErrDuplicate
		}
	}
	o.ID = primitive.NewObjectID()
	m.officials = append(m.officials, *o)
	return nil
}

func (m *memStore) ListOfficials(ctx context.Context) ([]document.Official, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]document.Official(nil), m.officials...), nil
}

func (m *memStore) CreateCategory(ctx context.Context, c *document.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = primitive.NewObjectID()
	m.categories = append(m.categories, *c)
	return nil
}

func (m *memStore) Categories(ctx context.Context) ([]document.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]document.Category{}, m.categories...), nil
}

func (m *memStore) CategoryByID(ctx context.Context, id primitive.ObjectID) (*document.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, model.ErrNotFound
}

func (m *memStore) CreateComplaint(ctx context.Context, c *document.Complaint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = primitive.NewObjectID()
	c.CreatedAt = time.Now()
	m.complaints = append(m.complaints, *c)
	return nil
}

func (m *memStore) ComplaintByID(ctx context.Context, id primitive.ObjectID) (*document.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.complaints {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, model.ErrNotFound
}

func (m *memStore) filterComplaints(keep func(document.Complaint) bool) []document.Complaint {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []document.Complaint{}
	for _, c := range m.complaints {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

func (m *memStore) ComplaintsBySubmitter(ctx context.Context, userID primitive.ObjectID) ([]document.Complaint, error) {
	return m.filterComplaints(func(c document.Complaint) bool { return c.SubmitterID == userID }), nil
}

func (m *memStore) ComplaintsByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]document.Complaint, error) {
	return m.filterComplaints(func(c document.Complaint) bool { return c.CategoryID == categoryID }), nil
}

func (m *memStore) SetComplaintStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.complaints {
		if m.complaints[i].ID == id {
			m.complaints[i].Status = status
			return nil
		}
	}
	return model.ErrNotFound
}

func (m *memStore) InsertResponse(ctx context.Context, r *document.Response) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = primitive.NewObjectID()
	r.CreatedAt = time.Now()
	m.responses = append(m.responses, *r)
	return nil
}

func (m *memStore) ResponsesFor(ctx context.Context, complaintID primitive.ObjectID) ([]document.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []document.Response{}
	for _, r := range m.responses {
		if r.ComplaintID == complaintID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) makeAdmin(id primitive.ObjectID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.admins[id] = true
}

func (m *memStore) ResolveRoles(ctx context.Context, userID string) (authz.RoleFacts, error) {
	var facts authz.RoleFacts
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return facts, nil
	}

	m.mu.Lock()
	facts.IsAdmin = m.admins[uid]
	m.mu.Unlock()

	official, err := m.OfficialByUser(ctx, uid)
	if err != nil {
		return facts, nil
	}
	role := &authz.OfficialRole{CategoryID: official.CategoryID.Hex(), Title: official.Title}
	if c, err := m.CategoryByID(ctx, official.CategoryID); err == nil {
		role.CategoryName = c.Name
	}
	facts.Official = role
	return facts, nil
}
