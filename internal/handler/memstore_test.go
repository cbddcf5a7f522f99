package handler_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"complaint-portal/internal/model"

	"github.com/google/uuid"
)

// In-memory stores with the same uniqueness and not-found behavior as the
// gorm repositories.

type memCitizens struct {
	mu   sync.Mutex
	byID map[string]*model.Citizen
}

func newMemCitizens() *memCitizens {
	return &memCitizens{byID: make(map[string]*model.Citizen)}
}

func (m *memCitizens) Create(ctx context.Context, c *model.Citizen) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Email == c.Email {
			return model.ErrDuplicate
		}
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = time.Now()
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *memCitizens) FindByEmail(ctx context.Context, email string) (*model.Citizen, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.byID {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (m *memCitizens) FindByID(ctx context.Context, id string) (*model.Citizen, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memCitizens) FindProfile(ctx context.Context, id string) (*model.Citizen, error) {
	return m.FindByID(ctx, id)
}

func (m *memCitizens) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := m.FindByEmail(ctx, email)
	return err == nil, nil
}

type memComplaints struct {
	mu       sync.Mutex
	citizens *memCitizens
	byID     map[string]*model.Complaint
	events   []*model.OutboxEvent
}

func newMemComplaints(citizens *memCitizens) *memComplaints {
	return &memComplaints{citizens: citizens, byID: make(map[string]*model.Complaint)}
}

func (m *memComplaints) hydrate(c model.Complaint) model.Complaint {
	if citizen, err := m.citizens.FindByID(context.Background(), c.CitizenID); err == nil {
		c.Citizen = citizen
	}
	c.Responses = append([]model.Response(nil), c.Responses...)
	return c
}

func (m *memComplaints) Create(ctx context.Context, c *model.Complaint, ev *model.OutboxEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.CreatedAt = time.Now()
	cp := *c
	m.byID[c.ID] = &cp
	m.events = append(m.events, ev)
	return nil
}

func (m *memComplaints) FindAll(ctx context.Context) ([]model.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Complaint
	for _, c := range m.byID {
		out = append(out, m.hydrate(*c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memComplaints) FindByID(ctx context.Context, id string) (*model.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	out := m.hydrate(*c)
	return &out, nil
}

func (m *memComplaints) FindByCategory(ctx context.Context, category string) ([]model.Complaint, error) {
	all, _ := m.FindAll(ctx)
	var out []model.Complaint
	for _, c := range all {
		if c.Category == category {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memComplaints) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return model.ErrNotFound
	}
	for k, v := range fields {
		s := v.(string)
		switch k {
		case "title":
			c.Title = s
		case "description":
			c.Description = s
		case "category":
			c.Category = s
		case "address":
			c.Address = &s
		}
	}
	return nil
}

func (m *memComplaints) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return model.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memComplaints) UpdateStatus(ctx context.Context, id string, status model.ComplaintStatus, ev *model.OutboxEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return model.ErrNotFound
	}
	c.Status = status
	m.events = append(m.events, ev)
	return nil
}

func (m *memComplaints) AddResponse(ctx context.Context, resp *model.Response, newStatus *model.ComplaintStatus, ev *model.OutboxEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[resp.ComplaintID]
	if !ok {
		return model.ErrNotFound
	}
	c.Responses = append(c.Responses, *resp)
	if newStatus != nil {
		c.Status = *newStatus
	}
	m.events = append(m.events, ev)
	return nil
}

type memCategories struct {
	mu   sync.Mutex
	byID map[string]*model.Category
}

func newMemCategories() *memCategories {
	return &memCategories{byID: make(map[string]*model.Category)}
}

func (m *memCategories) Create(ctx context.Context, c *model.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Name == c.Name {
			return model.ErrDuplicate
		}
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *memCategories) FindAll(ctx context.Context) ([]model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Category
	for _, c := range m.byID {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memCategories) FindByID(ctx context.Context, id string) (*model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

type memOfficials struct {
	mu         sync.Mutex
	categories *memCategories
	byUser     map[string]*model.Official
}

func newMemOfficials(categories *memCategories) *memOfficials {
	return &memOfficials{categories: categories, byUser: make(map[string]*model.Official)}
}

func (m *memOfficials) Create(ctx context.Context, o *model.Official) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byUser[o.UserID]; ok {
		return model.ErrDuplicate
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	cp := *o
	m.byUser[o.UserID] = &cp
	return nil
}

func (m *memOfficials) FindByUserID(ctx context.Context, userID string) (*model.Official, error) {
	m.mu.Lock()
	o, ok := m.byUser[userID]
	m.mu.Unlock()
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *o
	if c, err := m.categories.FindByID(ctx, o.CategoryID); err == nil {
		cp.Category = c
	}
	return &cp, nil
}

func (m *memOfficials) ExistsForUser(ctx context.Context, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.byUser[userID]
	return ok, nil
}

func (m *memOfficials) FindAll(ctx context.Context) ([]model.OfficialView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.OfficialView
	for _, o := range m.byUser {
		out = append(out, model.OfficialView{Official: *o})
	}
	return out, nil
}

type memAdmins struct {
	mu    sync.Mutex
	users map[string]bool
}

func newMemAdmins() *memAdmins {
	return &memAdmins{users: make(map[string]bool)}
}

func (m *memAdmins) Create(ctx context.Context, a *model.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.users[a.UserID] {
		return model.ErrDuplicate
	}
	m.users[a.UserID] = true
	return nil
}

func (m *memAdmins) DeleteByUserID(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.users[userID] {
		return model.ErrNotFound
	}
	delete(m.users, userID)
	return nil
}

func (m *memAdmins) Exists(ctx context.Context, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[userID], nil
}

func (m *memAdmins) FindAll(ctx context.Context) ([]model.AdminView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.AdminView
	for id := range m.users {
		out = append(out, model.AdminView{UserID: id})
	}
	return out, nil
}

type fakeOutbox map[string]int

func (f fakeOutbox) Stats(ctx context.Context) (map[string]int, error) {
	out := make(map[string]int, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out, nil
}
