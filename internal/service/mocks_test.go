package service_test

import (
	"context"

	"complaint-portal/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockCitizenStore struct {
	mock.Mock
}

func (m *MockCitizenStore) Create(ctx context.Context, citizen *model.Citizen) error {
	args := m.Called(citizen)
	return args.Error(0)
}

func (m *MockCitizenStore) FindByEmail(ctx context.Context, email string) (*model.Citizen, error) {
	args := m.Called(email)
	c, _ := args.Get(0).(*model.Citizen)
	return c, args.Error(1)
}

func (m *MockCitizenStore) FindByID(ctx context.Context, id string) (*model.Citizen, error) {
	args := m.Called(id)
	c, _ := args.Get(0).(*model.Citizen)
	return c, args.Error(1)
}

func (m *MockCitizenStore) FindProfile(ctx context.Context, id string) (*model.Citizen, error) {
	args := m.Called(id)
	c, _ := args.Get(0).(*model.Citizen)
	return c, args.Error(1)
}

func (m *MockCitizenStore) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

type MockComplaintStore struct {
	mock.Mock
}

func (m *MockComplaintStore) Create(ctx context.Context, complaint *model.Complaint, ev *model.OutboxEvent) error {
	args := m.Called(complaint, ev)
	return args.Error(0)
}

func (m *MockComplaintStore) FindAll(ctx context.Context) ([]model.Complaint, error) {
	args := m.Called()
	c, _ := args.Get(0).([]model.Complaint)
	return c, args.Error(1)
}

func (m *MockComplaintStore) FindByID(ctx context.Context, id string) (*model.Complaint, error) {
	args := m.Called(id)
	c, _ := args.Get(0).(*model.Complaint)
	return c, args.Error(1)
}

func (m *MockComplaintStore) FindByCategory(ctx context.Context, category string) ([]model.Complaint, error) {
	args := m.Called(category)
	c, _ := args.Get(0).([]model.Complaint)
	return c, args.Error(1)
}

func (m *MockComplaintStore) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	args := m.Called(id, fields)
	return args.Error(0)
}

func (m *MockComplaintStore) Delete(ctx context.Context, id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockComplaintStore) UpdateStatus(ctx context.Context, id string, status model.ComplaintStatus, ev *model.OutboxEvent) error {
	args := m.Called(id, status, ev)
	return args.Error(0)
}

func (m *MockComplaintStore) AddResponse(ctx context.Context, resp *model.Response, newStatus *model.ComplaintStatus, ev *model.OutboxEvent) error {
	args := m.Called(resp, newStatus, ev)
	return args.Error(0)
}

type MockCategoryStore struct {
	mock.Mock
}

func (m *MockCategoryStore) Create(ctx context.Context, category *model.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryStore) FindAll(ctx context.Context) ([]model.Category, error) {
	args := m.Called()
	c, _ := args.Get(0).([]model.Category)
	return c, args.Error(1)
}

func (m *MockCategoryStore) FindByID(ctx context.Context, id string) (*model.Category, error) {
	args := m.Called(id)
	c, _ := args.Get(0).(*model.Category)
	return c, args.Error(1)
}

type MockOfficialStore struct {
	mock.Mock
}

func (m *MockOfficialStore) Create(ctx context.Context, official *model.Official) error {
	args := m.Called(official)
	return args.Error(0)
}

func (m *MockOfficialStore) FindByUserID(ctx context.Context, userID string) (*model.Official, error) {
	args := m.Called(userID)
	o, _ := args.Get(0).(*model.Official)
	return o, args.Error(1)
}

func (m *MockOfficialStore) ExistsForUser(ctx context.Context, userID string) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOfficialStore) FindAll(ctx context.Context) ([]model.OfficialView, error) {
	args := m.Called()
	o, _ := args.Get(0).([]model.OfficialView)
	return o, args.Error(1)
}

type MockAdminStore struct {
	mock.Mock
}

func (m *MockAdminStore) Create(ctx context.Context, admin *model.Admin) error {
	args := m.Called(admin)
	return args.Error(0)
}

func (m *MockAdminStore) DeleteByUserID(ctx context.Context, userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockAdminStore) Exists(ctx context.Context, userID string) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAdminStore) FindAll(ctx context.Context) ([]model.AdminView, error) {
	args := m.Called()
	a, _ := args.Get(0).([]model.AdminView)
	return a, args.Error(1)
}

type MockTokenSigner struct {
	mock.Mock
}

func (m *MockTokenSigner) Issue(id, name, email string) (string, error) {
	args := m.Called(id, name, email)
	return args.String(0), args.Error(1)
}

type MockNotificationStore struct {
	mock.Mock
}

func (m *MockNotificationStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	args := m.Called(userID)
	n, _ := args.Get(0).([]model.Notification)
	return n, args.Error(1)
}

func (m *MockNotificationStore) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationStore) MarkAsRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	args := m.Called(notificationID, userID)
	return args.Error(0)
}

func (m *MockNotificationStore) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(userID)
	return args.Error(0)
}
