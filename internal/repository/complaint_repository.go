package repository

import (
	"context"

	"complaint-portal/internal/model"

	"gorm.io/gorm"
)

type ComplaintRepository struct {
	db     *gorm.DB
	outbox *OutboxRepository
}

func NewComplaintRepository(db *gorm.DB, outbox *OutboxRepository) *ComplaintRepository {
	return &ComplaintRepository{db: db, outbox: outbox}
}

// withEvent runs fn in a transaction and enqueues ev alongside it.
func (r *ComplaintRepository) withEvent(ctx context.Context, ev *model.OutboxEvent, fn func(tx *gorm.DB) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := fn(tx); err != nil {
			return err
		}
		if ev == nil {
			return nil
		}
		return r.outbox.CreateInTransaction(tx, ev.RoutingKey, ev.Payload)
	})
	return translate(err)
}

// preloaded attaches the submitter and the response thread, oldest first.
func preloaded(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Citizen").
		Preload("Responses", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") })
}

func (r *ComplaintRepository) Create(ctx context.Context, complaint *model.Complaint, ev *model.OutboxEvent) error {
	return r.withEvent(ctx, ev, func(tx *gorm.DB) error {
		return tx.Create(complaint).Error
	})
}

func (r *ComplaintRepository) FindAll(ctx context.Context) ([]model.Complaint, error) {
	var complaints []model.Complaint
	err := preloaded(r.db.WithContext(ctx)).Order("created_at DESC").Find(&complaints).Error
	return complaints, translate(err)
}

func (r *ComplaintRepository) FindByID(ctx context.Context, id string) (*model.Complaint, error) {
	var complaint model.Complaint
	if err := preloaded(r.db.WithContext(ctx)).Where("id = ?", id).First(&complaint).Error; err != nil {
		return nil, translate(err)
	}
	return &complaint, nil
}

func (r *ComplaintRepository) FindByCategory(ctx context.Context, category string) ([]model.Complaint, error) {
	var complaints []model.Complaint
	err := preloaded(r.db.WithContext(ctx)).
		Where("category = ?", category).
		Order("created_at DESC").
		Find(&complaints).Error
	return complaints, translate(err)
}

// Update writes only the given columns.
func (r *ComplaintRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&model.Complaint{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Delete removes the complaint and its responses.
func (r *ComplaintRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("complaint_id = ?", id).Delete(&model.Response{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Complaint{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return model.ErrNotFound
		}
		return nil
	})
	return translate(err)
}

func (r *ComplaintRepository) UpdateStatus(ctx context.Context, id string, status model.ComplaintStatus, ev *model.OutboxEvent) error {
	return r.withEvent(ctx, ev, func(tx *gorm.DB) error {
		res := tx.Model(&model.Complaint{}).Where("id = ?", id).Update("status", status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return model.ErrNotFound
		}
		return nil
	})
}

// AddResponse appends resp and, when newStatus is set, moves the complaint
// to it in the same transaction.
func (r *ComplaintRepository) AddResponse(ctx context.Context, resp *model.Response, newStatus *model.ComplaintStatus, ev *model.OutboxEvent) error {
	return r.withEvent(ctx, ev, func(tx *gorm.DB) error {
		if err := tx.Create(resp).Error; err != nil {
			return err
		}
		if newStatus == nil {
			return nil
		}
		return tx.Model(&model.Complaint{}).Where("id = ?", resp.ComplaintID).Update("status", *newStatus).Error
	})
}
