package repository

import (
	"context"

	"parcelas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmitenteRepository interface {
	Create(ctx context.Context, e *model.Emitente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Emitente, error)
	List(ctx context.Context) ([]model.Emitente, error)
	Update(ctx context.Context, e *model.Emitente) error
	Delete(ctx context.Context, id uuid.UUID) error
	DB() *gorm.DB
}

type emitenteRepo struct{ db *gorm.DB }

func NewEmitenteRepository(db *gorm.DB) EmitenteRepository { return &emitenteRepo{db: db} }

func (r *emitenteRepo) DB() *gorm.DB { return r.db }

func (r *emitenteRepo) Create(ctx context.Context, e *model.Emitente) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *emitenteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Emitente, error) {
	var e model.Emitente
	err := r.db.WithContext(ctx).First(&e, id).Error
	return &e, err
}

func (r *emitenteRepo) List(ctx context.Context) ([]model.Emitente, error) {
	var emitentes []model.Emitente
	err := r.db.WithContext(ctx).Order("nome ASC").Find(&emitentes).Error
	return emitentes, err
}

func (r *emitenteRepo) Update(ctx context.Context, e *model.Emitente) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *emitenteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Emitente{}, id).Error
}
