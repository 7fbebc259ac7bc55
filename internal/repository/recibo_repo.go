package repository

import (
	"context"

	"parcelas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReciboRepository interface {
	Create(ctx context.Context, rec *model.Recibo) error
	CreateTx(tx *gorm.DB, rec *model.Recibo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Recibo, error)
	FindByParcelaID(ctx context.Context, parcelaID uuid.UUID) ([]model.Recibo, error)
	List(ctx context.Context) ([]model.Recibo, error)
	Update(ctx context.Context, rec *model.Recibo) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteByParcelaTx removes the receipts of a reversed payment inside the
	// estorno transaction.
	DeleteByParcelaTx(tx *gorm.DB, parcelaID uuid.UUID) error
	DB() *gorm.DB
}

type reciboRepo struct{ db *gorm.DB }

func NewReciboRepository(db *gorm.DB) ReciboRepository { return &reciboRepo{db: db} }

func (r *reciboRepo) DB() *gorm.DB { return r.db }

func (r *reciboRepo) Create(ctx context.Context, rec *model.Recibo) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *reciboRepo) CreateTx(tx *gorm.DB, rec *model.Recibo) error {
	return tx.Create(rec).Error
}

func (r *reciboRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Recibo, error) {
	var rec model.Recibo
	err := r.db.WithContext(ctx).First(&rec, id).Error
	return &rec, err
}

func (r *reciboRepo) FindByParcelaID(ctx context.Context, parcelaID uuid.UUID) ([]model.Recibo, error) {
	var recibos []model.Recibo
	err := r.db.WithContext(ctx).
		Where("parcela_id = ?", parcelaID).
		Order("data_pagamento DESC").
		Find(&recibos).Error
	return recibos, err
}

func (r *reciboRepo) List(ctx context.Context) ([]model.Recibo, error) {
	var recibos []model.Recibo
	err := r.db.WithContext(ctx).Order("data_pagamento DESC").Find(&recibos).Error
	return recibos, err
}

func (r *reciboRepo) Update(ctx context.Context, rec *model.Recibo) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *reciboRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Recibo{}, id).Error
}

func (r *reciboRepo) DeleteByParcelaTx(tx *gorm.DB, parcelaID uuid.UUID) error {
	return tx.Where("parcela_id = ?", parcelaID).Delete(&model.Recibo{}).Error
}
