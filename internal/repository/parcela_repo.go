package repository

import (
	"context"

	"parcelas/internal/dto"
	"parcelas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ParcelaRepository defines the data access contract for installments.
// Tx variants take the transaction handle explicitly; payment, estorno and
// renegotiation all touch several rows and must commit atomically.
type ParcelaRepository interface {
	Create(ctx context.Context, p *model.Parcela) error
	CreateBatchTx(tx *gorm.DB, parcelas []model.Parcela) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Parcela, error)
	FindByDocumento(ctx context.Context, documento string) ([]model.Parcela, error)
	List(ctx context.Context, filter dto.ParcelaFilter) ([]model.Parcela, int64, error)
	ListPeriodo(ctx context.Context, tipo, clienteID string, inicio, fim string) ([]model.Parcela, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	Update(ctx context.Context, p *model.Parcela) error
	UpdateTx(tx *gorm.DB, p *model.Parcela) error
	Delete(ctx context.Context, id uuid.UUID) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type parcelaRepo struct{ db *gorm.DB }

func NewParcelaRepository(db *gorm.DB) ParcelaRepository { return &parcelaRepo{db: db} }

func (r *parcelaRepo) DB() *gorm.DB { return r.db }

func (r *parcelaRepo) Create(ctx context.Context, p *model.Parcela) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *parcelaRepo) CreateBatchTx(tx *gorm.DB, parcelas []model.Parcela) error {
	return tx.Create(&parcelas).Error
}

func (r *parcelaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Parcela, error) {
	var p model.Parcela
	err := r.db.WithContext(ctx).Preload("Cliente").Preload("Produto").First(&p, id).Error
	return &p, err
}

func (r *parcelaRepo) FindByDocumento(ctx context.Context, documento string) ([]model.Parcela, error) {
	var parcelas []model.Parcela
	err := r.db.WithContext(ctx).
		Where("documento = ?", documento).
		Order("numero_parcela ASC").
		Find(&parcelas).Error
	return parcelas, err
}

// statusFilter translates the front-end status names into WHERE clauses.
// "atrasadas" and "venceHoje" compare against the database clock, not the
// application clock, so listing stays consistent across replicas.
func statusFilter(q *gorm.DB, status string) *gorm.DB {
	switch status {
	case "pagas":
		return q.Where("paga = true")
	case "pendentes":
		return q.Where("paga = false")
	case "atrasadas":
		return q.Where("paga = false AND data_vencimento < CURRENT_DATE")
	case "venceHoje":
		return q.Where("paga = false AND data_vencimento = CURRENT_DATE")
	default:
		return q
	}
}

func (r *parcelaRepo) List(ctx context.Context, filter dto.ParcelaFilter) ([]model.Parcela, int64, error) {
	var parcelas []model.Parcela
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Parcela{})
	q = statusFilter(q, filter.Status)

	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Cliente").Preload("Produto").
		Order("data_vencimento ASC, numero_parcela ASC").
		Find(&parcelas).Error
	return parcelas, total, err
}

func (r *parcelaRepo) ListPeriodo(ctx context.Context, tipo, clienteID string, inicio, fim string) ([]model.Parcela, error) {
	var parcelas []model.Parcela

	q := r.db.WithContext(ctx).Model(&model.Parcela{}).
		Where("data_vencimento BETWEEN ? AND ?", inicio, fim)
	q = statusFilter(q, tipo)

	if clienteID != "" {
		q = q.Where("cliente_id = ?", clienteID)
	}

	err := q.Preload("Cliente").Preload("Produto").
		Order("data_vencimento ASC, numero_parcela ASC").
		Find(&parcelas).Error
	return parcelas, err
}

func (r *parcelaRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var total int64
	q := r.db.WithContext(ctx).Model(&model.Parcela{})
	err := statusFilter(q, status).Count(&total).Error
	return total, err
}

func (r *parcelaRepo) Update(ctx context.Context, p *model.Parcela) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *parcelaRepo) UpdateTx(tx *gorm.DB, p *model.Parcela) error {
	return tx.Save(p).Error
}

func (r *parcelaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Parcela{}, id).Error
}
