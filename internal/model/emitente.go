package model

import (
	"time"

	"github.com/google/uuid"
)

// Emitente is the issuing party of a payment plan.
type Emitente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"not null"`
	CPF       string    `gorm:"column:cpf;uniqueIndex;not null"`
	Endereco  *string
	Telefone  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Emitente) TableName() string { return "emitentes" }
