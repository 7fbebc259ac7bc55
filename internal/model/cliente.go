package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is both a payer reference and the authentication principal:
// login is by CPF + senha, and PrimeiroAcesso forces a password change
// on the first session.
type Cliente struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome           string    `gorm:"index;not null"`
	CPF            string    `gorm:"column:cpf;uniqueIndex;not null"`
	Endereco       *string
	Telefone       *string
	SenhaHash      string `gorm:"not null"`
	PrimeiroAcesso bool   `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Parcelas []Parcela `gorm:"foreignKey:ClienteID"`
}
