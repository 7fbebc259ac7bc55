package model

import (
	"time"

	"github.com/google/uuid"
)

// Produto is the good or service an installment plan pays off.
// ValorTotal is stored in centavos, like every monetary column.
type Produto struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome       string    `gorm:"index;not null"`
	Descricao  *string
	ValorTotal int64 `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
