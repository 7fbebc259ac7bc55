package model

import (
	"time"

	"github.com/google/uuid"
)

// Intervalo values accepted for a payment plan. QUINZENAL advances 15
// calendar days (a Brazilian quinzena), SEMANAL 7 days.
const (
	IntervaloMensal    = "MENSAL"
	IntervaloQuinzenal = "QUINZENAL"
	IntervaloSemanal   = "SEMANAL"
	IntervaloAnual     = "ANUAL"
)

// Parcela is one installment of a payment plan. Monetary columns are
// BIGINT centavos — never floating point.
//
// Lifecycle, as enforced by ParcelaService:
//
//	pendente --pagar(total)--> paga
//	pendente --pagar(parcial)--> escolha pendente --desconto/novas parcelas--> paga/pendente
//	escolha pendente --desfazer--> pendente
//	paga --desfazer--> pendente
//
// EscolhaPendente marks the transient state between an insufficient payment
// and its resolution; while set, further payments and deletion are refused.
type Parcela struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID  uuid.UUID `gorm:"type:uuid;index;not null"`
	ProdutoID  uuid.UUID `gorm:"type:uuid;index;not null"`
	EmitenteID uuid.UUID `gorm:"type:uuid;index;not null"`
	Documento  string    `gorm:"index;not null"`

	// NumeroParcela is this installment's position, 1..NumeroParcelas.
	NumeroParcelas int `gorm:"not null"`
	NumeroParcela  int `gorm:"not null"`

	ValorParcela     int64 `gorm:"not null"`
	ValorPago        int64 `gorm:"not null;default:0"`
	DescontoAplicado int64 `gorm:"not null;default:0"`

	Intervalo      string     `gorm:"type:varchar(20);not null"`
	DataVencimento time.Time  `gorm:"type:date;not null"`
	DataCriacao    time.Time  `gorm:"type:date;not null"`
	DataPagamento  *time.Time `gorm:"type:date"`

	Paga            bool `gorm:"not null;default:false"`
	EscolhaPendente bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Cliente  *Cliente  `gorm:"foreignKey:ClienteID"`
	Produto  *Produto  `gorm:"foreignKey:ProdutoID"`
	Emitente *Emitente `gorm:"foreignKey:EmitenteID"`
}

// Saldo is the amount still owed on this installment.
func (p *Parcela) Saldo() int64 {
	return p.ValorParcela - p.DescontoAplicado - p.ValorPago
}

// ProximoVencimento advances a due date n steps along the plan's interval.
func ProximoVencimento(data time.Time, intervalo string, n int) time.Time {
	switch intervalo {
	case IntervaloSemanal:
		return data.AddDate(0, 0, 7*n)
	case IntervaloQuinzenal:
		return data.AddDate(0, 0, 15*n)
	case IntervaloAnual:
		return data.AddDate(n, 0, 0)
	default:
		return data.AddDate(0, n, 0)
	}
}

// IntervaloValido reports whether s is one of the accepted interval values.
func IntervaloValido(s string) bool {
	switch s {
	case IntervaloMensal, IntervaloQuinzenal, IntervaloSemanal, IntervaloAnual:
		return true
	}
	return false
}
