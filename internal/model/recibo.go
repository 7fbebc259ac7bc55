package model

import (
	"time"

	"github.com/google/uuid"
)

// Recibo records a settled payment. Cliente name and documento are
// snapshotted so the receipt survives later edits to the referenced rows.
type Recibo struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ParcelaID uuid.UUID `gorm:"type:uuid;index;not null"`

	ClienteNome string `gorm:"not null"`
	Documento   string `gorm:"not null"`
	ValorPago   int64  `gorm:"not null"`
	Desconto    int64  `gorm:"not null;default:0"`

	DataPagamento time.Time `gorm:"type:date;not null"`
	// PDFPath is relative to PDF_STORAGE_PATH; nil until first download.
	PDFPath   *string `gorm:"column:pdf_path"`
	CreatedAt time.Time
}
