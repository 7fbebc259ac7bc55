package worker

// recibo_worker.go
// Pre-generates receipt PDFs right after a payment settles, so downloads and
// email attachments never render on the request path.

import (
	"context"
	"encoding/json"
	"fmt"

	"parcelas/internal/infra"
	"parcelas/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReciboJobPayload is the job envelope sent to QueueRecibo.
type ReciboJobPayload struct {
	ReciboID string `json:"recibo_id"`
}

// ReciboWorker renders PDFs for freshly created receipts and records the
// resulting path on the row.
type ReciboWorker struct {
	recibos     repository.ReciboRepository
	nomeEmpresa string
	storagePath string
}

func NewReciboWorker(recibos repository.ReciboRepository, nomeEmpresa, storagePath string) *ReciboWorker {
	return &ReciboWorker{recibos: recibos, nomeEmpresa: nomeEmpresa, storagePath: storagePath}
}

// Process renders the PDF and stores its path. A receipt deleted by an
// estorno before the job runs is not an error.
func (w *ReciboWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReciboJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("recibo_worker: invalid payload")
		return nil
	}

	id, err := uuid.Parse(payload.ReciboID)
	if err != nil {
		log.Error().Str("recibo_id", payload.ReciboID).Msg("recibo_worker: invalid id")
		return nil
	}

	recibo, err := w.recibos.FindByID(ctx, id)
	if err != nil {
		log.Warn().Str("recibo_id", payload.ReciboID).Msg("recibo_worker: recibo no longer exists — skipping")
		return nil
	}

	path, err := infra.GenerateReciboPDF(recibo, w.nomeEmpresa, w.storagePath)
	if err != nil {
		return fmt.Errorf("recibo_worker: render %s: %w", recibo.ID, err)
	}

	recibo.PDFPath = &path
	if err := w.recibos.Update(ctx, recibo); err != nil {
		return fmt.Errorf("recibo_worker: record pdf path: %w", err)
	}

	log.Info().Str("recibo_id", recibo.ID.String()).Str("path", path).Msg("recibo_worker: pdf generated")
	return nil
}
