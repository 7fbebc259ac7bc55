package service

import (
	"context"
	"errors"
	"fmt"
	"os"

	"parcelas/internal/config"
	"parcelas/internal/dto"
	"parcelas/internal/format"
	"parcelas/internal/infra"
	"parcelas/internal/model"
	"parcelas/internal/repository"
	"parcelas/internal/worker"

	"github.com/google/uuid"
)

type ReciboService interface {
	Criar(ctx context.Context, req dto.CriarReciboRequest) (*dto.ReciboResponse, error)
	Listar(ctx context.Context) ([]dto.ReciboResponse, error)
	Excluir(ctx context.Context, id uuid.UUID) error
	// ObterPDF returns the path and download filename of the receipt's PDF,
	// rendering it on the spot when the async worker has not gotten to it.
	ObterPDF(ctx context.Context, id uuid.UUID) (path, fileName string, err error)
	EnviarEmail(ctx context.Context, id uuid.UUID, email string) error
}

type reciboService struct {
	recibos    repository.ReciboRepository
	parcelas   repository.ParcelaRepository
	dispatcher *worker.Dispatcher
	cfg        *config.Config
}

func NewReciboService(
	recibos repository.ReciboRepository,
	parcelas repository.ParcelaRepository,
	dispatcher *worker.Dispatcher,
	cfg *config.Config,
) ReciboService {
	return &reciboService{recibos: recibos, parcelas: parcelas, dispatcher: dispatcher, cfg: cfg}
}

// Criar registers a receipt by hand for payments settled outside the normal
// flow (e.g. migrated plans).
func (s *reciboService) Criar(ctx context.Context, req dto.CriarReciboRequest) (*dto.ReciboResponse, error) {
	parcelaID, err := uuid.Parse(req.ParcelaID)
	if err != nil {
		return nil, errors.New("parcelaId invalido")
	}
	p, err := s.parcelas.FindByID(ctx, parcelaID)
	if err != nil {
		return nil, errors.New("Parcela nao encontrada")
	}
	dataPagamento, err := format.ParseDataISO(req.DataPagamento)
	if err != nil {
		return nil, errors.New("dataPagamento invalida")
	}

	clienteNome := ""
	if p.Cliente != nil {
		clienteNome = p.Cliente.Nome
	}
	recibo := &model.Recibo{
		ParcelaID:     p.ID,
		ClienteNome:   clienteNome,
		Documento:     p.Documento,
		ValorPago:     req.ValorPago,
		DataPagamento: dataPagamento,
	}
	if err := s.recibos.Create(ctx, recibo); err != nil {
		return nil, err
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueRecibo(ctx, worker.ReciboJobPayload{ReciboID: recibo.ID.String()})
	}
	return reciboToResponse(recibo), nil
}

func (s *reciboService) Listar(ctx context.Context) ([]dto.ReciboResponse, error) {
	recibos, err := s.recibos.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReciboResponse, 0, len(recibos))
	for i := range recibos {
		out = append(out, *reciboToResponse(&recibos[i]))
	}
	return out, nil
}

func (s *reciboService) Excluir(ctx context.Context, id uuid.UUID) error {
	recibo, err := s.recibos.FindByID(ctx, id)
	if err != nil {
		return errors.New("Recibo nao encontrado")
	}
	if recibo.PDFPath != nil {
		_ = os.Remove(*recibo.PDFPath)
	}
	return s.recibos.Delete(ctx, id)
}

func (s *reciboService) ObterPDF(ctx context.Context, id uuid.UUID) (string, string, error) {
	recibo, err := s.recibos.FindByID(ctx, id)
	if err != nil {
		return "", "", errors.New("Recibo nao encontrado")
	}

	path, err := s.ensurePDF(ctx, recibo)
	if err != nil {
		return "", "", err
	}
	return path, fmt.Sprintf("recibo_%s.pdf", recibo.ID), nil
}

func (s *reciboService) EnviarEmail(ctx context.Context, id uuid.UUID, email string) error {
	recibo, err := s.recibos.FindByID(ctx, id)
	if err != nil {
		return errors.New("Recibo nao encontrado")
	}

	path, err := s.ensurePDF(ctx, recibo)
	if err != nil {
		return err
	}

	if s.dispatcher == nil {
		return errors.New("Envio de email indisponivel")
	}
	return s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
		ToEmail: email,
		Subject: fmt.Sprintf("Recibo de pagamento — %s", recibo.Documento),
		Body: fmt.Sprintf("Segue em anexo o recibo do pagamento de %s realizado em %s.",
			format.FormatarValor(recibo.ValorPago), format.FormatarData(recibo.DataPagamento)),
		PDFPath: path,
	})
}

// ensurePDF renders the PDF synchronously when the worker has not produced
// it yet, or when the recorded file vanished from disk.
func (s *reciboService) ensurePDF(ctx context.Context, recibo *model.Recibo) (string, error) {
	if recibo.PDFPath != nil {
		if _, err := os.Stat(*recibo.PDFPath); err == nil {
			return *recibo.PDFPath, nil
		}
	}

	path, err := infra.GenerateReciboPDF(recibo, s.cfg.NomeEmpresa, s.cfg.PDFStoragePath)
	if err != nil {
		return "", err
	}
	recibo.PDFPath = &path
	if err := s.recibos.Update(ctx, recibo); err != nil {
		return "", err
	}
	return path, nil
}

func reciboToResponse(r *model.Recibo) *dto.ReciboResponse {
	return &dto.ReciboResponse{
		ReciboID:      r.ID.String(),
		ParcelaID:     r.ParcelaID.String(),
		ClienteNome:   r.ClienteNome,
		Documento:     r.Documento,
		ValorPago:     r.ValorPago,
		Desconto:      r.Desconto,
		DataPagamento: format.FormatarDataISO(r.DataPagamento),
	}
}
