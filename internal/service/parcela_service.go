package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parcelas/internal/dto"
	"parcelas/internal/format"
	"parcelas/internal/model"
	"parcelas/internal/repository"
	"parcelas/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ParcelaService interface {
	Criar(ctx context.Context, req dto.CriarParcelaRequest) (*dto.CriarParcelaResponse, error)
	Buscar(ctx context.Context, id uuid.UUID) (*dto.ParcelaResponse, error)
	Listar(ctx context.Context, filter dto.ParcelaFilter) ([]dto.ParcelaResponse, int64, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarParcelaRequest) (*dto.MensagemResponse, error)
	Pagar(ctx context.Context, id uuid.UUID, req dto.PagarParcelaRequest) (*dto.PagarParcelaResponse, error)
	ResolverEscolha(ctx context.Context, id uuid.UUID, req dto.EscolhaRequest) (*dto.MensagemResponse, error)
	Estornar(ctx context.Context, id uuid.UUID) (*dto.MensagemResponse, error)
	Renegociar(ctx context.Context, id uuid.UUID, req dto.RenegociarRequest) (*dto.MensagemResponse, error)
	Excluir(ctx context.Context, id uuid.UUID) (*dto.ExcluirParcelaResponse, error)
}

type parcelaService struct {
	repo       repository.ParcelaRepository
	clientes   repository.ClienteRepository
	produtos   repository.ProdutoRepository
	emitentes  repository.EmitenteRepository
	recibos    repository.ReciboRepository
	dispatcher *worker.Dispatcher
}

func NewParcelaService(
	repo repository.ParcelaRepository,
	clientes repository.ClienteRepository,
	produtos repository.ProdutoRepository,
	emitentes repository.EmitenteRepository,
	recibos repository.ReciboRepository,
	dispatcher *worker.Dispatcher,
) ParcelaService {
	return &parcelaService{
		repo:       repo,
		clientes:   clientes,
		produtos:   produtos,
		emitentes:  emitentes,
		recibos:    recibos,
		dispatcher: dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// splitValor divides total centavos into n installments that sum exactly to
// total. The even share is rounded down and the remainder lands on the first
// installment, so nobody pays a centavo more or less over the plan.
func splitValor(total int64, n int) []int64 {
	share := decimal.NewFromInt(total).
		DivRound(decimal.NewFromInt(int64(n)), 0).
		IntPart()
	if share*int64(n) > total {
		share--
	}
	valores := make([]int64, n)
	resto := total - share*int64(n)
	for i := range valores {
		valores[i] = share
	}
	valores[0] += resto
	return valores
}

// ── Criar ────────────────────────────────────────────────────────────────────

func (s *parcelaService) Criar(ctx context.Context, req dto.CriarParcelaRequest) (*dto.CriarParcelaResponse, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, errors.New("clienteId invalido")
	}
	produtoID, err := uuid.Parse(req.ProdutoID)
	if err != nil {
		return nil, errors.New("produtoId invalido")
	}
	emitenteID, err := uuid.Parse(req.EmitenteID)
	if err != nil {
		return nil, errors.New("emitenteId invalido")
	}

	if _, err := s.clientes.FindByID(ctx, clienteID); err != nil {
		return nil, errors.New("Cliente nao encontrado")
	}
	if _, err := s.produtos.FindByID(ctx, produtoID); err != nil {
		return nil, errors.New("Produto nao encontrado")
	}
	if _, err := s.emitentes.FindByID(ctx, emitenteID); err != nil {
		return nil, errors.New("Emitente nao encontrado")
	}

	primeiroVencimento, err := format.ParseDataISO(req.DataVencimento)
	if err != nil {
		return nil, errors.New("dataVencimento invalida")
	}
	dataCriacao := time.Now().UTC().Truncate(24 * time.Hour)
	if req.DataCriacao != "" {
		if dataCriacao, err = format.ParseDataISO(req.DataCriacao); err != nil {
			return nil, errors.New("dataCriacao invalida")
		}
	}

	valores := splitValor(req.ValorTotalProduto, req.NumeroParcelas)

	novas := make([]model.Parcela, req.NumeroParcelas)
	for i := range novas {
		novas[i] = model.Parcela{
			ClienteID:      clienteID,
			ProdutoID:      produtoID,
			EmitenteID:     emitenteID,
			Documento:      req.Documento,
			NumeroParcelas: req.NumeroParcelas,
			NumeroParcela:  i + 1,
			ValorParcela:   valores[i],
			Intervalo:      req.Intervalo,
			DataVencimento: model.ProximoVencimento(primeiroVencimento, req.Intervalo, i),
			DataCriacao:    dataCriacao,
		}
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.CreateBatchTx(tx, novas)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := &dto.CriarParcelaResponse{
		Mensagem: fmt.Sprintf("%d parcelas criadas com sucesso", req.NumeroParcelas),
	}
	for i := range novas {
		resp.Parcelas = append(resp.Parcelas, *parcelaToResponse(&novas[i]))
	}
	return resp, nil
}

// ── Buscar / Listar ──────────────────────────────────────────────────────────

func (s *parcelaService) Buscar(ctx context.Context, id uuid.UUID) (*dto.ParcelaResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("Parcela nao encontrada")
	}
	return parcelaToResponse(p), nil
}

func (s *parcelaService) Listar(ctx context.Context, filter dto.ParcelaFilter) ([]dto.ParcelaResponse, int64, error) {
	parcelas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.ParcelaResponse, 0, len(parcelas))
	for i := range parcelas {
		out = append(out, *parcelaToResponse(&parcelas[i]))
	}
	return out, total, nil
}

// ── Atualizar ────────────────────────────────────────────────────────────────

// Atualizar corrects a single unpaid installment. Siblings of the same
// documento are never modified.
func (s *parcelaService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarParcelaRequest) (*dto.MensagemResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("Parcela nao encontrada")
	}
	if p.Paga {
		return nil, errors.New("Parcela paga nao pode ser editada")
	}
	if p.EscolhaPendente {
		return nil, errors.New("Parcela aguarda resolucao de escolha e nao pode ser editada")
	}

	if req.Documento != "" {
		p.Documento = req.Documento
	}
	if req.ValorParcela > 0 {
		p.ValorParcela = req.ValorParcela
	}
	if req.NumeroParcelas > 0 {
		p.NumeroParcelas = req.NumeroParcelas
	}
	if req.Intervalo != "" {
		p.Intervalo = req.Intervalo
	}
	if req.DataVencimento != "" {
		venc, err := format.ParseDataISO(req.DataVencimento)
		if err != nil {
			return nil, errors.New("dataVencimento invalida")
		}
		p.DataVencimento = venc
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return &dto.MensagemResponse{Mensagem: "Parcela atualizada com sucesso"}, nil
}

// ── Pagar ────────────────────────────────────────────────────────────────────

// Pagar records a payment against the installment's outstanding balance.
// A payment covering the balance settles it; a smaller one parks the
// installment in the choice-pending state until ResolverEscolha or Estornar.
func (s *parcelaService) Pagar(ctx context.Context, id uuid.UUID, req dto.PagarParcelaRequest) (*dto.PagarParcelaResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("Parcela nao encontrada")
	}
	if p.Paga {
		return nil, errors.New("Parcela ja esta paga")
	}
	if p.EscolhaPendente {
		return nil, errors.New("Parcela aguarda resolucao de escolha")
	}

	dataPagamento, err := format.ParseDataISO(req.DataPagamento)
	if err != nil {
		return nil, errors.New("dataPagamento invalida")
	}

	saldo := p.Saldo()

	if req.ValorPago >= saldo {
		// Overpayment is capped at the balance.
		p.ValorPago += saldo
		p.Paga = true
		p.DataPagamento = &dataPagamento

		txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
			if err := s.repo.UpdateTx(tx, p); err != nil {
				return err
			}
			return s.registrarReciboTx(ctx, tx, p, dataPagamento)
		})
		if txErr != nil {
			return nil, txErr
		}

		return &dto.PagarParcelaResponse{
			EscolhaNecessaria: false,
			Mensagem:          "Parcela paga com sucesso",
		}, nil
	}

	// Partial payment: record and demand a choice.
	p.ValorPago += req.ValorPago
	p.EscolhaPendente = true
	p.DataPagamento = &dataPagamento

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	return &dto.PagarParcelaResponse{
		EscolhaNecessaria: true,
		Mensagem: fmt.Sprintf(
			"Pagamento parcial registrado. Restam %s: aplicar desconto ou gerar novas parcelas?",
			format.FormatarValor(p.Saldo())),
	}, nil
}

// ── ResolverEscolha ──────────────────────────────────────────────────────────

// ResolverEscolha settles the choice demanded by a partial payment:
// gerarNovasParcelas=false forgives the balance as discount,
// gerarNovasParcelas=true rolls it into a fresh series of installments.
func (s *parcelaService) ResolverEscolha(ctx context.Context, id uuid.UUID, req dto.EscolhaRequest) (*dto.MensagemResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("Parcela nao encontrada")
	}
	if !p.EscolhaPendente {
		return nil, errors.New("Parcela nao possui escolha pendente")
	}

	saldo := p.Saldo()
	dataPagamento := time.Now().UTC().Truncate(24 * time.Hour)
	if p.DataPagamento != nil {
		dataPagamento = *p.DataPagamento
	}

	if !req.GerarNovasParcelas {
		p.DescontoAplicado += saldo
		p.Paga = true
		p.EscolhaPendente = false

		txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
			if err := s.repo.UpdateTx(tx, p); err != nil {
				return err
			}
			return s.registrarReciboTx(ctx, tx, p, dataPagamento)
		})
		if txErr != nil {
			return nil, txErr
		}
		return &dto.MensagemResponse{
			Mensagem: fmt.Sprintf("Desconto de %s aplicado, parcela quitada", format.FormatarValor(saldo)),
		}, nil
	}

	if req.NumeroParcelasRenegociacao < 1 {
		return nil, errors.New("numeroParcelasRenegociacao obrigatorio para gerar novas parcelas")
	}
	if !model.IntervaloValido(req.NovoIntervalo) {
		return nil, errors.New("novoIntervalo invalido")
	}
	primeiraData, err := format.ParseDataISO(req.DataPrimeiraParcela)
	if err != nil {
		return nil, errors.New("dataPrimeiraParcela invalida")
	}

	novas := s.gerarSerie(p, saldo, req.NumeroParcelasRenegociacao, req.NovoIntervalo, primeiraData)

	p.Paga = true
	p.EscolhaPendente = false

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateTx(tx, p); err != nil {
			return err
		}
		if err := s.repo.CreateBatchTx(tx, novas); err != nil {
			return err
		}
		return s.registrarReciboTx(ctx, tx, p, dataPagamento)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.MensagemResponse{
		Mensagem: fmt.Sprintf("%d novas parcelas geradas sobre o saldo de %s",
			req.NumeroParcelasRenegociacao, format.FormatarValor(saldo)),
	}, nil
}

// ── Estornar ─────────────────────────────────────────────────────────────────

// Estornar undoes every payment effect on the installment: amounts reset,
// state back to pending, receipts removed. It is the compensating action for
// a dismissed choice and the manual reversal for settled payments.
func (s *parcelaService) Estornar(ctx context.Context, id uuid.UUID) (*dto.MensagemResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("Parcela nao encontrada")
	}
	if p.ValorPago == 0 && p.DescontoAplicado == 0 && !p.Paga && !p.EscolhaPendente {
		return nil, errors.New("Parcela nao possui pagamento para estornar")
	}

	p.ValorPago = 0
	p.DescontoAplicado = 0
	p.Paga = false
	p.EscolhaPendente = false
	p.DataPagamento = nil

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateTx(tx, p); err != nil {
			return err
		}
		return s.recibos.DeleteByParcelaTx(tx, p.ID)
	})
	if txErr != nil {
		return nil, txErr
	}
	return &dto.MensagemResponse{Mensagem: "Pagamento estornado com sucesso"}, nil
}

// ── Renegociar ───────────────────────────────────────────────────────────────

// Renegociar closes a pending installment and re-spreads its balance, minus
// an optional up-front payment, over a new series.
func (s *parcelaService) Renegociar(ctx context.Context, id uuid.UUID, req dto.RenegociarRequest) (*dto.MensagemResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("Parcela nao encontrada")
	}
	if p.Paga {
		return nil, errors.New("Parcela ja esta paga")
	}
	if p.EscolhaPendente {
		return nil, errors.New("Parcela aguarda resolucao de escolha")
	}

	saldo := p.Saldo()
	if req.ValorPago >= saldo {
		return nil, errors.New("Valor pago quita a parcela; utilize o pagamento")
	}
	if !model.IntervaloValido(req.NovoIntervalo) {
		return nil, errors.New("novoIntervalo invalido")
	}
	primeiraData, err := format.ParseDataISO(req.DataPrimeiraParcela)
	if err != nil {
		return nil, errors.New("dataPrimeiraParcela invalida")
	}

	restante := saldo - req.ValorPago
	novas := s.gerarSerie(p, restante, req.NumeroParcelasRenegociacao, req.NovoIntervalo, primeiraData)

	dataPagamento := time.Now().UTC().Truncate(24 * time.Hour)
	p.ValorPago += req.ValorPago
	p.Paga = true
	if req.ValorPago > 0 {
		p.DataPagamento = &dataPagamento
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateTx(tx, p); err != nil {
			return err
		}
		if err := s.repo.CreateBatchTx(tx, novas); err != nil {
			return err
		}
		if req.ValorPago > 0 {
			return s.registrarReciboTx(ctx, tx, p, dataPagamento)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.MensagemResponse{
		Mensagem: fmt.Sprintf("Parcela renegociada em %d novas parcelas de %s no total",
			req.NumeroParcelasRenegociacao, format.FormatarValor(restante)),
	}, nil
}

// ── Excluir ──────────────────────────────────────────────────────────────────

func (s *parcelaService) Excluir(ctx context.Context, id uuid.UUID) (*dto.ExcluirParcelaResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("Parcela nao encontrada")
	}
	if p.Paga {
		return nil, errors.New("Parcela paga nao pode ser excluida; utilize o estorno")
	}
	if p.EscolhaPendente {
		return nil, errors.New("Parcela aguarda resolucao de escolha e nao pode ser excluida")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &dto.ExcluirParcelaResponse{
		Dtos: dto.MensagemResponse{Mensagem: "Parcela excluida com sucesso"},
	}, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

// gerarSerie builds a fresh pending series over valor, inheriting the
// original plan's references and documento.
func (s *parcelaService) gerarSerie(p *model.Parcela, valor int64, n int, intervalo string, primeira time.Time) []model.Parcela {
	valores := splitValor(valor, n)
	novas := make([]model.Parcela, n)
	for i := range novas {
		novas[i] = model.Parcela{
			ClienteID:      p.ClienteID,
			ProdutoID:      p.ProdutoID,
			EmitenteID:     p.EmitenteID,
			Documento:      p.Documento,
			NumeroParcelas: n,
			NumeroParcela:  i + 1,
			ValorParcela:   valores[i],
			Intervalo:      intervalo,
			DataVencimento: model.ProximoVencimento(primeira, intervalo, i),
			DataCriacao:    time.Now().UTC().Truncate(24 * time.Hour),
		}
	}
	return novas
}

// registrarReciboTx snapshots a settled payment into a Recibo inside the
// caller's transaction and schedules its PDF render.
func (s *parcelaService) registrarReciboTx(ctx context.Context, tx *gorm.DB, p *model.Parcela, dataPagamento time.Time) error {
	clienteNome := ""
	if p.Cliente != nil {
		clienteNome = p.Cliente.Nome
	}
	recibo := &model.Recibo{
		ParcelaID:     p.ID,
		ClienteNome:   clienteNome,
		Documento:     p.Documento,
		ValorPago:     p.ValorPago,
		Desconto:      p.DescontoAplicado,
		DataPagamento: dataPagamento,
	}
	if err := s.recibos.CreateTx(tx, recibo); err != nil {
		return err
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueRecibo(ctx, worker.ReciboJobPayload{ReciboID: recibo.ID.String()})
	}
	return nil
}

func parcelaToResponse(p *model.Parcela) *dto.ParcelaResponse {
	resp := &dto.ParcelaResponse{
		ParcelaID:        p.ID.String(),
		EmitenteID:       p.EmitenteID.String(),
		Documento:        p.Documento,
		NumeroParcelas:   p.NumeroParcelas,
		NumeroParcela:    p.NumeroParcela,
		ValorParcela:     p.ValorParcela,
		ValorPago:        p.ValorPago,
		DescontoAplicado: p.DescontoAplicado,
		Intervalo:        p.Intervalo,
		DataVencimento:   format.FormatarDataISO(p.DataVencimento),
		DataCriacao:      format.FormatarDataISO(p.DataCriacao),
		Paga:             p.Paga,
		EscolhaPendente:  p.EscolhaPendente,
	}
	if p.DataPagamento != nil {
		d := format.FormatarDataISO(*p.DataPagamento)
		resp.DataPagamento = &d
	}
	if p.Cliente != nil {
		resp.Cliente = clienteToResponse(p.Cliente)
	}
	if p.Produto != nil {
		resp.Produto = produtoToResponse(p.Produto)
	}
	return resp
}
