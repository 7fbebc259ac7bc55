package service_test

import (
	"context"
	"errors"
	"testing"

	"parcelas/internal/dto"
	"parcelas/internal/model"
	"parcelas/internal/repository"
	"parcelas/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubParcelaRepo is an in-memory ParcelaRepository for testing.
type stubParcelaRepo struct {
	parcelas map[uuid.UUID]*model.Parcela
	ordem    []uuid.UUID
}

func newStubParcelaRepo() *stubParcelaRepo {
	return &stubParcelaRepo{parcelas: make(map[uuid.UUID]*model.Parcela)}
}

func (r *stubParcelaRepo) store(p model.Parcela) *model.Parcela {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := p
	r.parcelas[cp.ID] = &cp
	r.ordem = append(r.ordem, cp.ID)
	return &cp
}

func (r *stubParcelaRepo) Create(_ context.Context, p *model.Parcela) error {
	stored := r.store(*p)
	p.ID = stored.ID
	return nil
}

func (r *stubParcelaRepo) CreateBatchTx(_ *gorm.DB, parcelas []model.Parcela) error {
	for i := range parcelas {
		stored := r.store(parcelas[i])
		parcelas[i].ID = stored.ID
	}
	return nil
}

func (r *stubParcelaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Parcela, error) {
	p, ok := r.parcelas[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *p
	return &cp, nil
}

func (r *stubParcelaRepo) FindByDocumento(_ context.Context, documento string) ([]model.Parcela, error) {
	var out []model.Parcela
	for _, id := range r.ordem {
		if p, ok := r.parcelas[id]; ok && p.Documento == documento {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubParcelaRepo) List(_ context.Context, _ dto.ParcelaFilter) ([]model.Parcela, int64, error) {
	var out []model.Parcela
	for _, id := range r.ordem {
		if p, ok := r.parcelas[id]; ok {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubParcelaRepo) ListPeriodo(_ context.Context, _, _ string, _, _ string) ([]model.Parcela, error) {
	return nil, nil
}

func (r *stubParcelaRepo) CountByStatus(_ context.Context, _ string) (int64, error) {
	return int64(len(r.parcelas)), nil
}

func (r *stubParcelaRepo) Update(_ context.Context, p *model.Parcela) error {
	if _, ok := r.parcelas[p.ID]; !ok {
		return errors.New("not found")
	}
	cp := *p
	r.parcelas[p.ID] = &cp
	return nil
}

func (r *stubParcelaRepo) UpdateTx(tx *gorm.DB, p *model.Parcela) error {
	return r.Update(context.Background(), p)
}

func (r *stubParcelaRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.parcelas, id)
	return nil
}

func (r *stubParcelaRepo) DB() *gorm.DB { return nil }

var _ repository.ParcelaRepository = (*stubParcelaRepo)(nil)

// stubClienteRepo answers every FindByID with the same cliente.
type stubClienteRepo struct{ cliente model.Cliente }

func (r *stubClienteRepo) Create(_ context.Context, _ *model.Cliente) error { return nil }
func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c := r.cliente
	c.ID = id
	return &c, nil
}
func (r *stubClienteRepo) FindByCPF(_ context.Context, _ string) (*model.Cliente, error) {
	return nil, errors.New("not found")
}
func (r *stubClienteRepo) List(_ context.Context) ([]model.Cliente, error)     { return nil, nil }
func (r *stubClienteRepo) Update(_ context.Context, _ *model.Cliente) error    { return nil }
func (r *stubClienteRepo) Delete(_ context.Context, _ uuid.UUID) error         { return nil }
func (r *stubClienteRepo) DB() *gorm.DB                                        { return nil }

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

type stubProdutoRepo struct{}

func (r *stubProdutoRepo) Create(_ context.Context, _ *model.Produto) error { return nil }
func (r *stubProdutoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Produto, error) {
	return &model.Produto{ID: id, Nome: "Notebook", ValorTotal: 30000}, nil
}
func (r *stubProdutoRepo) List(_ context.Context) ([]model.Produto, error)  { return nil, nil }
func (r *stubProdutoRepo) Update(_ context.Context, _ *model.Produto) error { return nil }
func (r *stubProdutoRepo) Delete(_ context.Context, _ uuid.UUID) error      { return nil }
func (r *stubProdutoRepo) DB() *gorm.DB                                     { return nil }

var _ repository.ProdutoRepository = (*stubProdutoRepo)(nil)

type stubEmitenteRepo struct{}

func (r *stubEmitenteRepo) Create(_ context.Context, _ *model.Emitente) error { return nil }
func (r *stubEmitenteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Emitente, error) {
	return &model.Emitente{ID: id, Nome: "Emitente Teste"}, nil
}
func (r *stubEmitenteRepo) List(_ context.Context) ([]model.Emitente, error)  { return nil, nil }
func (r *stubEmitenteRepo) Update(_ context.Context, _ *model.Emitente) error { return nil }
func (r *stubEmitenteRepo) Delete(_ context.Context, _ uuid.UUID) error       { return nil }
func (r *stubEmitenteRepo) DB() *gorm.DB                                      { return nil }

var _ repository.EmitenteRepository = (*stubEmitenteRepo)(nil)

// stubReciboRepo captures created receipts for assertion.
type stubReciboRepo struct {
	recibos []*model.Recibo
}

func (r *stubReciboRepo) Create(_ context.Context, rec *model.Recibo) error {
	return r.CreateTx(nil, rec)
}
func (r *stubReciboRepo) CreateTx(_ *gorm.DB, rec *model.Recibo) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	r.recibos = append(r.recibos, rec)
	return nil
}
func (r *stubReciboRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Recibo, error) {
	for _, rec := range r.recibos {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, errors.New("not found")
}
func (r *stubReciboRepo) FindByParcelaID(_ context.Context, parcelaID uuid.UUID) ([]model.Recibo, error) {
	var out []model.Recibo
	for _, rec := range r.recibos {
		if rec.ParcelaID == parcelaID {
			out = append(out, *rec)
		}
	}
	return out, nil
}
func (r *stubReciboRepo) List(_ context.Context) ([]model.Recibo, error)  { return nil, nil }
func (r *stubReciboRepo) Update(_ context.Context, _ *model.Recibo) error { return nil }
func (r *stubReciboRepo) Delete(_ context.Context, _ uuid.UUID) error     { return nil }
func (r *stubReciboRepo) DeleteByParcelaTx(_ *gorm.DB, parcelaID uuid.UUID) error {
	kept := r.recibos[:0]
	for _, rec := range r.recibos {
		if rec.ParcelaID != parcelaID {
			kept = append(kept, rec)
		}
	}
	r.recibos = kept
	return nil
}
func (r *stubReciboRepo) DB() *gorm.DB { return nil }

var _ repository.ReciboRepository = (*stubReciboRepo)(nil)

// ── Fixtures ──────────────────────────────────────────────────────────────────

type fixture struct {
	svc      service.ParcelaService
	parcelas *stubParcelaRepo
	recibos  *stubReciboRepo
}

func newFixture() *fixture {
	parcelas := newStubParcelaRepo()
	recibos := &stubReciboRepo{}
	svc := service.NewParcelaService(
		parcelas,
		&stubClienteRepo{cliente: model.Cliente{Nome: "Maria Silva"}},
		&stubProdutoRepo{},
		&stubEmitenteRepo{},
		recibos,
		nil, // no dispatcher in unit tests
	)
	return &fixture{svc: svc, parcelas: parcelas, recibos: recibos}
}

func criarPlano(t *testing.T, f *fixture, total int64, n int, intervalo string) []dto.ParcelaResponse {
	t.Helper()
	resp, err := f.svc.Criar(context.Background(), dto.CriarParcelaRequest{
		Documento:         "DOC-001",
		ClienteID:         uuid.NewString(),
		ProdutoID:         uuid.NewString(),
		EmitenteID:        uuid.NewString(),
		ValorTotalProduto: total,
		NumeroParcelas:    n,
		Intervalo:         intervalo,
		DataVencimento:    "2026-09-10",
	})
	require.NoError(t, err)
	require.Len(t, resp.Parcelas, n)
	return resp.Parcelas
}

// ── Criar ─────────────────────────────────────────────────────────────────────

func TestCriarDivideValorIgualmente(t *testing.T) {
	f := newFixture()
	parcelas := criarPlano(t, f, 30000, 3, model.IntervaloMensal)

	for i, p := range parcelas {
		assert.Equal(t, int64(10000), p.ValorParcela)
		assert.Equal(t, i+1, p.NumeroParcela)
		assert.Equal(t, 3, p.NumeroParcelas)
		assert.Equal(t, "DOC-001", p.Documento)
		assert.False(t, p.Paga)
		assert.False(t, p.EscolhaPendente)
	}
	assert.Equal(t, "2026-09-10", parcelas[0].DataVencimento)
	assert.Equal(t, "2026-10-10", parcelas[1].DataVencimento)
	assert.Equal(t, "2026-11-10", parcelas[2].DataVencimento)
}

func TestCriarArredondamentoNaPrimeiraParcela(t *testing.T) {
	f := newFixture()
	parcelas := criarPlano(t, f, 10000, 3, model.IntervaloSemanal)

	assert.Equal(t, int64(3334), parcelas[0].ValorParcela)
	assert.Equal(t, int64(3333), parcelas[1].ValorParcela)
	assert.Equal(t, int64(3333), parcelas[2].ValorParcela)

	var soma int64
	for _, p := range parcelas {
		soma += p.ValorParcela
	}
	assert.Equal(t, int64(10000), soma, "a soma das parcelas deve bater com o valor total")
}

func TestCriarIntervaloQuinzenal(t *testing.T) {
	f := newFixture()
	parcelas := criarPlano(t, f, 20000, 2, model.IntervaloQuinzenal)
	assert.Equal(t, "2026-09-10", parcelas[0].DataVencimento)
	assert.Equal(t, "2026-09-25", parcelas[1].DataVencimento)
}

// ── Pagar ─────────────────────────────────────────────────────────────────────

func TestPagarIntegralLiquidaSemEscolha(t *testing.T) {
	f := newFixture()
	parcelas := criarPlano(t, f, 30000, 3, model.IntervaloMensal)
	id := uuid.MustParse(parcelas[0].ParcelaID)

	resp, err := f.svc.Pagar(context.Background(), id, dto.PagarParcelaRequest{
		ValorPago: 10000, DataPagamento: "2026-09-09",
	})
	require.NoError(t, err)
	assert.False(t, resp.EscolhaNecessaria)

	p, _ := f.parcelas.FindByID(context.Background(), id)
	assert.True(t, p.Paga)
	assert.Equal(t, int64(10000), p.ValorPago)
	assert.False(t, p.EscolhaPendente)

	require.Len(t, f.recibos.recibos, 1)
	assert.Equal(t, int64(10000), f.recibos.recibos[0].ValorPago)
}

func TestPagarParcialExigeEscolha(t *testing.T) {
	f := newFixture()
	parcelas := criarPlano(t, f, 30000, 3, model.IntervaloMensal)
	id := uuid.MustParse(parcelas[0].ParcelaID)

	resp, err := f.svc.Pagar(context.Background(), id, dto.PagarParcelaRequest{
		ValorPago: 4000, DataPagamento: "2026-09-09",
	})
	require.NoError(t, err)
	assert.True(t, resp.EscolhaNecessaria)
	assert.Contains(t, resp.Mensagem, "R$ 60,00")

	p, _ := f.parcelas.FindByID(context.Background(), id)
	assert.True(t, p.EscolhaPendente)
	assert.False(t, p.Paga)
	assert.Empty(t, f.recibos.recibos, "pagamento pendente de escolha nao gera recibo")

	// While the choice is pending, paying again and deleting are refused
	_, err = f.svc.Pagar(context.Background(), id, dto.PagarParcelaRequest{
		ValorPago: 6000, DataPagamento: "2026-09-09",
	})
	assert.Error(t, err)

	_, err = f.svc.Excluir(context.Background(), id)
	assert.Error(t, err)
}

func TestPagarParcelaJaPagaRejeitado(t *testing.T) {
	f := newFixture()
	parcelas := criarPlano(t, f, 10000, 1, model.IntervaloMensal)
	id := uuid.MustParse(parcelas[0].ParcelaID)

	_, err := f.svc.Pagar(context.Background(), id, dto.PagarParcelaRequest{
		ValorPago: 10000, DataPagamento: "2026-09-09",
	})
	require.NoError(t, err)

	_, err = f.svc.Pagar(context.Background(), id, dto.PagarParcelaRequest{
		ValorPago: 10000, DataPagamento: "2026-09-10",
	})
	assert.Error(t, err)
}

// ── ResolverEscolha ───────────────────────────────────────────────────────────

func TestEscolhaAplicarDesconto(t *testing.T) {
	f := newFixture()
	parcelas := criarPlano(t, f, 30000, 3, model.IntervaloMensal)
	id := uuid.MustParse(parcelas[0].ParcelaID)

	_, err := f.svc.Pagar(context.Background(), id, dto.PagarParcelaRequest{
		ValorPago: 4000, DataPagamento: "2026-09-09",
	})
	require.NoError(t, err)

	resp, err := f.svc.ResolverEscolha(context.Background(), id, dto.EscolhaRequest{GerarNovasParcelas: false})
	require.NoError(t, err)
	assert.Contains(t, resp.Mensagem, "R$ 60,00")

	p, _ := f.parcelas.FindByID(context.Background(), id)
	assert.True(t, p.Paga)
	assert.False(t, p.EscolhaPendente)
	assert.Equal(t, int64(4000), p.ValorPago)
	assert.Equal(t, int64(6000), p.DescontoAplicado)
	assert.Equal(t, int64(0), p.Saldo())

	require.Len(t, f.recibos.recibos, 1)
	assert.Equal(t, int64(6000), f.recibos.recibos[0].Desconto)
}

func TestEscolhaGerarNovasParcelas(t *testing.T) {
	f := newFixture()
	parcelas := criarPlano(t, f, 30000, 3, model.IntervaloMensal)
	id := uuid.MustParse(parcelas[0].ParcelaID)

	_, err := f.svc.Pagar(context.Background(), id, dto.PagarParcelaRequest{
		ValorPago: 4000, DataPagamento: "2026-09-09",
	})
	require.NoError(t, err)

	_, err = f.svc.ResolverEscolha(context.Background(), id, dto.EscolhaRequest{
		GerarNovasParcelas:         true,
		NumeroParcelasRenegociacao: 2,
		NovoIntervalo:              model.IntervaloSemanal,
		DataPrimeiraParcela:        "2026-10-01",
	})
	require.NoError(t, err)

	p, _ := f.parcelas.FindByID(context.Background(), id)
	assert.True(t, p.Paga)
	assert.False(t, p.EscolhaPendente)

	todas, _ := f.parcelas.FindByDocumento(context.Background(), "DOC-001")
	require.Len(t, todas, 5, "3 originais + 2 renegociadas")

	novas := todas[3:]
	assert.Equal(t, int64(3000), novas[0].ValorParcela)
	assert.Equal(t, int64(3000), novas[1].ValorParcela)
	assert.False(t, novas[0].Paga)
	assert.Equal(t, model.IntervaloSemanal, novas[0].Intervalo)
}

func TestEscolhaSemPendenciaRejeitada(t *testing.T) {
	f := newFixture()
	parcelas := criarPlano(t, f, 10000, 1, model.IntervaloMensal)
	id := uuid.MustParse(parcelas[0].ParcelaID)

	_, err := f.svc.ResolverEscolha(context.Background(), id, dto.EscolhaRequest{GerarNovasParcelas: false})
	assert.Error(t, err)
}

// ── Estornar ──────────────────────────────────────────────────────────────────

func TestEstornarRestauraValores(t *testing.T) {
	f := newFixture()
	parcelas := criarPlano(t, f, 30000, 3, model.IntervaloMensal)
	id := uuid.MustParse(parcelas[0].ParcelaID)

	_, err := f.svc.Pagar(context.Background(), id, dto.PagarParcelaRequest{
		ValorPago: 10000, DataPagamento: "2026-09-09",
	})
	require.NoError(t, err)
	require.Len(t, f.recibos.recibos, 1)

	_, err = f.svc.Estornar(context.Background(), id)
	require.NoError(t, err)

	p, _ := f.parcelas.FindByID(context.Background(), id)
	assert.False(t, p.Paga)
	assert.False(t, p.EscolhaPendente)
	assert.Equal(t, int64(0), p.ValorPago)
	assert.Equal(t, int64(0), p.DescontoAplicado)
	assert.Nil(t, p.DataPagamento)
	assert.Empty(t, f.recibos.recibos, "estorno remove o recibo do pagamento")
}

func TestEstornarDispensaEscolhaPendente(t *testing.T) {
	f := newFixture()
	parcelas := criarPlano(t, f, 30000, 3, model.IntervaloMensal)
	id := uuid.MustParse(parcelas[0].ParcelaID)

	_, err := f.svc.Pagar(context.Background(), id, dto.PagarParcelaRequest{
		ValorPago: 4000, DataPagamento: "2026-09-09",
	})
	require.NoError(t, err)

	_, err = f.svc.Estornar(context.Background(), id)
	require.NoError(t, err)

	p, _ := f.parcelas.FindByID(context.Background(), id)
	assert.False(t, p.EscolhaPendente)
	assert.Equal(t, int64(0), p.ValorPago)
	assert.Equal(t, int64(10000), p.Saldo(), "saldo volta ao valor original")
}

func TestEstornarSemPagamentoRejeitado(t *testing.T) {
	f := newFixture()
	parcelas := criarPlano(t, f, 10000, 1, model.IntervaloMensal)
	id := uuid.MustParse(parcelas[0].ParcelaID)

	_, err := f.svc.Estornar(context.Background(), id)
	assert.Error(t, err)
}

// ── Renegociar ────────────────────────────────────────────────────────────────

func TestRenegociarComPagamentoParcial(t *testing.T) {
	f := newFixture()
	parcelas := criarPlano(t, f, 30000, 3, model.IntervaloMensal)
	id := uuid.MustParse(parcelas[0].ParcelaID)

	_, err := f.svc.Renegociar(context.Background(), id, dto.RenegociarRequest{
		GerarNovasParcelas:         true,
		ValorPago:                  4000,
		NumeroParcelasRenegociacao: 3,
		NovoIntervalo:              model.IntervaloMensal,
		DataPrimeiraParcela:        "2026-10-01",
	})
	require.NoError(t, err)

	p, _ := f.parcelas.FindByID(context.Background(), id)
	assert.True(t, p.Paga)
	assert.Equal(t, int64(4000), p.ValorPago)

	todas, _ := f.parcelas.FindByDocumento(context.Background(), "DOC-001")
	require.Len(t, todas, 6)
	var somaNovas int64
	for _, n := range todas[3:] {
		somaNovas += n.ValorParcela
	}
	assert.Equal(t, int64(6000), somaNovas, "novas parcelas cobrem o saldo menos o valor pago")
	require.Len(t, f.recibos.recibos, 1)
}

func TestRenegociarValorQuitaRejeitado(t *testing.T) {
	f := newFixture()
	parcelas := criarPlano(t, f, 10000, 1, model.IntervaloMensal)
	id := uuid.MustParse(parcelas[0].ParcelaID)

	_, err := f.svc.Renegociar(context.Background(), id, dto.RenegociarRequest{
		GerarNovasParcelas:         true,
		ValorPago:                  10000,
		NumeroParcelasRenegociacao: 2,
		NovoIntervalo:              model.IntervaloMensal,
		DataPrimeiraParcela:        "2026-10-01",
	})
	assert.Error(t, err)
}

// ── Atualizar / Excluir ───────────────────────────────────────────────────────

func TestAtualizarNaoTocaIrmas(t *testing.T) {
	f := newFixture()
	parcelas := criarPlano(t, f, 30000, 3, model.IntervaloMensal)
	id := uuid.MustParse(parcelas[0].ParcelaID)

	_, err := f.svc.Atualizar(context.Background(), id, dto.AtualizarParcelaRequest{
		ValorParcela:   12000,
		DataVencimento: "2026-09-15",
	})
	require.NoError(t, err)

	editada, _ := f.parcelas.FindByID(context.Background(), id)
	assert.Equal(t, int64(12000), editada.ValorParcela)

	for _, orig := range parcelas[1:] {
		irma, _ := f.parcelas.FindByID(context.Background(), uuid.MustParse(orig.ParcelaID))
		assert.Equal(t, int64(10000), irma.ValorParcela)
		assert.Equal(t, orig.DataVencimento, irma.DataVencimento.Format("2006-01-02"))
	}
}

func TestAtualizarPagaRejeitado(t *testing.T) {
	f := newFixture()
	parcelas := criarPlano(t, f, 10000, 1, model.IntervaloMensal)
	id := uuid.MustParse(parcelas[0].ParcelaID)

	_, err := f.svc.Pagar(context.Background(), id, dto.PagarParcelaRequest{
		ValorPago: 10000, DataPagamento: "2026-09-09",
	})
	require.NoError(t, err)

	_, err = f.svc.Atualizar(context.Background(), id, dto.AtualizarParcelaRequest{ValorParcela: 5000})
	assert.Error(t, err)
}

func TestExcluirPendenteRetornaEnvelope(t *testing.T) {
	f := newFixture()
	parcelas := criarPlano(t, f, 10000, 1, model.IntervaloMensal)
	id := uuid.MustParse(parcelas[0].ParcelaID)

	resp, err := f.svc.Excluir(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Parcela excluida com sucesso", resp.Dtos.Mensagem)

	_, err = f.parcelas.FindByID(context.Background(), id)
	assert.Error(t, err)
}

func TestExcluirPagaRejeitado(t *testing.T) {
	f := newFixture()
	parcelas := criarPlano(t, f, 10000, 1, model.IntervaloMensal)
	id := uuid.MustParse(parcelas[0].ParcelaID)

	_, err := f.svc.Pagar(context.Background(), id, dto.PagarParcelaRequest{
		ValorPago: 10000, DataPagamento: "2026-09-09",
	})
	require.NoError(t, err)

	_, err = f.svc.Excluir(context.Background(), id)
	assert.Error(t, err)
}
