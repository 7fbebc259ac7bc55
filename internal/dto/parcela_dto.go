package dto

// ─── Filter / List ──────────────────────────────────────────────────────────

// ParcelaFilter is bound from the query string of GET /api/parcelas.
// Status mirrors the front-end filter options.
type ParcelaFilter struct {
	Status    string `form:"status,default=todas" validate:"omitempty,oneof=todas pagas pendentes atrasadas venceHoje"`
	ClienteID string `form:"clienteId"            validate:"omitempty,uuid"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CriarParcelaRequest creates a whole plan: valorTotalProduto (centavos) is
// split across numeroParcelas installments.
type CriarParcelaRequest struct {
	Documento         string `json:"documento"         validate:"required,min=1,max=120"`
	ClienteID         string `json:"clienteId"         validate:"required,uuid"`
	ProdutoID         string `json:"produtoId"         validate:"required,uuid"`
	ValorTotalProduto int64  `json:"valorTotalProduto" validate:"required,gt=0"`
	NumeroParcelas    int    `json:"numeroParcelas"    validate:"required,min=1,max=120"`
	EmitenteID        string `json:"emitenteId"        validate:"required,uuid"`
	Intervalo         string `json:"intervalo"         validate:"required,oneof=MENSAL QUINZENAL SEMANAL ANUAL"`
	DataVencimento    string `json:"dataVencimento"    validate:"required"`
	DataCriacao       string `json:"dataCriacao"       validate:"omitempty"`
}

// AtualizarParcelaRequest corrects one unpaid installment. The server owns
// any cascading effects; siblings are never touched here.
type AtualizarParcelaRequest struct {
	Documento      string `json:"documento"      validate:"omitempty,min=1,max=120"`
	ValorParcela   int64  `json:"valorParcela"   validate:"omitempty,gt=0"`
	NumeroParcelas int    `json:"numeroParcelas" validate:"omitempty,min=1,max=120"`
	Intervalo      string `json:"intervalo"      validate:"omitempty,oneof=MENSAL QUINZENAL SEMANAL ANUAL"`
	DataVencimento string `json:"dataVencimento" validate:"omitempty"`
}

type PagarParcelaRequest struct {
	ValorPago     int64  `json:"valorPago"     validate:"required,gt=0"`
	DataPagamento string `json:"dataPagamento" validate:"required"`
}

// EscolhaRequest resolves a pending choice after an insufficient payment.
// gerarNovasParcelas=false closes the plan treating the shortfall as
// discount; true regenerates the remaining balance into a new series.
type EscolhaRequest struct {
	GerarNovasParcelas         bool   `json:"gerarNovasParcelas"`
	NumeroParcelasRenegociacao int    `json:"numeroParcelasRenegociacao" validate:"omitempty,min=1,max=120"`
	NovoIntervalo              string `json:"novoIntervalo"              validate:"omitempty,oneof=MENSAL QUINZENAL SEMANAL ANUAL"`
	DataPrimeiraParcela        string `json:"dataPrimeiraParcela"        validate:"omitempty"`
}

// RenegociarRequest is the standalone renegotiation entry point. Same payload
// shape as the in-payment reschedule, plus the amount paid up front.
type RenegociarRequest struct {
	GerarNovasParcelas         bool   `json:"gerarNovasParcelas"`
	ValorPago                  int64  `json:"valorPago"                  validate:"min=0"`
	NumeroParcelasRenegociacao int    `json:"numeroParcelasRenegociacao" validate:"required,min=1,max=120"`
	NovoIntervalo              string `json:"novoIntervalo"              validate:"required,oneof=MENSAL QUINZENAL SEMANAL ANUAL"`
	DataPrimeiraParcela        string `json:"dataPrimeiraParcela"        validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ParcelaResponse struct {
	ParcelaID        string           `json:"parcelaId"`
	Cliente          *ClienteResponse `json:"cliente,omitempty"`
	Produto          *ProdutoResponse `json:"produto,omitempty"`
	EmitenteID       string           `json:"emitenteId"`
	Documento        string           `json:"documento"`
	NumeroParcelas   int              `json:"numeroParcelas"`
	NumeroParcela    int              `json:"numeroParcela"`
	ValorParcela     int64            `json:"valorParcela"`
	ValorPago        int64            `json:"valorPago"`
	DescontoAplicado int64            `json:"descontoAplicado"`
	Intervalo        string           `json:"intervalo"`
	DataVencimento   string           `json:"dataVencimento"`
	DataCriacao      string           `json:"dataCriacao"`
	DataPagamento    *string          `json:"dataPagamento,omitempty"`
	Paga             bool             `json:"paga"`
	EscolhaPendente  bool             `json:"escolhaPendente"`
}

// MensagemResponse is the plain confirmation envelope most mutations return.
type MensagemResponse struct {
	Mensagem string `json:"mensagem"`
}

// PagarParcelaResponse is the two-phase payment outcome: when
// EscolhaNecessaria is set the caller must follow up on /escolha (or issue
// an estorno) before the installment is in a consistent state again.
type PagarParcelaResponse struct {
	EscolhaNecessaria bool   `json:"escolhaNecessaria"`
	Mensagem          string `json:"mensagem"`
}

type CriarParcelaResponse struct {
	Mensagem string            `json:"mensagem"`
	Parcelas []ParcelaResponse `json:"parcelas"`
}

// ExcluirParcelaResponse keeps the historical envelope the front-end expects.
type ExcluirParcelaResponse struct {
	Dtos MensagemResponse `json:"dtos"`
}
