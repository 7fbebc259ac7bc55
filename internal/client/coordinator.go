package client

// coordinator.go — the installment payment workflow.
//
// Paying an installment is a two-phase protocol: a payment smaller than the
// outstanding balance leaves the installment in a pending-choice state on the
// server, and the caller MUST resolve it — apply the shortfall as discount,
// spread it over new installments, or dismiss, which issues a compensating
// estorno so no half-applied payment survives.

import (
	"context"
	"errors"
	"net/http"

	"parcelas/internal/dto"
)

// ErrEscolhaResolvida is returned when an Escolha handle is used twice.
var ErrEscolhaResolvida = errors.New("client: escolha ja resolvida")

// ResultadoPagamento is the outcome of Pagar. Exactly one of the two
// shapes holds: Liquidada true with Escolha nil, or Liquidada false with a
// live Escolha that must be resolved.
type ResultadoPagamento struct {
	Liquidada bool
	Mensagem  string
	Escolha   *Escolha
}

// Escolha is the single-use handle over a pending choice. All three
// resolutions invalidate the handle; the coordinator allows one outstanding
// mutation per installment.
type Escolha struct {
	client    *Client
	parcelaID string
	resolvida bool
}

// Pagar records a payment and classifies the server's answer.
func (c *Client) Pagar(ctx context.Context, parcelaID string, valorPago int64, dataPagamento string) (*ResultadoPagamento, error) {
	var resp dto.PagarParcelaResponse
	err := c.do(ctx, http.MethodPatch, "/api/parcelas/"+parcelaID+"/pagar",
		dto.PagarParcelaRequest{ValorPago: valorPago, DataPagamento: dataPagamento}, &resp)
	if err != nil {
		return nil, err
	}

	resultado := &ResultadoPagamento{
		Liquidada: !resp.EscolhaNecessaria,
		Mensagem:  resp.Mensagem,
	}
	if resp.EscolhaNecessaria {
		resultado.Escolha = &Escolha{client: c, parcelaID: parcelaID}
	}
	return resultado, nil
}

// AplicarDesconto forgives the remaining balance as discount and settles the
// installment.
func (e *Escolha) AplicarDesconto(ctx context.Context) (*dto.MensagemResponse, error) {
	return e.resolver(ctx, dto.EscolhaRequest{GerarNovasParcelas: false})
}

// GerarNovasParcelas rolls the remaining balance into a fresh series of n
// installments starting at dataPrimeiraParcela.
func (e *Escolha) GerarNovasParcelas(ctx context.Context, n int, intervalo, dataPrimeiraParcela string) (*dto.MensagemResponse, error) {
	return e.resolver(ctx, dto.EscolhaRequest{
		GerarNovasParcelas:         true,
		NumeroParcelasRenegociacao: n,
		NovoIntervalo:              intervalo,
		DataPrimeiraParcela:        dataPrimeiraParcela,
	})
}

func (e *Escolha) resolver(ctx context.Context, req dto.EscolhaRequest) (*dto.MensagemResponse, error) {
	if e.resolvida {
		return nil, ErrEscolhaResolvida
	}
	var resp dto.MensagemResponse
	err := e.client.do(ctx, http.MethodPatch, "/api/parcelas/"+e.parcelaID+"/escolha", req, &resp)
	if err != nil {
		return nil, err
	}
	e.resolvida = true
	return &resp, nil
}

// Dispensar abandons the choice. The partial payment already recorded on the
// server would leave the installment inconsistent, so dismissal issues the
// compensating estorno and the installment returns to its pre-payment state.
func (e *Escolha) Dispensar(ctx context.Context) (*dto.MensagemResponse, error) {
	if e.resolvida {
		return nil, ErrEscolhaResolvida
	}
	var resp dto.MensagemResponse
	err := e.client.do(ctx, http.MethodPatch, "/api/parcelas/"+e.parcelaID+"/desfazer", nil, &resp)
	if err != nil {
		return nil, err
	}
	e.resolvida = true
	return &resp, nil
}

// Estornar reverses a payment outside of the choice flow (manual reversal of
// a settled installment).
func (c *Client) Estornar(ctx context.Context, parcelaID string) (*dto.MensagemResponse, error) {
	var resp dto.MensagemResponse
	err := c.do(ctx, http.MethodPatch, "/api/parcelas/"+parcelaID+"/desfazer", nil, &resp)
	return &resp, err
}
