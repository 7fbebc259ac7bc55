package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"parcelas/internal/client"
	"parcelas/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// servidorFake is a minimal backend double: it records which protected
// endpoints were hit so tests can assert on the protocol, not just the
// decoded payloads.
type servidorFake struct {
	t         *testing.T
	mux       *http.ServeMux
	chamadas  []string
	expiresIn int
}

func novoServidor(t *testing.T) (*servidorFake, *httptest.Server) {
	f := &servidorFake{t: t, mux: http.NewServeMux(), expiresIn: 3600}

	f.mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		var req dto.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Senha != "1234" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Credenciais invalidas"})
			return
		}
		json.NewEncoder(w).Encode(dto.LoginResponse{
			Token:          "tok-abc",
			TokenType:      "bearer",
			ExpiresIn:      f.expiresIn,
			PrimeiroAcesso: true,
		})
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/login" {
			if r.Header.Get("Authorization") != "Bearer tok-abc" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"detail": "Token invalido"})
				return
			}
			f.chamadas = append(f.chamadas, r.Method+" "+r.URL.Path)
		}
		f.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func entrar(t *testing.T, c *client.Client) {
	t.Helper()
	_, err := c.Entrar(context.Background(), "00000000000", "1234")
	require.NoError(t, err)
}

// ── sessao ───────────────────────────────────────────────────────────────────

func TestEntrarArmazenaSessao(t *testing.T) {
	_, srv := novoServidor(t)
	c := client.New(srv.URL)

	sessao, err := c.Entrar(context.Background(), "00000000000", "1234")
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", sessao.Token)
	assert.True(t, sessao.PrimeiroAcesso)
	assert.WithinDuration(t, time.Now().Add(time.Hour), sessao.ExpiraEm, 5*time.Second)
	assert.False(t, sessao.Expirada())
}

func TestEntrarCredenciaisInvalidas(t *testing.T) {
	_, srv := novoServidor(t)
	c := client.New(srv.URL)

	_, err := c.Entrar(context.Background(), "00000000000", "errada")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Credenciais invalidas", apiErr.Detail)
	assert.Nil(t, c.Sessao())
}

func TestChamadaSemSessao(t *testing.T) {
	_, srv := novoServidor(t)
	c := client.New(srv.URL)

	_, err := c.ListarProdutos(context.Background())
	assert.ErrorIs(t, err, client.ErrSemSessao)
}

func TestSessaoExpiradaFalhaLocalmente(t *testing.T) {
	f, srv := novoServidor(t)
	f.expiresIn = -1 // session born expired
	c := client.New(srv.URL)
	entrar(t, c)

	_, err := c.ListarProdutos(context.Background())
	assert.ErrorIs(t, err, client.ErrSessaoExpirada)
	assert.Empty(t, f.chamadas, "a chamada nao deve chegar ao servidor")
}

func TestSairDescartaSessao(t *testing.T) {
	_, srv := novoServidor(t)
	c := client.New(srv.URL)
	entrar(t, c)

	c.Sair()
	assert.Nil(t, c.Sessao())
	_, err := c.ListarProdutos(context.Background())
	assert.ErrorIs(t, err, client.ErrSemSessao)
}

// ── pagamento em duas fases ──────────────────────────────────────────────────

func TestPagarIntegralLiquida(t *testing.T) {
	f, srv := novoServidor(t)
	f.mux.HandleFunc("PATCH /api/parcelas/p1/pagar", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(dto.PagarParcelaResponse{
			EscolhaNecessaria: false,
			Mensagem:          "Parcela paga com sucesso",
		})
	})
	c := client.New(srv.URL)
	entrar(t, c)

	resultado, err := c.Pagar(context.Background(), "p1", 10000, "2026-09-09")
	require.NoError(t, err)
	assert.True(t, resultado.Liquidada)
	assert.Nil(t, resultado.Escolha)
}

func TestPagarParcialAplicarDesconto(t *testing.T) {
	f, srv := novoServidor(t)
	f.mux.HandleFunc("PATCH /api/parcelas/p1/pagar", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(dto.PagarParcelaResponse{EscolhaNecessaria: true})
	})
	var escolhaReq dto.EscolhaRequest
	f.mux.HandleFunc("PATCH /api/parcelas/p1/escolha", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&escolhaReq))
		json.NewEncoder(w).Encode(dto.MensagemResponse{Mensagem: "ok"})
	})
	c := client.New(srv.URL)
	entrar(t, c)

	resultado, err := c.Pagar(context.Background(), "p1", 4000, "2026-09-09")
	require.NoError(t, err)
	assert.False(t, resultado.Liquidada)
	require.NotNil(t, resultado.Escolha)

	_, err = resultado.Escolha.AplicarDesconto(context.Background())
	require.NoError(t, err)
	assert.False(t, escolhaReq.GerarNovasParcelas)

	// handle is single-use
	_, err = resultado.Escolha.AplicarDesconto(context.Background())
	assert.ErrorIs(t, err, client.ErrEscolhaResolvida)
	_, err = resultado.Escolha.Dispensar(context.Background())
	assert.ErrorIs(t, err, client.ErrEscolhaResolvida)
}

func TestPagarParcialGerarNovasParcelas(t *testing.T) {
	f, srv := novoServidor(t)
	f.mux.HandleFunc("PATCH /api/parcelas/p1/pagar", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(dto.PagarParcelaResponse{EscolhaNecessaria: true})
	})
	var escolhaReq dto.EscolhaRequest
	f.mux.HandleFunc("PATCH /api/parcelas/p1/escolha", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&escolhaReq))
		json.NewEncoder(w).Encode(dto.MensagemResponse{Mensagem: "ok"})
	})
	c := client.New(srv.URL)
	entrar(t, c)

	resultado, err := c.Pagar(context.Background(), "p1", 4000, "2026-09-09")
	require.NoError(t, err)
	require.NotNil(t, resultado.Escolha)

	_, err = resultado.Escolha.GerarNovasParcelas(context.Background(), 3, "MENSAL", "2026-10-01")
	require.NoError(t, err)
	assert.True(t, escolhaReq.GerarNovasParcelas)
	assert.Equal(t, 3, escolhaReq.NumeroParcelasRenegociacao)
	assert.Equal(t, "MENSAL", escolhaReq.NovoIntervalo)
	assert.Equal(t, "2026-10-01", escolhaReq.DataPrimeiraParcela)
}

func TestDispensarEmiteEstorno(t *testing.T) {
	f, srv := novoServidor(t)
	f.mux.HandleFunc("PATCH /api/parcelas/p1/pagar", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(dto.PagarParcelaResponse{EscolhaNecessaria: true})
	})
	f.mux.HandleFunc("PATCH /api/parcelas/p1/desfazer", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(dto.MensagemResponse{Mensagem: "Pagamento estornado com sucesso"})
	})
	c := client.New(srv.URL)
	entrar(t, c)

	resultado, err := c.Pagar(context.Background(), "p1", 4000, "2026-09-09")
	require.NoError(t, err)
	require.NotNil(t, resultado.Escolha)

	_, err = resultado.Escolha.Dispensar(context.Background())
	require.NoError(t, err)
	assert.Contains(t, f.chamadas, "PATCH /api/parcelas/p1/desfazer",
		"dispensar a escolha deve emitir o estorno compensatorio")

	_, err = resultado.Escolha.AplicarDesconto(context.Background())
	assert.ErrorIs(t, err, client.ErrEscolhaResolvida)
}

// ── recibos ──────────────────────────────────────────────────────────────────

func TestBaixarReciboUsaContentDisposition(t *testing.T) {
	f, srv := novoServidor(t)
	f.mux.HandleFunc("GET /api/recibos/r1/pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="recibo_r1.pdf"`)
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 conteudo"))
	})
	c := client.New(srv.URL)
	entrar(t, c)

	nome, pdf, err := c.BaixarRecibo(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "recibo_r1.pdf", nome)
	assert.Equal(t, []byte("%PDF-1.4 conteudo"), pdf)
}

func TestBaixarReciboSemHeaderUsaFallback(t *testing.T) {
	f, srv := novoServidor(t)
	f.mux.HandleFunc("GET /api/recibos/r2/pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("%PDF-1.4"))
	})
	c := client.New(srv.URL)
	entrar(t, c)

	nome, _, err := c.BaixarRecibo(context.Background(), "r2")
	require.NoError(t, err)
	assert.Equal(t, "recibo_r2.pdf", nome)
}

// ── erros do servidor ────────────────────────────────────────────────────────

func TestErroDoServidorViraAPIError(t *testing.T) {
	f, srv := novoServidor(t)
	f.mux.HandleFunc("GET /api/parcelas/inexistente", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Parcela nao encontrada"})
	})
	c := client.New(srv.URL)
	entrar(t, c)

	_, err := c.BuscarParcela(context.Background(), "inexistente")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Parcela nao encontrada", apiErr.Detail)
}
