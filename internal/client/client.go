// Package client is the typed Go consumer of the parcelas API. It owns the
// session token for the fixed one-hour window and exposes one wrapper per
// endpoint; the installment payment workflow lives in coordinator.go.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"parcelas/internal/dto"
)

var (
	// ErrSemSessao is returned when a protected call is made before Entrar.
	ErrSemSessao = errors.New("client: sessao nao iniciada")
	// ErrSessaoExpirada is returned once the one-hour window closes; the
	// caller must Entrar again.
	ErrSessaoExpirada = errors.New("client: sessao expirada")
)

// APIError carries the server's error envelope.
type APIError struct {
	Status int    `json:"-"`
	Detail string `json:"detail"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("client: servidor retornou %d: %s", e.Status, e.Detail)
}

// Sessao is the explicit authentication context. It expires exactly when the
// server-side token does, so a stale client fails locally instead of with a
// surprise 401 mid-workflow.
type Sessao struct {
	Token          string
	ExpiraEm       time.Time
	PrimeiroAcesso bool
}

// Expirada reports whether the session window has closed.
func (s *Sessao) Expirada() bool {
	return time.Now().After(s.ExpiraEm)
}

// Client talks to one parcelas backend. Not safe for concurrent use while
// Entrar/Sair are in flight; the typed calls themselves are.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessao     *Sessao
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewWithHTTPClient injects a custom *http.Client (tests, instrumentation).
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: baseURL, httpClient: hc}
}

// Entrar authenticates and stores the session for subsequent calls.
func (c *Client) Entrar(ctx context.Context, cpf, senha string) (*Sessao, error) {
	var resp dto.LoginResponse
	if err := c.doPublic(ctx, http.MethodPost, "/api/login", dto.LoginRequest{CPF: cpf, Senha: senha}, &resp); err != nil {
		return nil, err
	}
	c.sessao = &Sessao{
		Token:          resp.Token,
		ExpiraEm:       time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second),
		PrimeiroAcesso: resp.PrimeiroAcesso,
	}
	return c.sessao, nil
}

// Sair drops the session. The server keeps no session state, so this is
// purely local.
func (c *Client) Sair() {
	c.sessao = nil
}

// Sessao returns the current session, or nil before Entrar.
func (c *Client) Sessao() *Sessao {
	return c.sessao
}

// ── transport ────────────────────────────────────────────────────────────────

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	if c.sessao == nil {
		return ErrSemSessao
	}
	if c.sessao.Expirada() {
		return ErrSessaoExpirada
	}
	return c.roundTrip(ctx, method, path, c.sessao.Token, in, out)
}

func (c *Client) doPublic(ctx context.Context, method, path string, in, out interface{}) error {
	return c.roundTrip(ctx, method, path, "", in, out)
}

func (c *Client) roundTrip(ctx context.Context, method, path, token string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("client: create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: servidor inacessivel: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("client: decode response: %w", err)
		}
	}
	return nil
}

// ── auth ─────────────────────────────────────────────────────────────────────

func (c *Client) AlterarSenha(ctx context.Context, req dto.AlterarSenhaRequest) error {
	return c.do(ctx, http.MethodPut, "/api/alterar-senha", req, nil)
}

// ── clientes ─────────────────────────────────────────────────────────────────

func (c *Client) ListarClientes(ctx context.Context) ([]dto.ClienteResponse, error) {
	var out []dto.ClienteResponse
	err := c.do(ctx, http.MethodGet, "/api/clientes", nil, &out)
	return out, err
}

func (c *Client) BuscarClientesPorNome(ctx context.Context, nome string) ([]dto.ClienteResponse, error) {
	var out []dto.ClienteResponse
	err := c.do(ctx, http.MethodGet, "/api/clientes/por-nome?nome="+nome, nil, &out)
	return out, err
}

func (c *Client) CriarCliente(ctx context.Context, req dto.CriarClienteRequest) (*dto.ClienteResponse, error) {
	var out dto.ClienteResponse
	err := c.do(ctx, http.MethodPost, "/api/clientes", req, &out)
	return &out, err
}

func (c *Client) AtualizarCliente(ctx context.Context, id string, req dto.AtualizarClienteRequest) (*dto.ClienteResponse, error) {
	var out dto.ClienteResponse
	err := c.do(ctx, http.MethodPatch, "/api/clientes/"+id, req, &out)
	return &out, err
}

func (c *Client) ExcluirCliente(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/clientes/"+id, nil, nil)
}

// ── produtos ─────────────────────────────────────────────────────────────────

func (c *Client) ListarProdutos(ctx context.Context) ([]dto.ProdutoResponse, error) {
	var out []dto.ProdutoResponse
	err := c.do(ctx, http.MethodGet, "/api/produtos", nil, &out)
	return out, err
}

func (c *Client) CriarProduto(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error) {
	var out dto.ProdutoResponse
	err := c.do(ctx, http.MethodPost, "/api/produtos", req, &out)
	return &out, err
}

func (c *Client) AtualizarProduto(ctx context.Context, id string, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error) {
	var out dto.ProdutoResponse
	err := c.do(ctx, http.MethodPatch, "/api/produtos/"+id, req, &out)
	return &out, err
}

func (c *Client) ExcluirProduto(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/produtos/"+id, nil, nil)
}

// ── emitentes ────────────────────────────────────────────────────────────────

func (c *Client) ListarEmitentes(ctx context.Context) ([]dto.EmitenteResponse, error) {
	var out []dto.EmitenteResponse
	err := c.do(ctx, http.MethodGet, "/api/emitente", nil, &out)
	return out, err
}

func (c *Client) CriarEmitente(ctx context.Context, req dto.CriarEmitenteRequest) (*dto.EmitenteResponse, error) {
	var out dto.EmitenteResponse
	err := c.do(ctx, http.MethodPost, "/api/emitente", req, &out)
	return &out, err
}

func (c *Client) AtualizarEmitente(ctx context.Context, id string, req dto.AtualizarEmitenteRequest) (*dto.EmitenteResponse, error) {
	var out dto.EmitenteResponse
	err := c.do(ctx, http.MethodPatch, "/api/emitente/"+id, req, &out)
	return &out, err
}

func (c *Client) ExcluirEmitente(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/emitente/"+id, nil, nil)
}

// ── parcelas ─────────────────────────────────────────────────────────────────

// ParcelaListResponse mirrors GET /api/parcelas.
type ParcelaListResponse struct {
	Parcelas []dto.ParcelaResponse `json:"parcelas"`
	Total    int64                 `json:"total"`
}

func (c *Client) ListarParcelas(ctx context.Context, status string) (*ParcelaListResponse, error) {
	path := "/api/parcelas"
	if status != "" {
		path += "?status=" + status
	}
	var out ParcelaListResponse
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return &out, err
}

func (c *Client) BuscarParcela(ctx context.Context, id string) (*dto.ParcelaResponse, error) {
	var out dto.ParcelaResponse
	err := c.do(ctx, http.MethodGet, "/api/parcelas/"+id, nil, &out)
	return &out, err
}

func (c *Client) CriarParcelas(ctx context.Context, req dto.CriarParcelaRequest) (*dto.CriarParcelaResponse, error) {
	var out dto.CriarParcelaResponse
	err := c.do(ctx, http.MethodPost, "/api/parcelas", req, &out)
	return &out, err
}

func (c *Client) AtualizarParcela(ctx context.Context, id string, req dto.AtualizarParcelaRequest) (*dto.MensagemResponse, error) {
	var out dto.MensagemResponse
	err := c.do(ctx, http.MethodPatch, "/api/parcelas/"+id, req, &out)
	return &out, err
}

func (c *Client) RenegociarParcela(ctx context.Context, id string, req dto.RenegociarRequest) (*dto.MensagemResponse, error) {
	var out dto.MensagemResponse
	err := c.do(ctx, http.MethodPatch, "/api/parcelas/"+id+"/renegociar", req, &out)
	return &out, err
}

func (c *Client) ExcluirParcela(ctx context.Context, id string) (*dto.ExcluirParcelaResponse, error) {
	var out dto.ExcluirParcelaResponse
	err := c.do(ctx, http.MethodDelete, "/api/parcelas/"+id, nil, &out)
	return &out, err
}

// ── recibos ──────────────────────────────────────────────────────────────────

func (c *Client) ListarRecibos(ctx context.Context) ([]dto.ReciboResponse, error) {
	var out []dto.ReciboResponse
	err := c.do(ctx, http.MethodGet, "/api/recibos", nil, &out)
	return out, err
}

// BaixarRecibo downloads the receipt PDF. The filename comes from the
// Content-Disposition header, falling back to recibo_<id>.pdf.
func (c *Client) BaixarRecibo(ctx context.Context, id string) (fileName string, pdf []byte, err error) {
	if c.sessao == nil {
		return "", nil, ErrSemSessao
	}
	if c.sessao.Expirada() {
		return "", nil, ErrSessaoExpirada
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/recibos/"+id+"/pdf", nil)
	if err != nil {
		return "", nil, fmt.Errorf("client: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.sessao.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("client: servidor inacessivel: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return "", nil, apiErr
	}

	pdf, err = io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("client: read pdf: %w", err)
	}

	fileName = "recibo_" + id + ".pdf"
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil && params["filename"] != "" {
			fileName = params["filename"]
		}
	}
	return fileName, pdf, nil
}

// ── relatorios ───────────────────────────────────────────────────────────────

func (c *Client) ListarTiposRelatorio(ctx context.Context) ([]dto.TipoRelatorio, error) {
	var out []dto.TipoRelatorio
	err := c.do(ctx, http.MethodGet, "/api/relatorios/lista", nil, &out)
	return out, err
}
