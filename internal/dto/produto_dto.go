package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ProdutoValorTotal is in centavos, like every monetary field on the wire.
type CriarProdutoRequest struct {
	ProdutoNome       string  `json:"produtoNome"       validate:"required,min=2,max=120"`
	ProdutoValorTotal int64   `json:"produtoValorTotal" validate:"required,gt=0"`
	ProdutoDescricao  *string `json:"produtoDescricao"`
}

type AtualizarProdutoRequest struct {
	ProdutoNome       string  `json:"produtoNome"       validate:"omitempty,min=2,max=120"`
	ProdutoValorTotal int64   `json:"produtoValorTotal" validate:"omitempty,gt=0"`
	ProdutoDescricao  *string `json:"produtoDescricao"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProdutoResponse struct {
	ProdutoID         string  `json:"produtoId"`
	ProdutoNome       string  `json:"produtoNome"`
	ProdutoValorTotal int64   `json:"produtoValorTotal"`
	ProdutoDescricao  *string `json:"produtoDescricao"`
}
