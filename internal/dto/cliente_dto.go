package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarClienteRequest struct {
	ClienteNome     string  `json:"clienteNome"     validate:"required,min=2,max=120"`
	ClienteCPF      string  `json:"clienteCpf"      validate:"required,min=11,max=14"`
	ClienteEndereco *string `json:"clienteEndereco"`
	ClienteTelefone *string `json:"clienteTelefone"`
	Senha           string  `json:"senha"           validate:"required,min=4"`
}

type AtualizarClienteRequest struct {
	ClienteNome     string  `json:"clienteNome"     validate:"omitempty,min=2,max=120"`
	ClienteCPF      string  `json:"clienteCpf"      validate:"omitempty,min=11,max=14"`
	ClienteEndereco *string `json:"clienteEndereco"`
	ClienteTelefone *string `json:"clienteTelefone"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClienteResponse struct {
	ClienteID       string  `json:"clienteId"`
	ClienteNome     string  `json:"clienteNome"`
	ClienteCPF      string  `json:"clienteCpf"`
	ClienteEndereco *string `json:"clienteEndereco"`
	ClienteTelefone *string `json:"clienteTelefone"`
	PrimeiroAcesso  bool    `json:"primeiroAcesso"`
}
