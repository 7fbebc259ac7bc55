package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarEmitenteRequest struct {
	EmitenteNome     string  `json:"emitenteNome"     validate:"required,min=2,max=120"`
	EmitenteCPF      string  `json:"emitenteCpf"      validate:"required,min=11,max=14"`
	EmitenteEndereco *string `json:"emitenteEndereco"`
	EmitenteTelefone *string `json:"emitenteTelefone"`
}

type AtualizarEmitenteRequest struct {
	EmitenteNome     string  `json:"emitenteNome"     validate:"omitempty,min=2,max=120"`
	EmitenteCPF      string  `json:"emitenteCpf"      validate:"omitempty,min=11,max=14"`
	EmitenteEndereco *string `json:"emitenteEndereco"`
	EmitenteTelefone *string `json:"emitenteTelefone"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type EmitenteResponse struct {
	EmitenteID       string  `json:"emitenteId"`
	EmitenteNome     string  `json:"emitenteNome"`
	EmitenteCPF      string  `json:"emitenteCpf"`
	EmitenteEndereco *string `json:"emitenteEndereco"`
	EmitenteTelefone *string `json:"emitenteTelefone"`
}
