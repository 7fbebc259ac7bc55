package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	CPF   string `json:"cpf"   validate:"required,min=11,max=14"`
	Senha string `json:"senha" validate:"required,min=4"`
}

type AlterarSenhaRequest struct {
	CPF        string `json:"cpf"        validate:"required,min=11,max=14"`
	SenhaAtual string `json:"senhaAtual" validate:"required"`
	NovaSenha  string `json:"novaSenha"  validate:"required,min=8"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// LoginResponse carries the bearer token the front-end stores for the fixed
// one-hour session window. PrimeiroAcesso routes the user to the password
// change screen before anything else.
type LoginResponse struct {
	Token          string `json:"token"`
	TokenType      string `json:"token_type"`
	ExpiresIn      int    `json:"expires_in"` // seconds
	PrimeiroAcesso bool   `json:"primeiroAcesso"`
}
