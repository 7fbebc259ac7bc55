package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarReciboRequest struct {
	ParcelaID     string `json:"parcelaId"     validate:"required,uuid"`
	ValorPago     int64  `json:"valorPago"     validate:"required,gt=0"`
	DataPagamento string `json:"dataPagamento" validate:"required"`
}

type EnviarReciboRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ReciboResponse struct {
	ReciboID      string `json:"reciboId"`
	ParcelaID     string `json:"parcelaId"`
	ClienteNome   string `json:"clienteNome"`
	Documento     string `json:"documento"`
	ValorPago     int64  `json:"valorPago"`
	Desconto      int64  `json:"desconto"`
	DataPagamento string `json:"dataPagamento"`
}
