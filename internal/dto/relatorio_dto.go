package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// RelatorioRequest selects the parcelas included in a PDF report.
// ClienteID empty means all clients.
type RelatorioRequest struct {
	TipoRelatorio string `json:"tipoRelatorio" validate:"required,oneof=todas pagas pendentes atrasadas"`
	ClienteID     string `json:"clienteId"     validate:"omitempty,uuid"`
	DataInicio    string `json:"dataInicio"    validate:"required"`
	DataFim       string `json:"dataFim"       validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// TipoRelatorio is one entry of GET /api/relatorios/lista: the report type
// plus how many parcelas it currently matches.
type TipoRelatorio struct {
	Tipo       string `json:"tipo"`
	Descricao  string `json:"descricao"`
	Quantidade int64  `json:"quantidade"`
}
