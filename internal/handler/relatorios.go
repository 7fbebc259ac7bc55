package handler

import (
	"bytes"
	"net/http"

	"parcelas/internal/apierror"
	"parcelas/internal/dto"
	"parcelas/internal/service"

	"github.com/gin-gonic/gin"
)

type RelatoriosHandler struct{ svc service.RelatorioService }

func NewRelatoriosHandler(svc service.RelatorioService) *RelatoriosHandler {
	return &RelatoriosHandler{svc: svc}
}

// ListarTipos godoc
// @Summary Catalogo de tipos de relatorio com contagens
// @Tags relatorios
// @Produce json
// @Success 200 {array} dto.TipoRelatorio
// @Router /relatorios/lista [get]
func (h *RelatoriosHandler) ListarTipos(c *gin.Context) {
	resp, err := h.svc.ListarTipos(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao montar catalogo de relatorios"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GerarParcelas godoc
// @Summary Gera o PDF de parcelas do periodo
// @Tags relatorios
// @Accept json
// @Produce application/pdf
// @Param body body dto.RelatorioRequest true "Filtro"
// @Success 200 {file} binary
// @Failure 400 {object} apierror.APIError
// @Router /relatorios/parcelas [post]
func (h *RelatoriosHandler) GerarParcelas(c *gin.Context) {
	var req dto.RelatorioRequest
	if !bindAndValidate(c, &req) {
		return
	}

	// Render into memory first so a generation failure still yields a clean
	// JSON error instead of a truncated download.
	var buf bytes.Buffer
	if err := h.svc.GerarPDF(c.Request.Context(), &buf, req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="relatorio_parcelas.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
