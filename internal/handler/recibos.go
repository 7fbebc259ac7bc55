package handler

import (
	"net/http"
	"path/filepath"

	"parcelas/internal/apierror"
	"parcelas/internal/dto"
	"parcelas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RecibosHandler struct{ svc service.ReciboService }

func NewRecibosHandler(svc service.ReciboService) *RecibosHandler {
	return &RecibosHandler{svc: svc}
}

func (h *RecibosHandler) Criar(c *gin.Context) {
	var req dto.CriarReciboRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RecibosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar recibos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecibosHandler) Excluir(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Excluir(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// BaixarPDF godoc
// @Summary Baixa o PDF do recibo
// @Tags recibos
// @Produce application/pdf
// @Param id path string true "ID do recibo"
// @Success 200 {file} binary
// @Failure 404 {object} apierror.APIError
// @Router /recibos/{id}/pdf [get]
func (h *RecibosHandler) BaixarPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	path, fileName, err := h.svc.ObterPDF(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	if fileName == "" {
		fileName = filepath.Base(path)
	}
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Header("Content-Type", "application/pdf")
	c.File(path)
}

func (h *RecibosHandler) Enviar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.EnviarReciboRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.EnviarEmail(c.Request.Context(), id, req.Email); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusAccepted, dto.MensagemResponse{Mensagem: "Recibo enviado para " + req.Email})
}
