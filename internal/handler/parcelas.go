package handler

import (
	"net/http"

	"parcelas/internal/apierror"
	"parcelas/internal/dto"
	"parcelas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ParcelasHandler struct{ svc service.ParcelaService }

func NewParcelasHandler(svc service.ParcelaService) *ParcelasHandler {
	return &ParcelasHandler{svc: svc}
}

// Criar godoc
// @Summary Cria um plano de parcelas
// @Tags parcelas
// @Accept json
// @Produce json
// @Param body body dto.CriarParcelaRequest true "Plano"
// @Success 201 {object} dto.CriarParcelaResponse
// @Failure 400 {object} apierror.APIError
// @Router /parcelas [post]
func (h *ParcelasHandler) Criar(c *gin.Context) {
	var req dto.CriarParcelaRequest
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

func (h *ParcelasHandler) Listar(c *gin.Context) {
	var filter dto.ParcelaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Filtro invalido"))
		return
	}
	parcelas, total, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar parcelas"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"parcelas": parcelas, "total": total})
}

func (h *ParcelasHandler) Buscar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Buscar(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ParcelasHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AtualizarParcelaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Pagar godoc
// @Summary Registra um pagamento
// @Description Pagamento integral liquida a parcela; pagamento parcial exige
// @Description uma escolha subsequente (desconto ou novas parcelas).
// @Tags parcelas
// @Accept json
// @Produce json
// @Param id path string true "ID da parcela"
// @Param body body dto.PagarParcelaRequest true "Pagamento"
// @Success 200 {object} dto.PagarParcelaResponse
// @Failure 400 {object} apierror.APIError
// @Router /parcelas/{id}/pagar [patch]
func (h *ParcelasHandler) Pagar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.PagarParcelaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Pagar(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ParcelasHandler) Escolha(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.EscolhaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ResolverEscolha(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Desfazer reverses every payment effect on the installment. It backs both
// the explicit estorno action and the dismissal of a pending choice.
func (h *ParcelasHandler) Desfazer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Estornar(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ParcelasHandler) Renegociar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.RenegociarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Renegociar(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ParcelasHandler) Excluir(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Excluir(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
