package handler

import (
	"net/http"

	"parcelas/internal/apierror"
	"parcelas/internal/dto"
	"parcelas/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login godoc
// @Summary Login por CPF e senha
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciais"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AlterarSenha godoc
// @Summary Troca a senha do cliente autenticado
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.AlterarSenhaRequest true "Senhas"
// @Success 200 {object} dto.MensagemResponse
// @Failure 401 {object} apierror.APIError
// @Router /alterar-senha [put]
func (h *AuthHandler) AlterarSenha(c *gin.Context) {
	var req dto.AlterarSenhaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.AlterarSenha(c.Request.Context(), req); err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.MensagemResponse{Mensagem: "Senha alterada com sucesso"})
}
