package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"parcelas/internal/config"
	"parcelas/internal/dto"
	"parcelas/internal/middleware"
	"parcelas/internal/model"
	"parcelas/internal/repository"
	"parcelas/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// stubAuthRepo keys clientes by CPF, the way Login looks them up.
type stubAuthRepo struct {
	porCPF map[string]*model.Cliente
}

func (r *stubAuthRepo) Create(_ context.Context, _ *model.Cliente) error { return nil }
func (r *stubAuthRepo) FindByID(_ context.Context, _ uuid.UUID) (*model.Cliente, error) {
	return nil, errors.New("not found")
}
func (r *stubAuthRepo) FindByCPF(_ context.Context, cpf string) (*model.Cliente, error) {
	c, ok := r.porCPF[cpf]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *c
	return &cp, nil
}
func (r *stubAuthRepo) List(_ context.Context) ([]model.Cliente, error) { return nil, nil }
func (r *stubAuthRepo) Update(_ context.Context, c *model.Cliente) error {
	r.porCPF[c.CPF] = c
	return nil
}
func (r *stubAuthRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }
func (r *stubAuthRepo) DB() *gorm.DB                                { return nil }

var _ repository.ClienteRepository = (*stubAuthRepo)(nil)

func newAuthFixture(t *testing.T, senha string) (service.AuthService, *stubAuthRepo, *config.Config) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &stubAuthRepo{porCPF: map[string]*model.Cliente{
		"00000000000": {
			ID:             uuid.New(),
			Nome:           "Cliente Demo",
			CPF:            "00000000000",
			SenhaHash:      string(hash),
			PrimeiroAcesso: true,
		},
	}}
	cfg := &config.Config{JWTSecret: "segredo-de-teste", JWTExpirationHours: 1}
	return service.NewAuthService(repo, cfg), repo, cfg
}

func TestLoginEmiteTokenDeUmaHora(t *testing.T) {
	svc, repo, cfg := newAuthFixture(t, "1234")

	resp, err := svc.Login(context.Background(), dto.LoginRequest{CPF: "00000000000", Senha: "1234"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.True(t, resp.PrimeiroAcesso)

	claims := &middleware.JWTClaims{}
	token, err := jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	assert.Equal(t, repo.porCPF["00000000000"].ID.String(), claims.ClienteID)
	assert.Equal(t, "00000000000", claims.CPF)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestLoginSenhaErrada(t *testing.T) {
	svc, _, _ := newAuthFixture(t, "1234")

	_, err := svc.Login(context.Background(), dto.LoginRequest{CPF: "00000000000", Senha: "errada"})
	assert.EqualError(t, err, "Credenciais invalidas")
}

func TestLoginCPFDesconhecido(t *testing.T) {
	svc, _, _ := newAuthFixture(t, "1234")

	_, err := svc.Login(context.Background(), dto.LoginRequest{CPF: "99999999999", Senha: "1234"})
	assert.EqualError(t, err, "Credenciais invalidas")
}

func TestAlterarSenhaLimpaPrimeiroAcesso(t *testing.T) {
	svc, repo, _ := newAuthFixture(t, "1234")

	err := svc.AlterarSenha(context.Background(), dto.AlterarSenhaRequest{
		CPF: "00000000000", SenhaAtual: "1234", NovaSenha: "senha-nova-123",
	})
	require.NoError(t, err)

	cliente := repo.porCPF["00000000000"]
	assert.False(t, cliente.PrimeiroAcesso)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(cliente.SenhaHash), []byte("senha-nova-123")))

	// and the new password logs in
	_, err = svc.Login(context.Background(), dto.LoginRequest{CPF: "00000000000", Senha: "senha-nova-123"})
	assert.NoError(t, err)
}

func TestAlterarSenhaAtualErrada(t *testing.T) {
	svc, _, _ := newAuthFixture(t, "1234")

	err := svc.AlterarSenha(context.Background(), dto.AlterarSenhaRequest{
		CPF: "00000000000", SenhaAtual: "errada", NovaSenha: "senha-nova-123",
	})
	assert.EqualError(t, err, "Credenciais invalidas")
}
