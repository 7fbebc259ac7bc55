package service

import (
	"context"
	"errors"
	"time"

	"parcelas/internal/config"
	"parcelas/internal/dto"
	"parcelas/internal/middleware"
	"parcelas/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	AlterarSenha(ctx context.Context, req dto.AlterarSenhaRequest) error
}

type authService struct {
	repo repository.ClienteRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.ClienteRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

// Login checks CPF + senha and issues a bearer token for the fixed session
// window. The front-end drops its copy on the same timer.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	cliente, err := s.repo.FindByCPF(ctx, req.CPF)
	if err != nil {
		return nil, errors.New("Credenciais invalidas")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cliente.SenhaHash), []byte(req.Senha)); err != nil {
		return nil, errors.New("Credenciais invalidas")
	}

	ttl := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	now := time.Now()
	claims := &middleware.JWTClaims{
		ClienteID: cliente.ID.String(),
		CPF:       cliente.CPF,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:          token,
		TokenType:      "bearer",
		ExpiresIn:      s.cfg.JWTExpirationHours * 3600,
		PrimeiroAcesso: cliente.PrimeiroAcesso,
	}, nil
}

// AlterarSenha swaps the password after checking the current one and clears
// the first-access flag.
func (s *authService) AlterarSenha(ctx context.Context, req dto.AlterarSenhaRequest) error {
	cliente, err := s.repo.FindByCPF(ctx, req.CPF)
	if err != nil {
		return errors.New("Credenciais invalidas")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cliente.SenhaHash), []byte(req.SenhaAtual)); err != nil {
		return errors.New("Credenciais invalidas")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NovaSenha), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	cliente.SenhaHash = string(hash)
	cliente.PrimeiroAcesso = false
	return s.repo.Update(ctx, cliente)
}
