package service

import (
	"context"
	"errors"

	"parcelas/internal/dto"
	"parcelas/internal/model"
	"parcelas/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type ClienteService interface {
	Criar(ctx context.Context, req dto.CriarClienteRequest) (*dto.ClienteResponse, error)
	Buscar(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	BuscarPorNome(ctx context.Context, nome string) ([]dto.ClienteResponse, error)
	Listar(ctx context.Context) ([]dto.ClienteResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarClienteRequest) (*dto.ClienteResponse, error)
	Excluir(ctx context.Context, id uuid.UUID) error
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func (s *clienteService) Criar(ctx context.Context, req dto.CriarClienteRequest) (*dto.ClienteResponse, error) {
	if _, err := s.repo.FindByCPF(ctx, req.ClienteCPF); err == nil {
		return nil, errors.New("CPF ja cadastrado")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	c := &model.Cliente{
		Nome:           req.ClienteNome,
		CPF:            req.ClienteCPF,
		Endereco:       req.ClienteEndereco,
		Telefone:       req.ClienteTelefone,
		SenhaHash:      string(hash),
		PrimeiroAcesso: true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Buscar(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("Cliente nao encontrado")
	}
	return clienteToResponse(c), nil
}

// BuscarPorNome does a case-insensitive substring search, matching the
// autocomplete used when a plan is being created.
func (s *clienteService) BuscarPorNome(ctx context.Context, nome string) ([]dto.ClienteResponse, error) {
	var clientes []model.Cliente
	err := s.repo.DB().WithContext(ctx).
		Where("nome ILIKE ?", "%"+nome+"%").
		Order("nome ASC").
		Find(&clientes).Error
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		out = append(out, *clienteToResponse(&clientes[i]))
	}
	return out, nil
}

func (s *clienteService) Listar(ctx context.Context) ([]dto.ClienteResponse, error) {
	clientes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		out = append(out, *clienteToResponse(&clientes[i]))
	}
	return out, nil
}

func (s *clienteService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarClienteRequest) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("Cliente nao encontrado")
	}

	if req.ClienteNome != "" {
		c.Nome = req.ClienteNome
	}
	if req.ClienteCPF != "" {
		c.CPF = req.ClienteCPF
	}
	if req.ClienteEndereco != nil {
		c.Endereco = req.ClienteEndereco
	}
	if req.ClienteTelefone != nil {
		c.Telefone = req.ClienteTelefone
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Excluir(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("Cliente nao encontrado")
	}
	return s.repo.Delete(ctx, id)
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ClienteID:       c.ID.String(),
		ClienteNome:     c.Nome,
		ClienteCPF:      c.CPF,
		ClienteEndereco: c.Endereco,
		ClienteTelefone: c.Telefone,
		PrimeiroAcesso:  c.PrimeiroAcesso,
	}
}
