package service

import (
	"context"
	"errors"

	"parcelas/internal/dto"
	"parcelas/internal/model"
	"parcelas/internal/repository"

	"github.com/google/uuid"
)

type EmitenteService interface {
	Criar(ctx context.Context, req dto.CriarEmitenteRequest) (*dto.EmitenteResponse, error)
	Buscar(ctx context.Context, id uuid.UUID) (*dto.EmitenteResponse, error)
	Listar(ctx context.Context) ([]dto.EmitenteResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarEmitenteRequest) (*dto.EmitenteResponse, error)
	Excluir(ctx context.Context, id uuid.UUID) error
}

type emitenteService struct {
	repo repository.EmitenteRepository
}

func NewEmitenteService(repo repository.EmitenteRepository) EmitenteService {
	return &emitenteService{repo: repo}
}

func (s *emitenteService) Criar(ctx context.Context, req dto.CriarEmitenteRequest) (*dto.EmitenteResponse, error) {
	e := &model.Emitente{
		Nome:     req.EmitenteNome,
		CPF:      req.EmitenteCPF,
		Endereco: req.EmitenteEndereco,
		Telefone: req.EmitenteTelefone,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return emitenteToResponse(e), nil
}

func (s *emitenteService) Buscar(ctx context.Context, id uuid.UUID) (*dto.EmitenteResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("Emitente nao encontrado")
	}
	return emitenteToResponse(e), nil
}

func (s *emitenteService) Listar(ctx context.Context) ([]dto.EmitenteResponse, error) {
	emitentes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmitenteResponse, 0, len(emitentes))
	for i := range emitentes {
		out = append(out, *emitenteToResponse(&emitentes[i]))
	}
	return out, nil
}

func (s *emitenteService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarEmitenteRequest) (*dto.EmitenteResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("Emitente nao encontrado")
	}

	if req.EmitenteNome != "" {
		e.Nome = req.EmitenteNome
	}
	if req.EmitenteCPF != "" {
		e.CPF = req.EmitenteCPF
	}
	if req.EmitenteEndereco != nil {
		e.Endereco = req.EmitenteEndereco
	}
	if req.EmitenteTelefone != nil {
		e.Telefone = req.EmitenteTelefone
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return emitenteToResponse(e), nil
}

func (s *emitenteService) Excluir(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("Emitente nao encontrado")
	}
	return s.repo.Delete(ctx, id)
}

func emitenteToResponse(e *model.Emitente) *dto.EmitenteResponse {
	return &dto.EmitenteResponse{
		EmitenteID:       e.ID.String(),
		EmitenteNome:     e.Nome,
		EmitenteCPF:      e.CPF,
		EmitenteEndereco: e.Endereco,
		EmitenteTelefone: e.Telefone,
	}
}
