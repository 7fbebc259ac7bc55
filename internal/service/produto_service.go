package service

import (
	"context"
	"errors"

	"parcelas/internal/dto"
	"parcelas/internal/model"
	"parcelas/internal/repository"

	"github.com/google/uuid"
)

type ProdutoService interface {
	Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error)
	Buscar(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error)
	Listar(ctx context.Context) ([]dto.ProdutoResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error)
	Excluir(ctx context.Context, id uuid.UUID) error
}

type produtoService struct {
	repo repository.ProdutoRepository
}

func NewProdutoService(repo repository.ProdutoRepository) ProdutoService {
	return &produtoService{repo: repo}
}

func (s *produtoService) Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error) {
	p := &model.Produto{
		Nome:       req.ProdutoNome,
		Descricao:  req.ProdutoDescricao,
		ValorTotal: req.ProdutoValorTotal,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return produtoToResponse(p), nil
}

func (s *produtoService) Buscar(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("Produto nao encontrado")
	}
	return produtoToResponse(p), nil
}

func (s *produtoService) Listar(ctx context.Context) ([]dto.ProdutoResponse, error) {
	produtos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProdutoResponse, 0, len(produtos))
	for i := range produtos {
		out = append(out, *produtoToResponse(&produtos[i]))
	}
	return out, nil
}

func (s *produtoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("Produto nao encontrado")
	}

	if req.ProdutoNome != "" {
		p.Nome = req.ProdutoNome
	}
	if req.ProdutoValorTotal > 0 {
		p.ValorTotal = req.ProdutoValorTotal
	}
	if req.ProdutoDescricao != nil {
		p.Descricao = req.ProdutoDescricao
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return produtoToResponse(p), nil
}

func (s *produtoService) Excluir(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("Produto nao encontrado")
	}
	return s.repo.Delete(ctx, id)
}

func produtoToResponse(p *model.Produto) *dto.ProdutoResponse {
	return &dto.ProdutoResponse{
		ProdutoID:         p.ID.String(),
		ProdutoNome:       p.Nome,
		ProdutoValorTotal: p.ValorTotal,
		ProdutoDescricao:  p.Descricao,
	}
}
