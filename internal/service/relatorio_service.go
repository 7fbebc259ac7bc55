package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"parcelas/internal/config"
	"parcelas/internal/dto"
	"parcelas/internal/format"
	"parcelas/internal/infra"
	"parcelas/internal/repository"

	"github.com/redis/go-redis/v9"
)

const (
	tiposCacheKey = "relatorios:tipos"
	tiposCacheTTL = 5 * time.Minute
)

// tipoDescricoes drives the report catalogue; the counts come fresh from the
// database (through a short cache).
var tipoDescricoes = []struct{ tipo, descricao string }{
	{"todas", "Todas as parcelas"},
	{"pagas", "Parcelas pagas"},
	{"pendentes", "Parcelas pendentes"},
	{"atrasadas", "Parcelas atrasadas"},
}

type RelatorioService interface {
	ListarTipos(ctx context.Context) ([]dto.TipoRelatorio, error)
	// GerarPDF streams the report straight to w; nothing touches disk.
	GerarPDF(ctx context.Context, w io.Writer, req dto.RelatorioRequest) error
}

type relatorioService struct {
	parcelas repository.ParcelaRepository
	rdb      *redis.Client
	cfg      *config.Config
}

func NewRelatorioService(parcelas repository.ParcelaRepository, rdb *redis.Client, cfg *config.Config) RelatorioService {
	return &relatorioService{parcelas: parcelas, rdb: rdb, cfg: cfg}
}

func (s *relatorioService) ListarTipos(ctx context.Context) ([]dto.TipoRelatorio, error) {
	// Cache-aside: counts change on every payment, 5 minutes of staleness is fine
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, tiposCacheKey).Bytes(); err == nil {
			var tipos []dto.TipoRelatorio
			if jsonErr := json.Unmarshal(cached, &tipos); jsonErr == nil {
				return tipos, nil
			}
		}
	}

	tipos := make([]dto.TipoRelatorio, 0, len(tipoDescricoes))
	for _, t := range tipoDescricoes {
		total, err := s.parcelas.CountByStatus(ctx, t.tipo)
		if err != nil {
			return nil, err
		}
		tipos = append(tipos, dto.TipoRelatorio{Tipo: t.tipo, Descricao: t.descricao, Quantidade: total})
	}

	if s.rdb != nil {
		if b, err := json.Marshal(tipos); err == nil {
			_ = s.rdb.Set(context.Background(), tiposCacheKey, b, tiposCacheTTL).Err()
		}
	}
	return tipos, nil
}

func (s *relatorioService) GerarPDF(ctx context.Context, w io.Writer, req dto.RelatorioRequest) error {
	inicio, err := format.ParseDataISO(req.DataInicio)
	if err != nil {
		return errors.New("dataInicio invalida")
	}
	fim, err := format.ParseDataISO(req.DataFim)
	if err != nil {
		return errors.New("dataFim invalida")
	}
	if fim.Before(inicio) {
		return errors.New("dataFim anterior a dataInicio")
	}

	parcelas, err := s.parcelas.ListPeriodo(ctx, req.TipoRelatorio, req.ClienteID, req.DataInicio, req.DataFim)
	if err != nil {
		return err
	}

	descricao := req.TipoRelatorio
	for _, t := range tipoDescricoes {
		if t.tipo == req.TipoRelatorio {
			descricao = t.descricao
		}
	}
	titulo := fmt.Sprintf("%s — %s a %s", descricao,
		format.FormatarData(inicio), format.FormatarData(fim))

	return infra.WriteRelatorioPDF(w, titulo, s.cfg.NomeEmpresa, parcelas)
}
