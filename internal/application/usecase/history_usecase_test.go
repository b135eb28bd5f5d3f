package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// fakeHistoryRepo devuelve entradas prefijadas y registra los parámetros de
// paginación y rango de fechas recibidos.
type fakeHistoryRepo struct {
	entries []*entity.History

	gotLimit  int
	gotOffset int
	gotFrom   *time.Time
	gotTo     *time.Time
}

var _ repository.HistoryRepository = (*fakeHistoryRepo)(nil)

func (r *fakeHistoryRepo) Create(e *entity.History) error { return nil }

func (r *fakeHistoryRepo) GetByID(id string) (*entity.History, error) {
	for _, e := range r.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeHistoryRepo) Delete(id string) error { return domain.ErrNotFound }

func (r *fakeHistoryRepo) ListByProduct(productID string, limit, offset int) ([]*entity.History, error) {
	r.gotLimit, r.gotOffset = limit, offset
	var out []*entity.History
	for _, e := range r.entries {
		if e.ProductID != nil && *e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeHistoryRepo) List(from, to *time.Time, limit, offset int) ([]*entity.History, error) {
	r.gotFrom, r.gotTo = from, to
	r.gotLimit, r.gotOffset = limit, offset
	if len(r.entries) > limit {
		return r.entries[:limit], nil
	}
	return r.entries, nil
}

func (r *fakeHistoryRepo) Count(from, to *time.Time) (int, error) {
	return len(r.entries), nil
}

func (r *fakeHistoryRepo) DetachProduct(productID string) error { return nil }

// fakeReportGen registra las entradas recibidas y devuelve un PDF dummy.
type fakeReportGen struct {
	gotEntries []*entity.History
}

var _ usecase.HistoryReportGenerator = (*fakeReportGen)(nil)

func (g *fakeReportGen) GenerateHistoryReport(ctx context.Context, entries []*entity.History, from, to *time.Time) ([]byte, error) {
	g.gotEntries = entries
	return []byte("%PDF-1.7 dummy"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// List: paginación y total de páginas
// ──────────────────────────────────────────────────────────────────────────────

func TestHistoryList_CalculaTotalPages(t *testing.T) {
	repo := &fakeHistoryRepo{}
	now := time.Now()
	for i := 0; i < 45; i++ {
		repo.entries = append(repo.entries, seedEntry(string(rune('a'+i)), now))
	}
	uc := usecase.NewHistoryUseCase(repo, &fakeReportGen{})

	out, err := uc.List(nil, nil, dto.PageRequest{Limit: 20})
	require.NoError(t, err)

	assert.Equal(t, 45, out.Total)
	assert.Equal(t, 3, out.TotalPages, "45 entradas con límite 20 son 3 páginas")
	assert.Equal(t, 20, out.Page.Limit)
	assert.Len(t, out.History, 20)
}

func TestHistoryList_AplicaDefaultsDePagina(t *testing.T) {
	repo := &fakeHistoryRepo{}
	uc := usecase.NewHistoryUseCase(repo, &fakeReportGen{})

	out, err := uc.List(nil, nil, dto.PageRequest{})
	require.NoError(t, err)

	assert.Equal(t, 20, repo.gotLimit, "sin límite explícito se usa el default")
	assert.Equal(t, 0, out.Total)
	assert.Equal(t, 0, out.TotalPages)
}

func TestHistoryList_PropagaRangoDeFechas(t *testing.T) {
	repo := &fakeHistoryRepo{}
	uc := usecase.NewHistoryUseCase(repo, &fakeReportGen{})

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC)
	_, err := uc.List(&from, &to, dto.PageRequest{})
	require.NoError(t, err)

	require.NotNil(t, repo.gotFrom)
	require.NotNil(t, repo.gotTo)
	assert.Equal(t, from, *repo.gotFrom)
	assert.Equal(t, to, *repo.gotTo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Report
// ──────────────────────────────────────────────────────────────────────────────

func TestHistoryReport_GeneraPDFConLasEntradas(t *testing.T) {
	repo := &fakeHistoryRepo{}
	now := time.Now()
	repo.entries = append(repo.entries, seedEntry("e1", now), seedEntry("e2", now))
	gen := &fakeReportGen{}
	uc := usecase.NewHistoryUseCase(repo, gen)

	pdf, err := uc.Report(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, pdf)
	assert.Len(t, gen.gotEntries, 2, "el generador debe recibir todas las entradas del rango")
}
