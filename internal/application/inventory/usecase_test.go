package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memStore emula la BD: un mapa de productos y otro de entradas del libro.
// memTxRunner serializa las transacciones con un mutex (equivalente al bloqueo
// de fila de SELECT FOR UPDATE) y restaura un snapshot del estado si la función
// retorna error (equivalente al Rollback).
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu       sync.Mutex
	products map[string]*entity.Product
	entries  map[string]*entity.History
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[string]*entity.Product),
		entries:  make(map[string]*entity.History),
	}
}

func (s *memStore) snapshot() (map[string]*entity.Product, map[string]*entity.History) {
	products := make(map[string]*entity.Product, len(s.products))
	for id, p := range s.products {
		cp := *p
		products[id] = &cp
	}
	entries := make(map[string]*entity.History, len(s.entries))
	for id, e := range s.entries {
		cp := *e
		entries[id] = &cp
	}
	return products, entries
}

type memProductRepo struct{ store *memStore }

var _ repository.ProductRepository = (*memProductRepo)(nil)

func (r *memProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.store.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetByCode(code string) (*entity.Product, error) {
	for _, p := range r.store.products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

// GetForUpdate: en memoria no hay filas que bloquear; la exclusión la da el
// mutex del memTxRunner.
func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) Update(p *entity.Product) error {
	if _, ok := r.store.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.store.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) UpdateStock(id string, stock int64) error {
	p, ok := r.store.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	p.UpdatedAt = time.Now()
	return nil
}

func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProductRepo) Search(query string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *memProductRepo) Delete(id string) error {
	if _, ok := r.store.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.products, id)
	return nil
}

type memHistoryRepo struct{ store *memStore }

var _ repository.HistoryRepository = (*memHistoryRepo)(nil)

func (r *memHistoryRepo) Create(e *entity.History) error {
	cp := *e
	r.store.entries[e.ID] = &cp
	return nil
}

func (r *memHistoryRepo) GetByID(id string) (*entity.History, error) {
	e, ok := r.store.entries[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *memHistoryRepo) Delete(id string) error {
	if _, ok := r.store.entries[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.entries, id)
	return nil
}

func (r *memHistoryRepo) ListByProduct(productID string, limit, offset int) ([]*entity.History, error) {
	var out []*entity.History
	for _, e := range r.store.entries {
		if e.ProductID != nil && *e.ProductID == productID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memHistoryRepo) List(from, to *time.Time, limit, offset int) ([]*entity.History, error) {
	var out []*entity.History
	for _, e := range r.store.entries {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memHistoryRepo) Count(from, to *time.Time) (int, error) {
	return len(r.store.entries), nil
}

func (r *memHistoryRepo) DetachProduct(productID string) error {
	for _, e := range r.store.entries {
		if e.ProductID != nil && *e.ProductID == productID {
			e.ProductID = nil
			e.ProductCode = ""
		}
	}
	return nil
}

type memTxRunner struct{ store *memStore }

var _ inventory.TxRunner = (*memTxRunner)(nil)

func (tr *memTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	historyRepo repository.HistoryRepository,
) error) error {
	tr.store.mu.Lock()
	defer tr.store.mu.Unlock()

	// Snapshot para restaurar en caso de error (Rollback)
	products, entries := tr.store.snapshot()

	err := fn(&memProductRepo{store: tr.store}, &memHistoryRepo{store: tr.store})
	if err != nil {
		tr.store.products = products
		tr.store.entries = entries
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const testUserID = "00000000-0000-0000-0000-000000000001"

func newEngine() (*inventory.MovementUseCase, *memStore) {
	store := newMemStore()
	return inventory.NewMovementUseCase(&memTxRunner{store: store}), store
}

func seedProduct(store *memStore, stock int64) *entity.Product {
	p := &entity.Product{
		ID:        uuid.New().String(),
		Code:      "CAM-001",
		Name:      "Camiseta básica",
		Available: true,
		Stock:     stock,
		Category:  "ropa",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	store.products[p.ID] = p
	return p
}

func apply(t *testing.T, uc *inventory.MovementUseCase, productID, typ string, qty int64) (*entity.Product, *entity.History) {
	t.Helper()
	p, e, err := uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: productID,
		UserID:    testUserID,
		Type:      typ,
		Quantity:  qty,
	})
	require.NoError(t, err)
	return p, e
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_EntradaIncrementaStock(t *testing.T) {
	uc, store := newEngine()
	p := seedProduct(store, 10)

	updated, entry := apply(t, uc, p.ID, entity.MovementTypeIn, 5)

	assert.Equal(t, int64(15), updated.Stock, "una entrada de 5 sobre stock 10 debe dejar 15")
	require.NotNil(t, entry.ProductID)
	assert.Equal(t, p.ID, *entry.ProductID)
	assert.Equal(t, p.Code, entry.ProductCode, "la entrada debe llevar snapshot del código")
	assert.Equal(t, entity.MovementTypeIn, entry.Type)
	assert.Equal(t, int64(5), entry.Quantity)
	assert.Equal(t, int64(15), entry.ResultingStock,
		"resulting_stock debe ser el stock inmediatamente después del movimiento")
	assert.Equal(t, int64(15), store.products[p.ID].Stock, "el stock persistido debe coincidir")
}

func TestApplyMovement_SalidaDecrementaStock(t *testing.T) {
	uc, store := newEngine()
	p := seedProduct(store, 10)

	updated, entry := apply(t, uc, p.ID, entity.MovementTypeOut, 4)

	assert.Equal(t, int64(6), updated.Stock)
	assert.Equal(t, int64(6), entry.ResultingStock)
	assert.Equal(t, entity.MovementTypeOut, entry.Type)
}

func TestApplyMovement_SalidaInsuficiente_RechazadaSinEfectos(t *testing.T) {
	uc, store := newEngine()
	p := seedProduct(store, 3)

	_, _, err := uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: p.ID,
		UserID:    testUserID,
		Type:      entity.MovementTypeOut,
		Quantity:  4,
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"una salida mayor al stock debe rechazarse con ErrInsufficientStock")
	assert.Equal(t, int64(3), store.products[p.ID].Stock, "el stock no debe cambiar")
	assert.Empty(t, store.entries, "no debe quedar entrada en el libro")
}

func TestApplyMovement_SalidaExacta_DejaCero(t *testing.T) {
	uc, store := newEngine()
	p := seedProduct(store, 4)

	updated, entry := apply(t, uc, p.ID, entity.MovementTypeOut, 4)

	assert.Equal(t, int64(0), updated.Stock, "vaciar el stock exacto es válido")
	assert.Equal(t, int64(0), entry.ResultingStock)
}

func TestApplyMovement_ProductoInexistente_NotFound(t *testing.T) {
	uc, store := newEngine()

	_, _, err := uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: uuid.New().String(),
		UserID:    testUserID,
		Type:      entity.MovementTypeIn,
		Quantity:  1,
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.entries)
}

func TestApplyMovement_InputInvalido(t *testing.T) {
	uc, store := newEngine()
	p := seedProduct(store, 10)

	cases := []struct {
		name  string
		input inventory.MovementInput
	}{
		{"sin product_id", inventory.MovementInput{UserID: testUserID, Type: "in", Quantity: 1}},
		{"sin user_id", inventory.MovementInput{ProductID: p.ID, Type: "in", Quantity: 1}},
		{"tipo desconocido", inventory.MovementInput{ProductID: p.ID, UserID: testUserID, Type: "ajuste", Quantity: 1}},
		{"cantidad cero", inventory.MovementInput{ProductID: p.ID, UserID: testUserID, Type: "in", Quantity: 0}},
		{"cantidad negativa", inventory.MovementInput{ProductID: p.ID, UserID: testUserID, Type: "out", Quantity: -3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := uc.ApplyMovement(context.Background(), tc.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Equal(t, int64(10), store.products[p.ID].Stock, "ningún input inválido debe tocar el stock")
	assert.Empty(t, store.entries)
}

// N movimientos concurrentes de entrada (1 unidad) sobre stock 0 deben dejar
// exactamente N, sin actualizaciones perdidas, y N entradas en el libro.
func TestApplyMovement_ConcurrenciaSinPerdidas(t *testing.T) {
	uc, store := newEngine()
	p := seedProduct(store, 0)

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, _, err := uc.ApplyMovement(context.Background(), inventory.MovementInput{
				ProductID: p.ID,
				UserID:    testUserID,
				Type:      entity.MovementTypeIn,
				Quantity:  1,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(n), store.products[p.ID].Stock,
		"n entradas concurrentes de 1 unidad deben dejar stock n")
	assert.Len(t, store.entries, n, "debe haber una entrada en el libro por movimiento")
}

// Bajo concurrencia de salidas sobre stock limitado, las que exceden el stock
// se rechazan y el stock confirmado nunca queda negativo.
func TestApplyMovement_SalidasConcurrentes_NuncaNegativo(t *testing.T) {
	uc, store := newEngine()
	p := seedProduct(store, 10)

	const n = 25
	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, _, err := uc.ApplyMovement(context.Background(), inventory.MovementInput{
				ProductID: p.ID,
				UserID:    testUserID,
				Type:      entity.MovementTypeOut,
				Quantity:  1,
			})
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok, "solo deben confirmarse tantas salidas como stock había")
	assert.Equal(t, int64(0), store.products[p.ID].Stock)
	assert.Len(t, store.entries, 10)
}

// ──────────────────────────────────────────────────────────────────────────────
// ReverseMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestReverseMovement_DeshaceSalida(t *testing.T) {
	uc, store := newEngine()
	p := seedProduct(store, 10)

	_, salida := apply(t, uc, p.ID, entity.MovementTypeOut, 4) // stock 6
	apply(t, uc, p.ID, entity.MovementTypeIn, 2)               // stock 8

	// Revertir la salida de 4 suma sobre el stock ACTUAL (8), no sobre el
	// stock al momento del movimiento original.
	updated, err := uc.ReverseMovement(context.Background(), salida.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(12), updated.Stock,
		"revertir out(4) con stock actual 8 debe dejar 12")
	assert.Equal(t, int64(12), store.products[p.ID].Stock)
	_, exists := store.entries[salida.ID]
	assert.False(t, exists, "la entrada revertida debe eliminarse del libro")
	assert.Len(t, store.entries, 1, "la otra entrada debe sobrevivir")
}

func TestReverseMovement_DeshaceEntrada(t *testing.T) {
	uc, store := newEngine()
	p := seedProduct(store, 3)

	_, entrada := apply(t, uc, p.ID, entity.MovementTypeIn, 5) // stock 8

	updated, err := uc.ReverseMovement(context.Background(), entrada.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(3), updated.Stock, "revertir in(5) debe restar 5")
	assert.Empty(t, store.entries)
}

func TestReverseMovement_EntradaDejaNegativo_Rechazada(t *testing.T) {
	uc, store := newEngine()
	p := seedProduct(store, 0)

	_, entrada := apply(t, uc, p.ID, entity.MovementTypeIn, 5) // stock 5
	apply(t, uc, p.ID, entity.MovementTypeOut, 3)              // stock 2

	// Revertir la entrada de 5 dejaría 2 - 5 = -3: se rechaza sin efectos.
	_, err := uc.ReverseMovement(context.Background(), entrada.ID)

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(2), store.products[p.ID].Stock, "el stock no debe cambiar")
	_, exists := store.entries[entrada.ID]
	assert.True(t, exists, "la entrada no debe eliminarse si la reversa se rechaza")
}

func TestReverseMovement_EntradaHuerfana_EliminaYNotFound(t *testing.T) {
	uc, store := newEngine()
	p := seedProduct(store, 10)

	_, entrada := apply(t, uc, p.ID, entity.MovementTypeIn, 5)

	require.NoError(t, uc.DeleteProduct(context.Background(), p.ID))

	// La entrada quedó huérfana: la reversa la elimina de todos modos (no hay
	// stock que compensar) y reporta NotFound al caller.
	product, err := uc.ReverseMovement(context.Background(), entrada.ID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, product)
	_, exists := store.entries[entrada.ID]
	assert.False(t, exists, "la entrada huérfana debe eliminarse aunque se reporte NotFound")
}

func TestReverseMovement_EntradaInexistente_NotFound(t *testing.T) {
	uc, _ := newEngine()

	_, err := uc.ReverseMovement(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReverseMovement_IDVacio_InputInvalido(t *testing.T) {
	uc, _ := newEngine()

	_, err := uc.ReverseMovement(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// DeleteProduct
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteProduct_HistorialSobreviveHuerfano(t *testing.T) {
	uc, store := newEngine()
	p := seedProduct(store, 10)

	_, e1 := apply(t, uc, p.ID, entity.MovementTypeOut, 3)
	_, e2 := apply(t, uc, p.ID, entity.MovementTypeIn, 1)

	require.NoError(t, uc.DeleteProduct(context.Background(), p.ID))

	_, exists := store.products[p.ID]
	assert.False(t, exists, "el producto debe eliminarse")
	require.Len(t, store.entries, 2, "las entradas del libro deben sobrevivir")
	for _, id := range []string{e1.ID, e2.ID} {
		entry := store.entries[id]
		require.NotNil(t, entry)
		assert.Nil(t, entry.ProductID, "las entradas deben quedar huérfanas (product_id nil)")
		assert.Empty(t, entry.ProductCode, "el snapshot del código se vacía al desprender")
	}
}

func TestDeleteProduct_Inexistente_NotFound(t *testing.T) {
	uc, _ := newEngine()

	err := uc.DeleteProduct(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteProduct_IDVacio_InputInvalido(t *testing.T) {
	uc, _ := newEngine()

	err := uc.DeleteProduct(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariante del libro
// ──────────────────────────────────────────────────────────────────────────────

// Tras cualquier secuencia de ApplyMovement, el stock final debe ser el inicial
// más la suma de deltas firmados de los movimientos exitosos, y cada entrada
// del libro debe reflejar el stock que dejó.
func TestLibro_SumaDeDeltasYSnapshots(t *testing.T) {
	uc, store := newEngine()
	p := seedProduct(store, 7)

	movimientos := []struct {
		typ string
		qty int64
	}{
		{entity.MovementTypeIn, 3},  // 10
		{entity.MovementTypeOut, 4}, // 6
		{entity.MovementTypeIn, 2},  // 8
		{entity.MovementTypeOut, 8}, // 0
		{entity.MovementTypeIn, 1},  // 1
	}

	expected := int64(7)
	for _, m := range movimientos {
		_, entry := apply(t, uc, p.ID, m.typ, m.qty)
		if m.typ == entity.MovementTypeIn {
			expected += m.qty
		} else {
			expected -= m.qty
		}
		assert.Equal(t, expected, entry.ResultingStock,
			"cada entrada debe llevar snapshot del stock que dejó")
	}

	// Una salida fallida no contribuye al total
	_, _, err := uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: p.ID, UserID: testUserID, Type: entity.MovementTypeOut, Quantity: 99,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, expected, store.products[p.ID].Stock,
		"el stock final debe ser el inicial más la suma de deltas exitosos")

	var last *entity.History
	for _, e := range store.entries {
		if last == nil || e.CreatedAt.After(last.CreatedAt) {
			last = e
		}
	}
	require.NotNil(t, last)
	assert.Equal(t, store.products[p.ID].Stock, last.ResultingStock,
		"el stock debe coincidir con el resulting_stock de la entrada más reciente")
}
