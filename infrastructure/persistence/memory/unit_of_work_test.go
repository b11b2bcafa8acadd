package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"commerce/domain/catalog"
	"commerce/domain/shared"
)

func newProduct(t *testing.T, sku string, stock int) *catalog.Product {
	t.Helper()
	s, err := catalog.NewSKU(sku)
	if err != nil {
		t.Fatalf("NewSKU failed: %v", err)
	}
	st, err := catalog.NewStock(stock)
	if err != nil {
		t.Fatalf("NewStock failed: %v", err)
	}
	p, err := catalog.NewProduct(*s, "Test Product", "", shared.MustMoney("19.99", "USD"), *st)
	if err != nil {
		t.Fatalf("NewProduct failed: %v", err)
	}
	return p
}

func TestExecuteCommits(t *testing.T) {
	store := NewStore()
	repo := NewProductRepository(store)
	uow := NewUnitOfWork(store)
	p := newProduct(t, "PROD-001", 5)

	err := uow.Execute(context.Background(), func(ctx context.Context) error {
		if err := repo.Save(ctx, p); err != nil {
			return err
		}
		uow.RegisterNew(p)
		return nil
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	found, err := repo.FindByID(context.Background(), p.ID())
	if err != nil {
		t.Fatalf("FindByID after commit failed: %v", err)
	}
	if found.Stock().Quantity() != 5 {
		t.Errorf("stock = %d, want 5", found.Stock().Quantity())
	}
	if store.EventCount() != 1 {
		t.Errorf("event count = %d, want 1", store.EventCount())
	}
}

func TestExecuteRollsBackOnError(t *testing.T) {
	store := NewStore()
	repo := NewProductRepository(store)
	uow := NewUnitOfWork(store)
	p := newProduct(t, "PROD-001", 5)
	boom := errors.New("boom")

	err := uow.Execute(context.Background(), func(ctx context.Context) error {
		if err := repo.Save(ctx, p); err != nil {
			return err
		}
		uow.RegisterNew(p)
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom back, got %v", err)
	}

	if _, err := repo.FindByID(context.Background(), p.ID()); !errors.Is(err, catalog.ErrProductNotFound) {
		t.Errorf("rolled-back product should be gone, got %v", err)
	}
	if store.EventCount() != 0 {
		t.Errorf("event count = %d, want 0 after rollback", store.EventCount())
	}
}

func TestNestedExecuteJoinsOuter(t *testing.T) {
	store := NewStore()
	repo := NewProductRepository(store)
	outer := NewUnitOfWork(store)
	inner := NewUnitOfWork(store)
	p := newProduct(t, "PROD-001", 5)
	boom := errors.New("boom")

	err := outer.Execute(context.Background(), func(ctx context.Context) error {
		// The inner unit of work joins; its write belongs to the outer
		// transaction and must vanish when the outer one fails.
		if err := inner.Execute(ctx, func(ctx context.Context) error {
			if err := repo.Save(ctx, p); err != nil {
				return err
			}
			inner.RegisterNew(p)
			return nil
		}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom back, got %v", err)
	}

	if _, err := repo.FindByID(context.Background(), p.ID()); !errors.Is(err, catalog.ErrProductNotFound) {
		t.Errorf("nested write should roll back with the outer transaction, got %v", err)
	}
	if store.EventCount() != 0 {
		t.Errorf("event count = %d, want 0 after outer rollback", store.EventCount())
	}
}

func TestFailedUnitOfWorkKeepsConcurrentCommit(t *testing.T) {
	store := NewStore()
	repo := NewProductRepository(store)
	factory := NewUnitOfWorkFactory(store)
	boom := errors.New("boom")

	failing := newProduct(t, "PROD-AAA", 1)
	committed := newProduct(t, "PROD-BBB", 1)

	entered := make(chan struct{})
	release := make(chan struct{})
	failDone := make(chan error, 1)
	go func() {
		uow := factory.New()
		failDone <- uow.Execute(context.Background(), func(ctx context.Context) error {
			if err := repo.Save(ctx, failing); err != nil {
				return err
			}
			uow.RegisterNew(failing)
			close(entered)
			<-release
			return boom
		})
	}()
	<-entered

	// This transaction starts while the failing one is in flight; it must
	// wait for it and its commit must survive the other's rollback.
	commitDone := make(chan error, 1)
	go func() {
		uow := factory.New()
		commitDone <- uow.Execute(context.Background(), func(ctx context.Context) error {
			if err := repo.Save(ctx, committed); err != nil {
				return err
			}
			uow.RegisterNew(committed)
			return nil
		})
	}()

	close(release)
	if err := <-failDone; !errors.Is(err, boom) {
		t.Fatalf("expected boom back, got %v", err)
	}
	if err := <-commitDone; err != nil {
		t.Fatalf("concurrent commit failed: %v", err)
	}

	if _, err := repo.FindByID(context.Background(), committed.ID()); err != nil {
		t.Errorf("committed product vanished after the other rollback: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), failing.ID()); !errors.Is(err, catalog.ErrProductNotFound) {
		t.Errorf("rolled-back product should be gone, got %v", err)
	}
	if store.EventCount() != 1 {
		t.Errorf("event count = %d, want 1 (only the committed transaction)", store.EventCount())
	}
}

func TestConcurrentUnitsOfWork(t *testing.T) {
	store := NewStore()
	repo := NewProductRepository(store)
	factory := NewUnitOfWorkFactory(store)
	boom := errors.New("boom")

	const committers = 8
	products := make([]*catalog.Product, committers)
	for i := range products {
		products[i] = newProduct(t, fmt.Sprintf("PROD-%03d", i), 1)
	}

	var wg sync.WaitGroup
	for i := 0; i < committers; i++ {
		wg.Add(1)
		go func(p *catalog.Product) {
			defer wg.Done()
			uow := factory.New()
			uow.Execute(context.Background(), func(ctx context.Context) error {
				if err := repo.Save(ctx, p); err != nil {
					return err
				}
				uow.RegisterNew(p)
				return nil
			})
		}(products[i])
		wg.Add(1)
		go func() {
			defer wg.Done()
			uow := factory.New()
			uow.Execute(context.Background(), func(ctx context.Context) error {
				return boom
			})
		}()
	}
	wg.Wait()

	for _, p := range products {
		if _, err := repo.FindByID(context.Background(), p.ID()); err != nil {
			t.Errorf("product %s lost under concurrency: %v", p.SKU().Value(), err)
		}
	}
	if store.EventCount() != committers {
		t.Errorf("event count = %d, want %d", store.EventCount(), committers)
	}
}

func TestSaveDetectsStaleVersion(t *testing.T) {
	store := NewStore()
	repo := NewProductRepository(store)
	ctx := context.Background()
	p := newProduct(t, "PROD-001", 10)

	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("initial save failed: %v", err)
	}

	first, err := repo.FindByID(ctx, p.ID())
	if err != nil {
		t.Fatal(err)
	}
	second, err := repo.FindByID(ctx, p.ID())
	if err != nil {
		t.Fatal(err)
	}

	if err := first.ReserveStock(1); err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("first writer should win: %v", err)
	}

	if err := second.ReserveStock(1); err != nil {
		t.Fatal(err)
	}
	err = repo.Save(ctx, second)
	if !errors.Is(err, catalog.ErrConcurrentModification) {
		t.Errorf("second writer should lose, got %v", err)
	}
}

func TestSaveRejectsDuplicateSKU(t *testing.T) {
	store := NewStore()
	repo := NewProductRepository(store)
	ctx := context.Background()

	if err := repo.Save(ctx, newProduct(t, "PROD-001", 1)); err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	err := repo.Save(ctx, newProduct(t, "prod-001", 1))
	if !errors.Is(err, catalog.ErrDuplicateSKU) {
		t.Errorf("expected ErrDuplicateSKU, got %v", err)
	}
}

func TestFindBySKU(t *testing.T) {
	store := NewStore()
	repo := NewProductRepository(store)
	ctx := context.Background()
	p := newProduct(t, "PROD-001", 1)

	if err := repo.Save(ctx, p); err != nil {
		t.Fatal(err)
	}

	sku, err := catalog.NewSKU("prod-001")
	if err != nil {
		t.Fatal(err)
	}
	found, err := repo.FindBySKU(ctx, *sku)
	if err != nil {
		t.Fatalf("FindBySKU failed: %v", err)
	}
	if found.ID() != p.ID() {
		t.Errorf("got product %s, want %s", found.ID(), p.ID())
	}

	exists, err := repo.ExistsBySKU(ctx, *sku)
	if err != nil || !exists {
		t.Errorf("ExistsBySKU = %v, %v, want true", exists, err)
	}
}
