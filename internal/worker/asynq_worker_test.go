package worker

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/tienda-tcg/internal/provider"
	"github.com/tienda-tcg/internal/queue"
	"github.com/tienda-tcg/internal/service"
	"github.com/tienda-tcg/internal/shopify"

	"github.com/hibiken/asynq"
)

type stubCatalogAPI struct {
	handles []string
	err     error
}

func (s *stubCatalogAPI) Products(context.Context, int) ([]shopify.Product, error) {
	return nil, nil
}

func (s *stubCatalogAPI) CollectionProducts(_ context.Context, handle string, _ int) (*shopify.Collection, error) {
	s.handles = append(s.handles, handle)
	if s.err != nil {
		return nil, s.err
	}
	collection := &shopify.Collection{Handle: handle}
	collection.Products.Edges = []shopify.Edge[shopify.Product]{{Node: shopify.Product{Handle: "etb"}}}
	return collection, nil
}

func (s *stubCatalogAPI) ProductByHandle(context.Context, string, int, int) (*shopify.Product, error) {
	return nil, nil
}

func newTestConsumer(api *stubCatalogAPI) *Consumer {
	return NewConsumer(&provider.Container{
		CatalogService: service.NewCatalogService(api, service.CatalogOptions{}),
	})
}

func TestHandleCatalogWarm(t *testing.T) {
	api := &stubCatalogAPI{}
	consumer := newTestConsumer(api)

	task, err := queue.NewCatalogWarmTask(queue.CatalogWarmPayload{Handle: "pokemon"})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if err := consumer.handleCatalogWarm(context.Background(), task); err != nil {
		t.Fatalf("warm failed: %v", err)
	}
	if !reflect.DeepEqual(api.handles, []string{"pokemon"}) {
		t.Fatalf("unexpected warmed handles: %v", api.handles)
	}
}

func TestHandleCatalogWarmErrors(t *testing.T) {
	api := &stubCatalogAPI{err: shopify.ErrRequestFailed}
	consumer := newTestConsumer(api)

	task, _ := queue.NewCatalogWarmTask(queue.CatalogWarmPayload{Handle: "pokemon"})
	if err := consumer.handleCatalogWarm(context.Background(), task); !errors.Is(err, shopify.ErrRequestFailed) {
		t.Fatalf("expected upstream error for retry, got %v", err)
	}

	bad := asynq.NewTask(queue.TaskCatalogWarm, []byte("{"))
	if err := consumer.handleCatalogWarm(context.Background(), bad); !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("malformed payload should skip retry, got %v", err)
	}

	empty, _ := queue.NewCatalogWarmTask(queue.CatalogWarmPayload{Handle: " "})
	if err := consumer.handleCatalogWarm(context.Background(), empty); err != nil {
		t.Fatalf("empty handle should be skipped, got %v", err)
	}
	if len(api.handles) != 1 {
		t.Fatalf("skipped tasks must not call the api, got %v", api.handles)
	}
}

func TestNormalizeHandles(t *testing.T) {
	got := normalizeHandles([]string{" Pokemon ", "", "onepiece", "pokemon"})
	want := []string{"pokemon", "onepiece"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v got %v", want, got)
	}
}
