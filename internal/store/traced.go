package store

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/erazemk/izposoja/internal/model"
)

// tracedStore wraps every Store call in a span.
type tracedStore struct {
	next   Store
	tracer trace.Tracer
}

// Traced returns a Store that records a span per operation on tp.
func Traced(next Store, tp trace.TracerProvider) Store {
	return &tracedStore{
		next:   next,
		tracer: tp.Tracer("github.com/erazemk/izposoja/internal/store"),
	}
}

func (s *tracedStore) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *tracedStore) List(ctx context.Context) ([]model.Item, error) {
	ctx, span := s.start(ctx, "store.list")
	items, err := s.next.List(ctx)
	span.SetAttributes(attribute.Int("item.count", len(items)))
	finish(span, err)
	return items, err
}

func (s *tracedStore) Get(ctx context.Context, id string) (*model.Item, error) {
	ctx, span := s.start(ctx, "store.get", attribute.String("item.id", id))
	item, err := s.next.Get(ctx, id)
	finish(span, err)
	return item, err
}

func (s *tracedStore) Create(ctx context.Context, n model.NewItem) (*model.Item, error) {
	ctx, span := s.start(ctx, "store.create",
		attribute.String("item.category", n.Category),
		attribute.Bool("item.photo", n.Photo != nil),
	)
	item, err := s.next.Create(ctx, n)
	if item != nil {
		span.SetAttributes(attribute.String("item.id", item.ID))
	}
	finish(span, err)
	return item, err
}

func (s *tracedStore) RequestBorrow(ctx context.Context, id string) (*model.BorrowResult, error) {
	ctx, span := s.start(ctx, "store.request_borrow", attribute.String("item.id", id))
	result, err := s.next.RequestBorrow(ctx, id)
	finish(span, err)
	return result, err
}

func (s *tracedStore) Photo(ctx context.Context, id string) (*model.Photo, error) {
	ctx, span := s.start(ctx, "store.photo", attribute.String("item.id", id))
	photo, err := s.next.Photo(ctx, id)
	finish(span, err)
	return photo, err
}
