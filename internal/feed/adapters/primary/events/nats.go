package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/fellipeca007/GuardaFlix/internal/feed/domain"
	"github.com/fellipeca007/GuardaFlix/internal/feed/ports"
)

const fanoutTimeout = 30 * time.Second

// EventHandler consomme les événements post.created et déclenche le
// fan-out vers les timelines en cache.
type EventHandler struct {
	service ports.FeedService
}

func NewEventHandler(service ports.FeedService) *EventHandler {
	return &EventHandler{service: service}
}

type postCreatedEvent struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *EventHandler) HandlePostCreated(msg *nats.Msg) {
	// Extraction du contexte de trace depuis les headers NATS : le
	// fan-out apparaît comme enfant de la requête d'origine.
	ctx := otel.GetTextMapPropagator().Extract(context.Background(), propagation.HeaderCarrier(msg.Header))

	tracer := otel.Tracer("guardaflix/feed")
	ctx, span := tracer.Start(ctx, "process_post_created", trace.WithSpanKind(trace.SpanKindConsumer))
	defer span.End()

	var event postCreatedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		span.RecordError(err)
		slog.Error("❌ Invalid event format", "subject", msg.Subject, "error", err)
		return
	}

	slog.Info("📨 Feed received event", "post_id", event.ID, "author_id", event.AuthorID)

	item := &domain.TimelineItem{
		PostID:    event.ID,
		AuthorID:  event.AuthorID,
		CreatedAt: event.CreatedAt,
	}

	// Fan-out en arrière-plan : le subscriber NATS ne doit pas bloquer.
	go func() {
		childCtx, cancel := context.WithTimeout(ctx, fanoutTimeout)
		defer cancel()

		if err := h.service.DistributePost(childCtx, item); err != nil {
			slog.Error("❌ Fan-out failed", "post_id", event.ID, "error", err)
		}
	}()
}
