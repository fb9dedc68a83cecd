// Package stream fans out newly authored story posts into follower feeds
// via DynamoDB Streams.
package stream

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/finchapp/finch/store"
)

// followerPageSize bounds each follower range read during fan-out.
const followerPageSize = 500

// Graph is the store surface the fan-out needs. *store.Store satisfies it.
type Graph interface {
	FollowersPage(ctx context.Context, handle string, after int64, limit int32) ([]store.Edge, error)
	AppendFeed(ctx context.Context, receivers []string, post store.Post) error
}

// Handler processes story-table stream events.
type Handler struct {
	graph  Graph
	logger *slog.Logger
}

// NewHandler creates a new stream handler.
func NewHandler(graph Graph, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		graph:  graph,
		logger: logger,
	}
}

// HandleStoryStream copies each newly inserted story post into the feed of
// every follower of its author. This function is designed to be used as an
// AWS Lambda handler on the story table's stream.
func (h *Handler) HandleStoryStream(ctx context.Context, event events.DynamoDBEvent) error {
	for _, record := range event.Records {
		if err := h.processRecord(ctx, record); err != nil {
			h.logger.Error("failed to process record",
				"eventID", record.EventID,
				"error", err,
			)
			return err // Will retry, eventually DLQ
		}
	}
	return nil
}

// processRecord fans out a single stream record. Only INSERT events matter;
// posts are immutable and never deleted, so nothing else can appear that
// needs propagation.
func (h *Handler) processRecord(ctx context.Context, record events.DynamoDBEventRecord) error {
	if record.EventName != "INSERT" {
		return nil
	}

	img := record.Change.NewImage
	post := store.Post{
		ID:        getStringAttr(img, "id"),
		Author:    getStringAttr(img, "author_handle"),
		CreatedAt: getNumberAttr(img, "created_at"),
		Body:      getStringAttr(img, "body"),
		MediaURL:  getStringAttr(img, "media_url"),
	}
	if post.Author == "" || post.CreatedAt == 0 {
		// Not a story item; skip rather than fail the batch.
		return nil
	}

	h.logger.Info("fanning out story post",
		"author", post.Author,
		"postID", post.ID,
	)

	var fanned int
	var after int64
	for {
		edges, err := h.graph.FollowersPage(ctx, post.Author, after, followerPageSize)
		if err != nil {
			return fmt.Errorf("list followers: %w", err)
		}
		if len(edges) == 0 {
			break
		}

		receivers := make([]string, 0, len(edges))
		for _, e := range edges {
			receivers = append(receivers, e.Follower)
		}
		if err := h.graph.AppendFeed(ctx, receivers, post); err != nil {
			return fmt.Errorf("append feed: %w", err)
		}
		fanned += len(receivers)

		if len(edges) < followerPageSize {
			break
		}
		after = edges[len(edges)-1].CreatedAt
	}

	h.logger.Info("fan-out complete",
		"author", post.Author,
		"postID", post.ID,
		"receivers", fanned,
	)
	return nil
}
