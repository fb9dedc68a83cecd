package store

import (
	"context"
	"errors"
	"math"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Post is one immutable status post. CreatedAt is the sort key, Unix
// nanoseconds.
type Post struct {
	ID        string `dynamodbav:"id"`
	Author    string `dynamodbav:"author_handle"`
	CreatedAt int64  `dynamodbav:"created_at"`
	Body      string `dynamodbav:"body"`
	MediaURL  string `dynamodbav:"media_url,omitempty"`
}

// feedRecord is a post copied into one receiver's feed partition.
type feedRecord struct {
	Receiver  string `dynamodbav:"receiver_handle"`
	ID        string `dynamodbav:"id"`
	Author    string `dynamodbav:"author_handle"`
	CreatedAt int64  `dynamodbav:"created_at"`
	Body      string `dynamodbav:"body"`
	MediaURL  string `dynamodbav:"media_url,omitempty"`
}

const (
	// DynamoDB caps BatchWriteItem at 25 requests.
	batchWriteChunk  = 25
	maxBatchAttempts = 3
)

var errUnprocessed = errors.New("unprocessed items remain after retries")

// StoryPage returns up to limit of handle's own posts, newest first,
// strictly before the given sort key. Pass before=0 for the first page.
func (s *Store) StoryPage(ctx context.Context, handle string, before int64, limit int32) ([]Post, error) {
	return s.postPage(ctx, s.storyPageInput(handle, before, limit))
}

// FeedPage returns up to limit posts from handle's materialized home feed,
// newest first, strictly before the given sort key. Pass before=0 for the
// first page.
func (s *Store) FeedPage(ctx context.Context, handle string, before int64, limit int32) ([]Post, error) {
	return s.postPage(ctx, s.feedPageInput(handle, before, limit))
}

func (s *Store) postPage(ctx context.Context, input *dynamodb.QueryInput) ([]Post, error) {
	out, err := s.client.Query(ctx, input)
	if err != nil {
		return nil, unavailable("query posts", err)
	}

	posts := make([]Post, 0, len(out.Items))
	for _, raw := range out.Items {
		var p Post
		if err := attributevalue.UnmarshalMap(raw, &p); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, nil
}

func (s *Store) storyPageInput(handle string, before int64, limit int32) *dynamodb.QueryInput {
	return &dynamodb.QueryInput{
		TableName:              aws.String(s.config.StoryTable),
		KeyConditionExpression: aws.String("author_handle = :h AND created_at < :before"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":h":      &types.AttributeValueMemberS{Value: handle},
			":before": &types.AttributeValueMemberN{Value: strconv.FormatInt(beforeKey(before), 10)},
		},
		Limit:            aws.Int32(limit),
		ScanIndexForward: aws.Bool(false),
	}
}

func (s *Store) feedPageInput(handle string, before int64, limit int32) *dynamodb.QueryInput {
	return &dynamodb.QueryInput{
		TableName:              aws.String(s.config.FeedTable),
		KeyConditionExpression: aws.String("receiver_handle = :h AND created_at < :before"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":h":      &types.AttributeValueMemberS{Value: handle},
			":before": &types.AttributeValueMemberN{Value: strconv.FormatInt(beforeKey(before), 10)},
		},
		Limit:            aws.Int32(limit),
		ScanIndexForward: aws.Bool(false),
	}
}

// beforeKey maps the "first page" sentinel to an upper bound above any
// timestamp.
func beforeKey(before int64) int64 {
	if before <= 0 {
		return math.MaxInt64
	}
	return before
}

// AppendFeed copies a post into each receiver's feed partition, in batches
// of 25. Unprocessed items are retried a bounded number of times; anything
// still unprocessed surfaces as [ErrUnavailable].
func (s *Store) AppendFeed(ctx context.Context, receivers []string, post Post) error {
	requests := make([]types.WriteRequest, 0, len(receivers))
	for _, r := range receivers {
		item, err := attributevalue.MarshalMap(feedRecord{
			Receiver:  r,
			ID:        post.ID,
			Author:    post.Author,
			CreatedAt: post.CreatedAt,
			Body:      post.Body,
			MediaURL:  post.MediaURL,
		})
		if err != nil {
			return err
		}
		requests = append(requests, types.WriteRequest{
			PutRequest: &types.PutRequest{Item: item},
		})
	}

	for len(requests) > 0 {
		chunk := requests
		if len(chunk) > batchWriteChunk {
			chunk = chunk[:batchWriteChunk]
		}
		requests = requests[len(chunk):]

		for attempt := 0; attempt < maxBatchAttempts && len(chunk) > 0; attempt++ {
			out, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: map[string][]types.WriteRequest{
					s.config.FeedTable: chunk,
				},
			})
			if err != nil {
				return unavailable("append feed", err)
			}
			chunk = out.UnprocessedItems[s.config.FeedTable]
		}
		if len(chunk) > 0 {
			return unavailable("append feed", errUnprocessed)
		}
	}
	return nil
}
