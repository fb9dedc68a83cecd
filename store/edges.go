package store

import (
	"context"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Edge is a directed follow relationship from one handle to another.
type Edge struct {
	Follower  string `dynamodbav:"follower_handle"`
	Followee  string `dynamodbav:"followee_handle"`
	CreatedAt int64  `dynamodbav:"created_at"`
}

// PutEdge records that follower follows followee. It is idempotent: if the
// edge already exists the call succeeds with created=false and writes
// nothing. Counter maintenance happens elsewhere ([Store.AdjustCounter]), so
// a retried PutEdge can never double-account.
func (s *Store) PutEdge(ctx context.Context, follower, followee string) (created bool, err error) {
	edge := Edge{
		Follower:  follower,
		Followee:  followee,
		CreatedAt: time.Now().UnixNano(),
	}
	item, err := attributevalue.MarshalMap(edge)
	if err != nil {
		return false, err
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.config.FollowsTable),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(follower_handle)"),
	})
	if err != nil {
		if isCondFail(err) {
			return false, nil
		}
		return false, unavailable("put edge", err)
	}
	return true, nil
}

// DeleteEdge removes the follow edge. It is idempotent: a missing edge
// reports deleted=false without error.
func (s *Store) DeleteEdge(ctx context.Context, follower, followee string) (deleted bool, err error) {
	_, err = s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.config.FollowsTable),
		Key:                 edgeKey(follower, followee),
		ConditionExpression: aws.String("attribute_exists(follower_handle)"),
	})
	if err != nil {
		if isCondFail(err) {
			return false, nil
		}
		return false, unavailable("delete edge", err)
	}
	return true, nil
}

// IsFollowing reports whether the follow edge exists.
func (s *Store) IsFollowing(ctx context.Context, follower, followee string) (bool, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.config.FollowsTable),
		Key:       edgeKey(follower, followee),
	})
	if err != nil {
		return false, unavailable("get edge", err)
	}
	return out.Item != nil, nil
}

// FollowingPage returns up to limit edges where handle is the follower,
// ordered by edge creation time ascending, strictly after the given sort
// key. Pass after=0 for the first page.
func (s *Store) FollowingPage(ctx context.Context, handle string, after int64, limit int32) ([]Edge, error) {
	return s.edgePage(ctx, s.followingPageInput(handle, after, limit))
}

// FollowersPage returns up to limit edges where handle is the followee,
// ordered by edge creation time ascending, strictly after the given sort
// key. Pass after=0 for the first page.
func (s *Store) FollowersPage(ctx context.Context, handle string, after int64, limit int32) ([]Edge, error) {
	return s.edgePage(ctx, s.followersPageInput(handle, after, limit))
}

func (s *Store) edgePage(ctx context.Context, input *dynamodb.QueryInput) ([]Edge, error) {
	out, err := s.client.Query(ctx, input)
	if err != nil {
		return nil, unavailable("query edges", err)
	}

	edges := make([]Edge, 0, len(out.Items))
	for _, raw := range out.Items {
		var e Edge
		if err := attributevalue.UnmarshalMap(raw, &e); err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, nil
}

func (s *Store) followingPageInput(handle string, after int64, limit int32) *dynamodb.QueryInput {
	return &dynamodb.QueryInput{
		TableName:              aws.String(s.config.FollowsTable),
		IndexName:              aws.String(s.config.FollowingIndex),
		KeyConditionExpression: aws.String("follower_handle = :h AND created_at > :after"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":h":     &types.AttributeValueMemberS{Value: handle},
			":after": &types.AttributeValueMemberN{Value: strconv.FormatInt(after, 10)},
		},
		Limit:            aws.Int32(limit),
		ScanIndexForward: aws.Bool(true),
	}
}

func (s *Store) followersPageInput(handle string, after int64, limit int32) *dynamodb.QueryInput {
	return &dynamodb.QueryInput{
		TableName:              aws.String(s.config.FollowsTable),
		IndexName:              aws.String(s.config.FollowersIndex),
		KeyConditionExpression: aws.String("followee_handle = :h AND created_at > :after"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":h":     &types.AttributeValueMemberS{Value: handle},
			":after": &types.AttributeValueMemberN{Value: strconv.FormatInt(after, 10)},
		},
		Limit:            aws.Int32(limit),
		ScanIndexForward: aws.Bool(true),
	}
}

func edgeKey(follower, followee string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"follower_handle": &types.AttributeValueMemberS{Value: follower},
		"followee_handle": &types.AttributeValueMemberS{Value: followee},
	}
}
