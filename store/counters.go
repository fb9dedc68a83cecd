package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// CounterField names one of the two denormalized follow counters on a user
// account.
type CounterField string

const (
	FollowerCount  CounterField = "follower_count"
	FollowingCount CounterField = "following_count"
)

// AdjustCounter applies a delta of +1 or -1 to one counter field, expressed
// as a single conditional read-modify-write so concurrent adjustments to the
// same handle cannot lose updates.
//
// Increments initialize the field to zero on first write and require the
// account item to exist ([ErrNotFound] otherwise). Decrements are guarded by
// the floor-at-zero condition: if the stored value is not greater than zero
// the update is refused, no write happens, and [ErrCounterUnderflow] is
// returned. Returns the stored value after the adjustment.
func (s *Store) AdjustCounter(ctx context.Context, handle string, field CounterField, delta int) (int64, error) {
	input, err := s.adjustCounterInput(handle, field, delta)
	if err != nil {
		return 0, err
	}

	out, err := s.client.UpdateItem(ctx, input)
	if err != nil {
		if isCondFail(err) {
			if delta < 0 {
				return 0, ErrCounterUnderflow
			}
			return 0, ErrNotFound
		}
		return 0, unavailable("adjust counter", err)
	}
	return counterValue(out.Attributes, field)
}

func (s *Store) adjustCounterInput(handle string, field CounterField, delta int) (*dynamodb.UpdateItemInput, error) {
	if field != FollowerCount && field != FollowingCount {
		return nil, fmt.Errorf("finch: unknown counter field %q", field)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.config.UsersTable),
		Key: map[string]types.AttributeValue{
			"handle": &types.AttributeValueMemberS{Value: handle},
		},
		ExpressionAttributeNames: map[string]string{
			"#f": string(field),
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	}

	switch delta {
	case 1:
		input.UpdateExpression = aws.String("SET #f = if_not_exists(#f, :zero) + :one")
		input.ConditionExpression = aws.String("attribute_exists(handle)")
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":one":  &types.AttributeValueMemberN{Value: "1"},
			":zero": &types.AttributeValueMemberN{Value: "0"},
		}
	case -1:
		input.UpdateExpression = aws.String("SET #f = #f - :one")
		input.ConditionExpression = aws.String("attribute_exists(handle) AND #f > :zero")
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":one":  &types.AttributeValueMemberN{Value: "1"},
			":zero": &types.AttributeValueMemberN{Value: "0"},
		}
	default:
		return nil, fmt.Errorf("finch: counter delta must be +1 or -1, got %d", delta)
	}

	return input, nil
}

// counterValue extracts the updated counter from UpdateItem's returned
// attributes.
func counterValue(attrs map[string]types.AttributeValue, field CounterField) (int64, error) {
	n, ok := attrs[string(field)].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("finch: counter %q missing from update result", field)
	}
	v, err := strconv.ParseInt(n.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("finch: counter %q is not a number: %w", field, err)
	}
	return v, nil
}
