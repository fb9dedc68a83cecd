package store

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ProfileField names an account attribute that a profile change set may
// touch. The counters and the credential are deliberately not reachable
// through this type.
type ProfileField string

const (
	FieldFirstName ProfileField = "first_name"
	FieldLastName  ProfileField = "last_name"
	FieldImageURL  ProfileField = "image_url"
)

// ProfileChange pairs a field with its new value. An empty string is a valid
// new value and is applied, never silently skipped.
type ProfileChange struct {
	Field ProfileField
	Value string
}

// ProfileChanges is an explicit set of profile updates, validated before it
// is turned into a conditional write.
type ProfileChanges []ProfileChange

// Validate rejects an empty set, unknown fields, and duplicate fields.
func (c ProfileChanges) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("%w: no changes", ErrInvalidChangeSet)
	}
	seen := make(map[ProfileField]bool, len(c))
	for _, ch := range c {
		switch ch.Field {
		case FieldFirstName, FieldLastName, FieldImageURL:
		default:
			return fmt.Errorf("%w: unknown field %q", ErrInvalidChangeSet, ch.Field)
		}
		if seen[ch.Field] {
			return fmt.Errorf("%w: duplicate field %q", ErrInvalidChangeSet, ch.Field)
		}
		seen[ch.Field] = true
	}
	return nil
}

// updateProfileInput builds the SET expression for a change set. The update
// is conditioned on the account existing so a profile write can never create
// a ghost item.
func (s *Store) updateProfileInput(handle string, changes ProfileChanges) (*dynamodb.UpdateItemInput, error) {
	if err := changes.Validate(); err != nil {
		return nil, err
	}

	exprNames := make(map[string]string, len(changes))
	exprValues := make(map[string]types.AttributeValue, len(changes))
	updateExpr := "SET "
	for i, ch := range changes {
		nameKey := fmt.Sprintf("#f%d", i)
		valueKey := fmt.Sprintf(":v%d", i)
		exprNames[nameKey] = string(ch.Field)
		exprValues[valueKey] = &types.AttributeValueMemberS{Value: ch.Value}
		if i > 0 {
			updateExpr += ", "
		}
		updateExpr += nameKey + " = " + valueKey
	}

	return &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.config.UsersTable),
		Key:                       userKey(handle),
		UpdateExpression:          aws.String(updateExpr),
		ConditionExpression:       aws.String("attribute_exists(handle)"),
		ExpressionAttributeNames:  exprNames,
		ExpressionAttributeValues: exprValues,
	}, nil
}
