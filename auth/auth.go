// Package auth validates session tokens against the sessions table.
//
// Credential issuance and password hashing live in the account-management
// collaborator; this package only answers "which handle does this token
// belong to, and is it still live". Tokens are looked up by SHA-256 digest,
// never by raw value.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/finchapp/finch/internal/digest"
	"github.com/finchapp/finch/store"
)

// ErrUnauthorized is returned for a missing, unknown, or expired token.
var ErrUnauthorized = errors.New("finch: unauthorized")

// DefaultSessionsTable is the sessions table name used when none is given.
const DefaultSessionsTable = "finch_sessions"

// Client is the subset of the DynamoDB API the validator uses.
type Client interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// Sessions validates bearer tokens against stored session records.
type Sessions struct {
	client Client
	table  string
}

// NewSessions creates a session validator. An empty table name falls back to
// [DefaultSessionsTable].
func NewSessions(client Client, table string) *Sessions {
	if table == "" {
		table = DefaultSessionsTable
	}
	return &Sessions{client: client, table: table}
}

type sessionRecord struct {
	TokenDigest string `dynamodbav:"token_digest"`
	Handle      string `dynamodbav:"handle"`
	ExpiresAt   int64  `dynamodbav:"expires_at"`
}

// Validate returns the handle the token authenticates, or [ErrUnauthorized].
// Expiry is checked against the stored expires_at; an expired record is
// treated exactly like a missing one.
func (s *Sessions) Validate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrUnauthorized
	}

	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"token_digest": &types.AttributeValueMemberS{Value: digest.Token(token)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: get session: %v", store.ErrUnavailable, err)
	}
	if out.Item == nil {
		return "", ErrUnauthorized
	}

	var rec sessionRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return "", err
	}
	if rec.ExpiresAt <= time.Now().Unix() {
		return "", ErrUnauthorized
	}
	return rec.Handle, nil
}
