package store

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// User is the public representation of an account. The credential never
// appears here; it is readable only through [Store.GetCredential].
type User struct {
	Handle         string `dynamodbav:"handle"`
	FirstName      string `dynamodbav:"first_name"`
	LastName       string `dynamodbav:"last_name"`
	ImageURL       string `dynamodbav:"image_url"`
	FollowerCount  int64  `dynamodbav:"follower_count"`
	FollowingCount int64  `dynamodbav:"following_count"`
}

// userRecord is the stored shape, including the separately-scoped credential
// field.
type userRecord struct {
	User
	PasswordHash string `dynamodbav:"password_hash,omitempty"`
}

// CreateUser stores a new account. There is one construction path for both
// credentialed and credential-less accounts: an empty passwordHash simply
// leaves the field unset. A duplicate handle fails with [ErrAlreadyExists].
func (s *Store) CreateUser(ctx context.Context, user User, passwordHash string) error {
	rec := userRecord{User: user, PasswordHash: passwordHash}
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return err
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.config.UsersTable),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(handle)"),
	})
	if err != nil {
		if isCondFail(err) {
			return ErrAlreadyExists
		}
		return unavailable("create user", err)
	}
	return nil
}

// GetUser returns the account for handle, or [ErrNotFound].
func (s *Store) GetUser(ctx context.Context, handle string) (User, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.config.UsersTable),
		Key:       userKey(handle),
	})
	if err != nil {
		return User{}, unavailable("get user", err)
	}
	if out.Item == nil {
		return User{}, ErrNotFound
	}

	var u User
	if err := attributevalue.UnmarshalMap(out.Item, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

// GetUsers fetches accounts for the given handles in one batch read. Handles
// with no account are simply absent from the result; callers decide how to
// represent the gap.
func (s *Store) GetUsers(ctx context.Context, handles []string) ([]User, error) {
	if len(handles) == 0 {
		return nil, nil
	}

	keys := make([]map[string]types.AttributeValue, 0, len(handles))
	for _, h := range handles {
		keys = append(keys, userKey(h))
	}

	var users []User
	// BatchGetItem may return unprocessed keys under throttling; drain them
	// with a bounded number of follow-up calls.
	for attempt := 0; attempt < maxBatchAttempts && len(keys) > 0; attempt++ {
		out, err := s.client.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{
			RequestItems: map[string]types.KeysAndAttributes{
				s.config.UsersTable: {Keys: keys},
			},
		})
		if err != nil {
			return nil, unavailable("batch get users", err)
		}

		for _, raw := range out.Responses[s.config.UsersTable] {
			var u User
			if err := attributevalue.UnmarshalMap(raw, &u); err != nil {
				return nil, err
			}
			users = append(users, u)
		}

		keys = out.UnprocessedKeys[s.config.UsersTable].Keys
	}
	if len(keys) > 0 {
		return nil, unavailable("batch get users", errUnprocessed)
	}
	return users, nil
}

// GetCredential returns the stored password hash for handle. This is the
// only read path that exposes the credential; [ErrNotFound] covers both a
// missing account and an account with no credential.
func (s *Store) GetCredential(ctx context.Context, handle string) (string, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:            aws.String(s.config.UsersTable),
		Key:                  userKey(handle),
		ProjectionExpression: aws.String("password_hash"),
	})
	if err != nil {
		return "", unavailable("get credential", err)
	}
	hash, ok := out.Item["password_hash"].(*types.AttributeValueMemberS)
	if !ok || hash.Value == "" {
		return "", ErrNotFound
	}
	return hash.Value, nil
}

// UpdateProfile applies a validated change set to an existing account as one
// conditional update. See [ProfileChanges] for validation rules; an
// intentionally empty string value is applied like any other.
func (s *Store) UpdateProfile(ctx context.Context, handle string, changes ProfileChanges) error {
	input, err := s.updateProfileInput(handle, changes)
	if err != nil {
		return err
	}

	_, err = s.client.UpdateItem(ctx, input)
	if err != nil {
		if isCondFail(err) {
			return ErrNotFound
		}
		return unavailable("update profile", err)
	}
	return nil
}

func userKey(handle string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"handle": &types.AttributeValueMemberS{Value: handle},
	}
}
