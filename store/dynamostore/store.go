// Package dynamostore provides a relgen.Store backed by a DynamoDB table.
//
// The table has the string partition key "pk", holding the collection, and
// the string sort key "sk", holding the row key. Content is kept in the
// binary attribute "content".
package dynamostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/syssam/relgen"
)

// ErrDuplicateKey is returned by Create when the key is already taken.
var ErrDuplicateKey = errors.New("dynamostore: duplicate key")

// API is the subset of the DynamoDB client used by Store.
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// row is the item layout of one stored entry.
type row struct {
	Collection string `dynamodbav:"pk"`
	Key        string `dynamodbav:"sk"`
	Content    []byte `dynamodbav:"content"`
}

// Store is a relgen.Store over one DynamoDB table.
type Store struct {
	client API
	table  string
}

// New returns a store over the given table.
func New(client API, table string) *Store {
	return &Store{client: client, table: table}
}

// Connect loads the default AWS configuration and returns a store over the
// given table. A non-empty endpoint overrides the service endpoint, as used
// with DynamoDB Local.
func Connect(ctx context.Context, table, endpoint string, optFns ...func(*config.LoadOptions) error) (*Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("dynamostore: load aws config: %w", err)
	}
	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return New(client, table), nil
}

// CreateTable creates the table with on-demand billing. An existing table
// is not an error.
func (s *Store) CreateTable(ctx context.Context) error {
	_, err := s.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(s.table),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("pk"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("sk"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("pk"), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String("sk"), KeyType: types.KeyTypeRange},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	var inUse *types.ResourceInUseException
	if err != nil && !errors.As(err, &inUse) {
		return fmt.Errorf("dynamostore: create table %s: %w", s.table, err)
	}
	return nil
}

// Create implements relgen.Store.
func (s *Store) Create(ctx context.Context, collection, key string, content []byte) (relgen.Ref, error) {
	item, err := attributevalue.MarshalMap(row{Collection: collection, Key: key, Content: content})
	if err != nil {
		return relgen.Ref{}, fmt.Errorf("dynamostore: marshal row: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(pk)"),
	})
	var condErr *types.ConditionalCheckFailedException
	switch {
	case errors.As(err, &condErr):
		return relgen.Ref{}, fmt.Errorf("%w: %s/%s", ErrDuplicateKey, collection, key)
	case err != nil:
		return relgen.Ref{}, fmt.Errorf("dynamostore: put: %w", err)
	}
	return relgen.Ref{Collection: collection, Key: key}, nil
}

// Select implements relgen.Store. Reads are strongly consistent.
func (s *Store) Select(ctx context.Context, collection, key string) ([]byte, bool, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            s.key(collection, key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, false, fmt.Errorf("dynamostore: get: %w", err)
	}
	if out.Item == nil {
		return nil, false, nil
	}
	var r row
	if err := attributevalue.UnmarshalMap(out.Item, &r); err != nil {
		return nil, false, fmt.Errorf("dynamostore: unmarshal row: %w", err)
	}
	return r.Content, true, nil
}

// Update implements relgen.Store.
func (s *Store) Update(ctx context.Context, collection, key string, content []byte) ([]byte, bool, error) {
	value, err := attributevalue.Marshal(content)
	if err != nil {
		return nil, false, fmt.Errorf("dynamostore: marshal content: %w", err)
	}
	_, err = s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.table),
		Key:                       s.key(collection, key),
		UpdateExpression:          aws.String("SET #content = :content"),
		ConditionExpression:       aws.String("attribute_exists(pk)"),
		ExpressionAttributeNames:  map[string]string{"#content": "content"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":content": value},
	})
	var condErr *types.ConditionalCheckFailedException
	switch {
	case errors.As(err, &condErr):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("dynamostore: update: %w", err)
	}
	return content, true, nil
}

// Table returns the table name.
func (s *Store) Table() string { return s.table }

func (s *Store) key(collection, key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"pk": &types.AttributeValueMemberS{Value: collection},
		"sk": &types.AttributeValueMemberS{Value: key},
	}
}

var _ relgen.Store = (*Store)(nil)
