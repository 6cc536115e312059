package s3

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/longlongdada/lenskit/blobstore"
)

// Compile time check to ensure DDBCatalog satisfies the Catalog interface.
var _ blobstore.Catalog = (*DDBCatalog)(nil)

// ErrConcurrentModification is returned when a concurrent publish is
// detected.
var ErrConcurrentModification = errors.New("concurrent modification detected")

// DDBClient is the interface for DynamoDB operations.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// DDBCatalog implements blobstore.Catalog backed by DynamoDB,
// providing the atomic compare-and-swap semantics that S3 lacks. Each
// publish appends a new version row with a conditional write, so
// concurrent publishers cannot silently overwrite each other.
//
// Table schema:
//   - Partition key: base_uri (string) - the S3 bucket/prefix
//   - Sort key: version (number) - monotonically increasing version
//
// Create the table with:
//
//	aws dynamodb create-table \
//	  --table-name lenskit-commits \
//	  --attribute-definitions AttributeName=base_uri,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=base_uri,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type DDBCatalog struct {
	client    DDBClient
	tableName string
	baseURI   string
}

// NewDDBCatalog creates a DynamoDB-backed catalog. The baseURI, in
// "s3://bucket/prefix" form, isolates catalogs sharing one table.
func NewDDBCatalog(client DDBClient, tableName, baseURI string) *DDBCatalog {
	return &DDBCatalog{
		client:    client,
		tableName: tableName,
		baseURI:   baseURI,
	}
}

// Publish atomically records name as the current snapshot. It returns
// ErrConcurrentModification if another publisher committed a version
// in the meantime; the caller may re-read and retry.
func (c *DDBCatalog) Publish(ctx context.Context, name string) error {
	version, _, err := c.latest(ctx)
	if err != nil {
		return err
	}

	// Conditional put: only succeed if this version doesn't exist yet.
	_, err = c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.tableName),
		Item: map[string]types.AttributeValue{
			"base_uri":      &types.AttributeValueMemberS{Value: c.baseURI},
			"version":       &types.AttributeValueMemberN{Value: strconv.FormatUint(version+1, 10)},
			"snapshot_name": &types.AttributeValueMemberS{Value: name},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrConcurrentModification
		}
		return fmt.Errorf("commit version to dynamodb: %w", err)
	}

	return nil
}

// Current returns the most recently published snapshot name, or
// blobstore.ErrNotFound if nothing has been published yet.
func (c *DDBCatalog) Current(ctx context.Context) (string, error) {
	version, name, err := c.latest(ctx)
	if err != nil {
		return "", err
	}
	if version == 0 {
		return "", blobstore.ErrNotFound
	}
	return name, nil
}

// latest queries DynamoDB for the newest committed version. A zero
// version means no publish has happened yet.
func (c *DDBCatalog) latest(ctx context.Context) (uint64, string, error) {
	resp, err := c.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(c.tableName),
		KeyConditionExpression: aws.String("base_uri = :uri"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uri": &types.AttributeValueMemberS{Value: c.baseURI},
		},
		ScanIndexForward: aws.Bool(false), // Descending order
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, "", fmt.Errorf("query dynamodb: %w", err)
	}

	if len(resp.Items) == 0 {
		return 0, "", nil
	}

	item := resp.Items[0]
	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, "", errors.New("invalid version attribute in dynamodb item")
	}
	nameAttr, ok := item["snapshot_name"].(*types.AttributeValueMemberS)
	if !ok {
		return 0, "", errors.New("invalid snapshot_name attribute in dynamodb item")
	}

	version, err := strconv.ParseUint(versionAttr.Value, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("parse version: %w", err)
	}

	return version, nameAttr.Value, nil
}
