/*
# Module: storage/dynamodb.go
DynamoDB-backed visit log repository.

## Linked Modules
- [storage/repository](./repository.go) - Repository interfaces
- [types/visit](../types/visit.go) - Visit log data structures

## Tags
storage, dynamodb, persistence, repository

## Exports
VisitDynamoDBRepository, NewVisitDynamoDBRepository, NewDynamoDBClient

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "storage/dynamodb.go" ;
    code:description "DynamoDB-backed visit log repository" ;
    code:linksTo [
        code:name "storage/repository" ;
        code:path "./repository.go" ;
        code:relationship "Repository interfaces"
    ], [
        code:name "types/visit" ;
        code:path "../types/visit.go" ;
        code:relationship "Visit log data structures"
    ] ;
    code:exports :VisitDynamoDBRepository, :NewVisitDynamoDBRepository, :NewDynamoDBClient ;
    code:tags "storage", "dynamodb", "persistence", "repository" .
<!-- End LinkedDoc RDF -->
*/
package storage

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamodbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"location-stories/types"
)

// DynamoDBAPI is the subset of the DynamoDB client the repository uses
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// NewDynamoDBClient loads the default AWS config for region and builds a client
func NewDynamoDBClient(ctx context.Context, region string) (*dynamodb.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return dynamodb.NewFromConfig(cfg), nil
}

// VisitDynamoDBRepository implements VisitRepository using DynamoDB
type VisitDynamoDBRepository struct {
	client    DynamoDBAPI
	tableName string
}

// NewVisitDynamoDBRepository creates a new DynamoDB visit repository
func NewVisitDynamoDBRepository(client DynamoDBAPI, tableName string) *VisitDynamoDBRepository {
	return &VisitDynamoDBRepository{
		client:    client,
		tableName: tableName,
	}
}

// Save stores a visit in DynamoDB
func (r *VisitDynamoDBRepository) Save(ctx context.Context, visit types.Visit) error {
	if r.client == nil {
		return fmt.Errorf("DynamoDB client not initialized")
	}

	item, err := attributevalue.MarshalMap(visit)
	if err != nil {
		return fmt.Errorf("failed to marshal visit: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to save visit to DynamoDB: %w", err)
	}

	log.Printf("💾 Visit saved to DynamoDB: visit_id=%s", visit.VisitID)
	return nil
}

// GetRecent scans the table and returns up to limit visits, newest first
func (r *VisitDynamoDBRepository) GetRecent(ctx context.Context, limit int) ([]types.Visit, error) {
	if r.client == nil {
		return nil, fmt.Errorf("DynamoDB client not initialized")
	}

	var visits []types.Visit
	var lastEvaluatedKey map[string]dynamodbtypes.AttributeValue

	for {
		input := &dynamodb.ScanInput{
			TableName: aws.String(r.tableName),
		}
		if lastEvaluatedKey != nil {
			input.ExclusiveStartKey = lastEvaluatedKey
		}

		result, err := r.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan visits: %w", err)
		}

		for _, item := range result.Items {
			var visit types.Visit
			if err := attributevalue.UnmarshalMap(item, &visit); err != nil {
				log.Printf("⚠️  Failed to unmarshal visit: %v", err)
				continue
			}
			visits = append(visits, visit)
		}

		lastEvaluatedKey = result.LastEvaluatedKey
		if lastEvaluatedKey == nil {
			break
		}
	}

	sort.Slice(visits, func(i, j int) bool {
		return visits[i].Timestamp.After(visits[j].Timestamp)
	})
	if limit > 0 && len(visits) > limit {
		visits = visits[:limit]
	}
	return visits, nil
}
