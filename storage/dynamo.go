package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alex-pricope/nomination-board/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type DynamoTables struct {
	Persons      string
	Nominations  string
	Votes        string
	PointReasons string
	Admins       string
}

func NewDynamoBackend(client *dynamodb.Client, tables DynamoTables) *Backend {
	persons := &DynamoPersonStorage{Client: client, TableName: tables.Persons}
	nominations := &DynamoNominationStorage{Client: client, TableName: tables.Nominations, Persons: persons}
	votes := &DynamoVoteStorage{Client: client, TableName: tables.Votes}
	points := &DynamoPointReasonStorage{Client: client, TableName: tables.PointReasons}

	return &Backend{
		Name:         "keyvalue",
		Persons:      persons,
		Nominations:  nominations,
		Votes:        votes,
		PointReasons: points,
		Admins:       &DynamoAdminStorage{Client: client, TableName: tables.Admins},
		Ledger: &DynamoLedgerStorage{
			Client:       client,
			Tables:       tables,
			persons:      persons,
			nominations:  nominations,
			votes:        votes,
			pointReasons: points,
		},
	}
}

// EnsureDynamoTables creates any missing table with on-demand billing. Votes use a
// composite key (nomination id, vote id); every other table is keyed by PK alone.
func EnsureDynamoTables(ctx context.Context, client *dynamodb.Client, tables DynamoTables) error {
	existing := make(map[string]bool)
	paginator := dynamodb.NewListTablesPaginator(client, &dynamodb.ListTablesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("list tables: %w", err)
		}
		for _, name := range page.TableNames {
			existing[name] = true
		}
	}

	for _, name := range []string{tables.Persons, tables.Nominations, tables.PointReasons, tables.Admins, tables.Votes} {
		if existing[name] {
			continue
		}
		input := &dynamodb.CreateTableInput{
			TableName:   aws.String(name),
			BillingMode: types.BillingModePayPerRequest,
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String("PK"), AttributeType: types.ScalarAttributeTypeS},
			},
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("PK"), KeyType: types.KeyTypeHash},
			},
		}
		if name == tables.Votes {
			input.AttributeDefinitions = append(input.AttributeDefinitions,
				types.AttributeDefinition{AttributeName: aws.String("SK"), AttributeType: types.ScalarAttributeTypeS})
			input.KeySchema = append(input.KeySchema,
				types.KeySchemaElement{AttributeName: aws.String("SK"), KeyType: types.KeyTypeRange})
		}
		if _, err := client.CreateTable(ctx, input); err != nil {
			return fmt.Errorf("create table %s: %w", name, err)
		}

		waiter := dynamodb.NewTableExistsWaiter(client)
		if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(name)}, time.Minute); err != nil {
			return fmt.Errorf("wait for table %s: %w", name, err)
		}
		logging.Log.Infof("DYNAMO: created table %s", name)
	}
	return nil
}

func stringKey(id string) (map[string]types.AttributeValue, error) {
	return attributevalue.MarshalMap(map[string]string{"PK": id})
}

func isConditionalFailure(err error) bool {
	var cce *types.ConditionalCheckFailedException
	if errors.As(err, &cce) {
		return true
	}
	var tce *types.TransactionCanceledException
	if errors.As(err, &tce) {
		for _, reason := range tce.CancellationReasons {
			if aws.ToString(reason.Code) == "ConditionalCheckFailed" {
				return true
			}
		}
	}
	return false
}

type batchWriter func(ctx context.Context, in *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)

const maxBatchAttempts = 8

// writeBatch sends requests and resends whatever comes back unprocessed, backing off
// between attempts, until nothing is left or the attempts run out.
func writeBatch(ctx context.Context, write batchWriter, requests map[string][]types.WriteRequest) error {
	backoff := 50 * time.Millisecond
	for attempt := 1; len(requests) > 0; attempt++ {
		out, err := write(ctx, &dynamodb.BatchWriteItemInput{RequestItems: requests})
		if err != nil {
			return err
		}
		requests = out.UnprocessedItems
		if len(requests) == 0 {
			return nil
		}
		if attempt == maxBatchAttempts {
			return fmt.Errorf("batch write: %d tables still unprocessed after %d attempts", len(requests), attempt)
		}

		logging.Log.Warnf("DYNAMO: batch write left items unprocessed, retry %d in %s", attempt, backoff)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return nil
}

func scanAll[T any](ctx context.Context, client *dynamodb.Client, input *dynamodb.ScanInput) ([]*T, error) {
	var out []*T
	paginator := dynamodb.NewScanPaginator(client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var items []*T
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		out = append(out, items...)
	}
	return out, nil
}

func mustMarshal(v any) types.AttributeValue {
	av, err := attributevalue.Marshal(v)
	if err != nil {
		// Only called with strings, ints and times.
		panic(err)
	}
	return av
}
