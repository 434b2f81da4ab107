package storage

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deleteRequests(ids ...string) []types.WriteRequest {
	out := make([]types.WriteRequest, 0, len(ids))
	for _, id := range ids {
		out = append(out, types.WriteRequest{DeleteRequest: &types.DeleteRequest{
			Key: map[string]types.AttributeValue{"PK": &types.AttributeValueMemberS{Value: id}},
		}})
	}
	return out
}

func TestWriteBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("Happy path - resends unprocessed items", func(t *testing.T) {
		var sent []int
		write := func(_ context.Context, in *dynamodb.BatchWriteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
			sent = append(sent, len(in.RequestItems["Votes"]))
			if len(sent) == 1 {
				// throttled: only the first item went through
				return &dynamodb.BatchWriteItemOutput{UnprocessedItems: map[string][]types.WriteRequest{
					"Votes": in.RequestItems["Votes"][1:],
				}}, nil
			}
			return &dynamodb.BatchWriteItemOutput{}, nil
		}

		err := writeBatch(ctx, write, map[string][]types.WriteRequest{"Votes": deleteRequests("a", "b", "c")})
		require.NoError(t, err)
		assert.Equal(t, []int{3, 2}, sent)
	})

	t.Run("Unhappy path - never drains", func(t *testing.T) {
		calls := 0
		write := func(_ context.Context, in *dynamodb.BatchWriteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
			calls++
			return &dynamodb.BatchWriteItemOutput{UnprocessedItems: in.RequestItems}, nil
		}

		ctx, cancel := context.WithCancel(ctx)
		cancel()
		err := writeBatch(ctx, write, map[string][]types.WriteRequest{"Votes": deleteRequests("a")})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}
