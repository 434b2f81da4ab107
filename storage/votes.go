package storage

import (
	"context"

	"github.com/alex-pricope/nomination-board/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type VoteStorage interface {
	GetByNomination(ctx context.Context, nominationID string) ([]*Vote, error)
	Create(ctx context.Context, vote *Vote) error
}

type DynamoVoteStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoVoteStorage) Create(ctx context.Context, vote *Vote) error {
	vote.prepare()
	item, err := attributevalue.MarshalMap(vote)
	if err != nil {
		logging.Log.Errorf("VOTE: failed to marshal vote: %v", err)
		return err
	}
	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		if isConditionalFailure(err) {
			return ErrItemWithIDAlreadyExists
		}
		logging.Log.Errorf("VOTE: failed to create vote: %v", err)
		return err
	}
	return nil
}

func (s *DynamoVoteStorage) GetByNomination(ctx context.Context, nominationID string) ([]*Vote, error) {
	input := &dynamodb.QueryInput{
		TableName:              &s.TableName,
		KeyConditionExpression: aws.String("PK = :nomination"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":nomination": &types.AttributeValueMemberS{Value: nominationID},
		},
	}

	var votes []*Vote
	paginator := dynamodb.NewQueryPaginator(s.Client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			logging.Log.Errorf("VOTE: failed to query votes by nomination: %v", err)
			return nil, err
		}
		var batch []*Vote
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			logging.Log.Errorf("VOTE: failed to unmarshal votes for nomination %s: %v", nominationID, err)
			return nil, err
		}
		votes = append(votes, batch...)
	}
	return votes, nil
}

func (s *DynamoVoteStorage) deleteByNomination(ctx context.Context, nominationID string) error {
	votes, err := s.GetByNomination(ctx, nominationID)
	if err != nil {
		return err
	}

	writeRequests := make([]types.WriteRequest, 0, len(votes))
	for _, v := range votes {
		writeRequests = append(writeRequests, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{
				Key: map[string]types.AttributeValue{
					"PK": &types.AttributeValueMemberS{Value: v.NominationID},
					"SK": &types.AttributeValueMemberS{Value: v.ID},
				},
			},
		})
	}

	for i := 0; i < len(writeRequests); i += 25 {
		end := min(i+25, len(writeRequests))
		err := writeBatch(ctx, s.Client.BatchWriteItem, map[string][]types.WriteRequest{
			s.TableName: writeRequests[i:end],
		})
		if err != nil {
			logging.Log.Errorf("VOTE: batch delete failed: %v", err)
			return err
		}
		logging.Log.Infof("VOTE: deleted batch of %d votes for nomination %s", end-i, nominationID)
	}
	return nil
}
