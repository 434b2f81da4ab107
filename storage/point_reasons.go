package storage

import (
	"context"

	"github.com/alex-pricope/nomination-board/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type PointReasonStorage interface {
	Get(ctx context.Context, id string) (*PointReason, error)
	GetByPerson(ctx context.Context, personID string) ([]*PointReason, error)
	Create(ctx context.Context, reason *PointReason) error
	Delete(ctx context.Context, id string) error
}

type DynamoPointReasonStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoPointReasonStorage) Get(ctx context.Context, id string) (*PointReason, error) {
	key, err := stringKey(id)
	if err != nil {
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("POINTS: GetItem for ID %s failed: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}

	var reason PointReason
	if err := attributevalue.UnmarshalMap(out.Item, &reason); err != nil {
		logging.Log.Errorf("POINTS: failed to unmarshal point reason: %v", err)
		return nil, err
	}
	return &reason, nil
}

func (s *DynamoPointReasonStorage) GetByPerson(ctx context.Context, personID string) ([]*PointReason, error) {
	reasons, err := scanAll[PointReason](ctx, s.Client, &dynamodb.ScanInput{
		TableName:                 &s.TableName,
		FilterExpression:          aws.String("PersonID = :personID"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":personID": mustMarshal(personID)},
	})
	if err != nil {
		logging.Log.Errorf("POINTS: scan for person %s failed: %v", personID, err)
		return nil, err
	}
	return reasons, nil
}

func (s *DynamoPointReasonStorage) Create(ctx context.Context, reason *PointReason) error {
	reason.prepare()
	item, err := attributevalue.MarshalMap(reason)
	if err != nil {
		logging.Log.Errorf("POINTS: failed to marshal point reason: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		if isConditionalFailure(err) {
			return ErrItemWithIDAlreadyExists
		}
		logging.Log.Errorf("POINTS: failed to create point reason: %v", err)
		return err
	}
	return nil
}

func (s *DynamoPointReasonStorage) Delete(ctx context.Context, id string) error {
	key, err := stringKey(id)
	if err != nil {
		return err
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           &s.TableName,
		Key:                 key,
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if err != nil {
		if isConditionalFailure(err) {
			return ErrNotFound
		}
		logging.Log.Errorf("POINTS: failed to delete point reason %s: %v", id, err)
		return err
	}
	return nil
}
