package storage

import (
	"context"

	"github.com/alex-pricope/nomination-board/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type NominationStorage interface {
	Get(ctx context.Context, id string) (*Nomination, error)
	// GetAll returns every nomination joined with its person. Nominations whose
	// person no longer exists come back with a nil Person.
	GetAll(ctx context.Context) ([]*Nomination, error)
	Create(ctx context.Context, nomination *Nomination) error
	UpdateStatus(ctx context.Context, id string, status NominationStatus) (*Nomination, error)
}

type DynamoNominationStorage struct {
	Client    *dynamodb.Client
	TableName string
	Persons   PersonStorage
}

func (s *DynamoNominationStorage) Get(ctx context.Context, id string) (*Nomination, error) {
	key, err := stringKey(id)
	if err != nil {
		logging.Log.Errorf("NOMINATION: failed to marshal key for ID %s: %v", id, err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("NOMINATION: GetItem for ID %s failed: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}

	var nomination Nomination
	if err := attributevalue.UnmarshalMap(out.Item, &nomination); err != nil {
		logging.Log.Errorf("NOMINATION: failed to unmarshal nomination: %v", err)
		return nil, err
	}
	return &nomination, nil
}

func (s *DynamoNominationStorage) GetAll(ctx context.Context) ([]*Nomination, error) {
	nominations, err := scanAll[Nomination](ctx, s.Client, &dynamodb.ScanInput{TableName: &s.TableName})
	if err != nil {
		logging.Log.Errorf("NOMINATION: scan failed: %v", err)
		return nil, err
	}

	persons, err := s.Persons.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*Person, len(persons))
	for _, p := range persons {
		byID[p.ID] = p
	}
	for _, n := range nominations {
		n.Person = byID[n.PersonID]
	}
	return nominations, nil
}

func (s *DynamoNominationStorage) Create(ctx context.Context, nomination *Nomination) error {
	nomination.prepare()
	item, err := attributevalue.MarshalMap(nomination)
	if err != nil {
		logging.Log.Errorf("NOMINATION: failed to marshal nomination: %v", err)
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
		logging.Log.Errorf("NOMINATION: failed to create nomination: %v", err)
		return err
	}
	return nil
}

func (s *DynamoNominationStorage) UpdateStatus(ctx context.Context, id string, status NominationStatus) (*Nomination, error) {
	key, err := stringKey(id)
	if err != nil {
		return nil, err
	}

	out, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           &s.TableName,
		Key:                 key,
		UpdateExpression:    aws.String("SET #Status = :status, #UpdatedAt = :updatedAt"),
		ConditionExpression: aws.String("attribute_exists(PK)"),
		ExpressionAttributeNames: map[string]string{
			"#Status":    "Status",
			"#UpdatedAt": "UpdatedAt",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":    mustMarshal(string(status)),
			":updatedAt": mustMarshal(now()),
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalFailure(err) {
			return nil, ErrNotFound
		}
		logging.Log.Errorf("NOMINATION: failed to update status of %s: %v", id, err)
		return nil, err
	}

	var nomination Nomination
	if err := attributevalue.UnmarshalMap(out.Attributes, &nomination); err != nil {
		return nil, err
	}
	return &nomination, nil
}

func (s *DynamoNominationStorage) getByPerson(ctx context.Context, personID string) ([]*Nomination, error) {
	return scanAll[Nomination](ctx, s.Client, &dynamodb.ScanInput{
		TableName:                 &s.TableName,
		FilterExpression:          aws.String("PersonID = :personID"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":personID": mustMarshal(personID)},
	})
}
