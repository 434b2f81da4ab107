package storage

import (
	"context"
	"strings"

	"github.com/alex-pricope/nomination-board/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type PersonStorage interface {
	Get(ctx context.Context, id string) (*Person, error)
	GetAll(ctx context.Context) ([]*Person, error)
	Create(ctx context.Context, person *Person) error
	Update(ctx context.Context, id string, patch PersonPatch) (*Person, error)
	Delete(ctx context.Context, id string) error
}

type DynamoPersonStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoPersonStorage) Get(ctx context.Context, id string) (*Person, error) {
	key, err := stringKey(id)
	if err != nil {
		logging.Log.Errorf("PERSON: failed to marshal key for ID %s: %v", id, err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("PERSON: GetItem for ID %s failed: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}

	var person Person
	if err := attributevalue.UnmarshalMap(out.Item, &person); err != nil {
		logging.Log.Errorf("PERSON: failed to unmarshal person: %v", err)
		return nil, err
	}
	return &person, nil
}

func (s *DynamoPersonStorage) GetAll(ctx context.Context) ([]*Person, error) {
	persons, err := scanAll[Person](ctx, s.Client, &dynamodb.ScanInput{TableName: &s.TableName})
	if err != nil {
		logging.Log.Errorf("PERSON: scan failed: %v", err)
		return nil, err
	}
	return persons, nil
}

func (s *DynamoPersonStorage) Create(ctx context.Context, person *Person) error {
	person.prepare()
	item, err := attributevalue.MarshalMap(person)
	if err != nil {
		logging.Log.Errorf("PERSON: failed to marshal person: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		if isConditionalFailure(err) {
			logging.Log.Warnf("PERSON: item with ID %s already exists", person.ID)
			return ErrItemWithIDAlreadyExists
		}
		logging.Log.Errorf("PERSON: failed to create person: %v", err)
		return err
	}
	return nil
}

func (s *DynamoPersonStorage) Update(ctx context.Context, id string, patch PersonPatch) (*Person, error) {
	key, err := stringKey(id)
	if err != nil {
		return nil, err
	}

	sets := []string{"#UpdatedAt = :updatedAt"}
	names := map[string]string{"#UpdatedAt": "UpdatedAt"}
	values := map[string]types.AttributeValue{":updatedAt": mustMarshal(now())}
	if patch.Name != nil {
		sets = append(sets, "#Name = :name")
		names["#Name"] = "Name"
		values[":name"] = mustMarshal(*patch.Name)
	}
	if patch.Description != nil {
		sets = append(sets, "#Description = :description")
		names["#Description"] = "Description"
		values[":description"] = mustMarshal(*patch.Description)
	}
	if patch.Points != nil {
		sets = append(sets, "#Points = :points")
		names["#Points"] = "Points"
		values[":points"] = mustMarshal(*patch.Points)
	}

	out, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 &s.TableName,
		Key:                       key,
		UpdateExpression:          aws.String("SET " + strings.Join(sets, ", ")),
		ConditionExpression:       aws.String("attribute_exists(PK)"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalFailure(err) {
			return nil, ErrNotFound
		}
		logging.Log.Errorf("PERSON: failed to update person %s: %v", id, err)
		return nil, err
	}

	var person Person
	if err := attributevalue.UnmarshalMap(out.Attributes, &person); err != nil {
		logging.Log.Errorf("PERSON: failed to unmarshal updated person: %v", err)
		return nil, err
	}
	return &person, nil
}

func (s *DynamoPersonStorage) Delete(ctx context.Context, id string) error {
	key, err := stringKey(id)
	if err != nil {
		logging.Log.Errorf("PERSON: failed to marshal delete key for ID %s: %v", id, err)
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
		logging.Log.Errorf("PERSON: failed to delete person with ID %s: %v", id, err)
		return err
	}
	logging.Log.Infof("PERSON: deleted person with ID %s", id)
	return nil
}
