package storage

import (
	"context"

	"github.com/alex-pricope/nomination-board/auth"
	"github.com/alex-pricope/nomination-board/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type AdminStorage interface {
	// Authenticate returns ErrNotFound for an unknown username and for a wrong
	// password alike.
	Authenticate(ctx context.Context, username, password string) (*Admin, error)
	Create(ctx context.Context, admin *Admin) error
	Count(ctx context.Context) (int, error)
}

// checkCredentials runs a bcrypt comparison even when the user is unknown so both
// failure paths cost the same.
func checkCredentials(admin *Admin, password string) (*Admin, error) {
	hash := auth.DummyHash()
	if admin != nil {
		hash = admin.PasswordHash
	}
	if !auth.CheckPassword(hash, password) || admin == nil {
		return nil, ErrNotFound
	}
	return admin, nil
}

type DynamoAdminStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoAdminStorage) Authenticate(ctx context.Context, username, password string) (*Admin, error) {
	key, err := stringKey(username)
	if err != nil {
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("ADMIN: GetItem for %s failed: %v", username, err)
		return nil, err
	}

	var admin *Admin
	if out.Item != nil {
		admin = &Admin{}
		if err := attributevalue.UnmarshalMap(out.Item, admin); err != nil {
			logging.Log.Errorf("ADMIN: failed to unmarshal admin: %v", err)
			return nil, err
		}
	}
	return checkCredentials(admin, password)
}

func (s *DynamoAdminStorage) Create(ctx context.Context, admin *Admin) error {
	admin.prepare()
	item, err := attributevalue.MarshalMap(admin)
	if err != nil {
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		if isConditionalFailure(err) {
			logging.Log.Warnf("ADMIN: admin %s already exists", admin.Username)
			return ErrItemWithIDAlreadyExists
		}
		logging.Log.Errorf("ADMIN: failed to create admin: %v", err)
		return err
	}
	return nil
}

func (s *DynamoAdminStorage) Count(ctx context.Context) (int, error) {
	total := 0
	paginator := dynamodb.NewScanPaginator(s.Client, &dynamodb.ScanInput{
		TableName: &s.TableName,
		Select:    types.SelectCount,
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			logging.Log.Errorf("ADMIN: count scan failed: %v", err)
			return 0, err
		}
		total += int(page.Count)
	}
	return total, nil
}
