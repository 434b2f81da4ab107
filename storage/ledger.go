package storage

import (
	"context"
	"errors"

	"github.com/alex-pricope/nomination-board/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/samber/lo"
)

// DynamoLedgerStorage runs multi-item writes through TransactWriteItems so point
// totals and ledger entries move together.
type DynamoLedgerStorage struct {
	Client *dynamodb.Client
	Tables DynamoTables

	persons      *DynamoPersonStorage
	nominations  *DynamoNominationStorage
	votes        *DynamoVoteStorage
	pointReasons *DynamoPointReasonStorage
}

func (s *DynamoLedgerStorage) Award(ctx context.Context, entry *PointReason) (*Person, error) {
	if _, err := s.persons.Get(ctx, entry.PersonID); err != nil {
		return nil, err
	}

	entry.prepare()
	items, err := s.awardItems(entry)
	if err != nil {
		return nil, err
	}
	if err := s.transact(ctx, items); err != nil {
		if errors.Is(err, ErrConditionFailed) {
			// The person vanished between the read and the write.
			return nil, ErrNotFound
		}
		return nil, err
	}
	logging.Log.Infof("POINTS: awarded %d to person %s (%s)", entry.PointsAdded, entry.PersonID, entry.ID)
	return s.persons.Get(ctx, entry.PersonID)
}

func (s *DynamoLedgerStorage) Resolve(ctx context.Context, nominationID string, status NominationStatus, entry *PointReason) (*Nomination, error) {
	nomination, err := s.nominations.Get(ctx, nominationID)
	if err != nil {
		return nil, err
	}
	if nomination.Status != NominationPending {
		return nil, ErrConditionFailed
	}

	key, err := stringKey(nominationID)
	if err != nil {
		return nil, err
	}
	items := []types.TransactWriteItem{{
		Update: &types.Update{
			TableName:           aws.String(s.Tables.Nominations),
			Key:                 key,
			UpdateExpression:    aws.String("SET #Status = :status, #UpdatedAt = :updatedAt"),
			ConditionExpression: aws.String("#Status = :pending"),
			ExpressionAttributeNames: map[string]string{
				"#Status":    "Status",
				"#UpdatedAt": "UpdatedAt",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":status":    mustMarshal(string(status)),
				":pending":   mustMarshal(string(NominationPending)),
				":updatedAt": mustMarshal(now()),
			},
		},
	}}

	if entry != nil {
		entry.prepare()
		awardItems, err := s.awardItems(entry)
		if err != nil {
			return nil, err
		}
		items = append(items, awardItems...)
	}

	if err := s.transact(ctx, items); err != nil {
		return nil, err
	}
	logging.Log.Infof("NOMINATION: %s resolved as %s", nominationID, status)

	resolved, err := s.nominations.Get(ctx, nominationID)
	if err != nil {
		return nil, err
	}
	if person, err := s.persons.Get(ctx, resolved.PersonID); err == nil {
		resolved.Person = person
	}
	return resolved, nil
}

func (s *DynamoLedgerStorage) Reverse(ctx context.Context, originalID string, reversal *PointReason) (*Person, error) {
	original, err := s.pointReasons.Get(ctx, originalID)
	if err != nil {
		return nil, err
	}
	if original.Voided() || original.PointsAdded <= 0 {
		return nil, ErrConditionFailed
	}

	reversal.PersonID = original.PersonID
	reversal.PointsAdded = -abs(original.PointsAdded)
	reversal.prepare()

	key, err := stringKey(originalID)
	if err != nil {
		return nil, err
	}
	items := []types.TransactWriteItem{{
		Update: &types.Update{
			TableName:           aws.String(s.Tables.PointReasons),
			Key:                 key,
			UpdateExpression:    aws.String("SET #VoidedAt = :voidedAt, #VoidedByID = :voidedBy"),
			ConditionExpression: aws.String("attribute_exists(PK) AND attribute_not_exists(#VoidedAt)"),
			ExpressionAttributeNames: map[string]string{
				"#VoidedAt":   "VoidedAt",
				"#VoidedByID": "VoidedByID",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":voidedAt": mustMarshal(reversal.CreatedAt),
				":voidedBy": mustMarshal(reversal.ID),
			},
		},
	}}
	awardItems, err := s.awardItems(reversal)
	if err != nil {
		return nil, err
	}
	items = append(items, awardItems...)

	if err := s.transact(ctx, items); err != nil {
		return nil, err
	}
	logging.Log.Infof("POINTS: reversed %s with %s for person %s", originalID, reversal.ID, reversal.PersonID)
	return s.persons.Get(ctx, reversal.PersonID)
}

// DeletePerson cannot fit into one transaction for large histories, so children go
// first and the person last; a failure midway leaves the person in place to retry.
func (s *DynamoLedgerStorage) DeletePerson(ctx context.Context, personID string) error {
	if _, err := s.persons.Get(ctx, personID); err != nil {
		return err
	}

	nominations, err := s.nominations.getByPerson(ctx, personID)
	if err != nil {
		return err
	}
	for _, n := range nominations {
		if err := s.votes.deleteByNomination(ctx, n.ID); err != nil {
			return err
		}
		key, err := stringKey(n.ID)
		if err != nil {
			return err
		}
		if _, err := s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(s.Tables.Nominations),
			Key:       key,
		}); err != nil {
			logging.Log.Errorf("NOMINATION: failed to delete nomination %s: %v", n.ID, err)
			return err
		}
	}

	reasons, err := s.pointReasons.GetByPerson(ctx, personID)
	if err != nil {
		return err
	}
	for _, r := range reasons {
		if err := s.pointReasons.Delete(ctx, r.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	}

	logging.Log.Infof("PERSON: cascading delete of %s removed %d nominations and %d ledger entries",
		personID, len(nominations), len(reasons))
	return s.persons.Delete(ctx, personID)
}

// Recount writes the ledger sum only if Points still holds the value read before
// the sum, so a transaction committed in between makes it fail instead of being
// overwritten.
func (s *DynamoLedgerStorage) Recount(ctx context.Context, personID string) (int, int, error) {
	person, err := s.persons.Get(ctx, personID)
	if err != nil {
		return 0, 0, err
	}
	entries, err := s.pointReasons.GetByPerson(ctx, personID)
	if err != nil {
		return 0, 0, err
	}
	total := lo.SumBy(entries, func(r *PointReason) int { return r.PointsAdded })
	if total == person.Points {
		return person.Points, total, nil
	}

	key, err := stringKey(personID)
	if err != nil {
		return 0, 0, err
	}
	_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.Tables.Persons),
		Key:                 key,
		UpdateExpression:    aws.String("SET #Points = :total, #UpdatedAt = :updatedAt"),
		ConditionExpression: aws.String("#Points = :stored"),
		ExpressionAttributeNames: map[string]string{
			"#Points":    "Points",
			"#UpdatedAt": "UpdatedAt",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":total":     mustMarshal(total),
			":stored":    mustMarshal(person.Points),
			":updatedAt": mustMarshal(now()),
		},
	})
	if err != nil {
		if isConditionalFailure(err) {
			return 0, 0, ErrConditionFailed
		}
		logging.Log.Errorf("POINTS: recount of %s failed: %v", personID, err)
		return 0, 0, err
	}
	return person.Points, total, nil
}

func (s *DynamoLedgerStorage) awardItems(entry *PointReason) ([]types.TransactWriteItem, error) {
	personKey, err := stringKey(entry.PersonID)
	if err != nil {
		return nil, err
	}
	item, err := attributevalue.MarshalMap(entry)
	if err != nil {
		logging.Log.Errorf("POINTS: failed to marshal point reason: %v", err)
		return nil, err
	}

	return []types.TransactWriteItem{
		{
			Update: &types.Update{
				TableName:                aws.String(s.Tables.Persons),
				Key:                      personKey,
				UpdateExpression:         aws.String("ADD #Points :delta SET #UpdatedAt = :updatedAt"),
				ConditionExpression:      aws.String("attribute_exists(PK)"),
				ExpressionAttributeNames: map[string]string{"#Points": "Points", "#UpdatedAt": "UpdatedAt"},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":delta":     mustMarshal(entry.PointsAdded),
					":updatedAt": mustMarshal(entry.CreatedAt),
				},
			},
		},
		{
			Put: &types.Put{
				TableName:           aws.String(s.Tables.PointReasons),
				Item:                item,
				ConditionExpression: aws.String("attribute_not_exists(PK)"),
			},
		},
	}, nil
}

func (s *DynamoLedgerStorage) transact(ctx context.Context, items []types.TransactWriteItem) error {
	_, err := s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	if err != nil {
		if isConditionalFailure(err) {
			logging.Log.Warnf("LEDGER: transaction rejected by condition: %v", err)
			return ErrConditionFailed
		}
		logging.Log.Errorf("LEDGER: transaction failed: %v", err)
		return err
	}
	return nil
}
