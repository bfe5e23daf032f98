package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"exam-tutor/internal/domain"
)

const (
	pkTranscript     = "TRANSCRIPT"
	skPrefixExchange = "EXCH#"
	pkCounter        = "COUNTER"
	skCounter        = "EXCHANGE"
)

// dynamodbAPI is the minimal DynamoDB interface required by DynamoStore.
// Defined here for testability.
type dynamodbAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// DynamoStore keeps the transcript in a single DynamoDB partition. Ids come
// from an atomic counter item, so they stay unique across concurrent Lambda
// instances. A failed put after a successful increment leaves a gap.
type DynamoStore struct {
	api       dynamodbAPI
	tableName string
	now       func() time.Time
}

// NewDynamoStore creates a transcript store backed by the given DynamoDB table.
func NewDynamoStore(api dynamodbAPI, tableName string) (*DynamoStore, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	return &DynamoStore{api: api, tableName: tableName, now: time.Now}, nil
}

// exchangeSK zero-pads the id so lexical sort key order equals id order.
func exchangeSK(id int64) string {
	return fmt.Sprintf("%s%020d", skPrefixExchange, id)
}

// Save takes the next id from the counter item and writes ex under it. The
// put is conditional so an id is never overwritten.
func (s *DynamoStore) Save(ctx context.Context, ex domain.Exchange) (domain.Exchange, error) {
	id, err := s.nextID(ctx)
	if err != nil {
		return domain.Exchange{}, fmt.Errorf("repository: Save: %w", err)
	}
	ex.ID = id
	ex.Timestamp = s.now().UTC()

	_, err = s.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                exchangeItem(ex),
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		return domain.Exchange{}, fmt.Errorf("repository: Save put item: %w", err)
	}
	return ex, nil
}

func (s *DynamoStore) nextID(ctx context.Context) (int64, error) {
	out, err := s.api.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: pkCounter},
			"SK": &types.AttributeValueMemberS{Value: skCounter},
		},
		UpdateExpression: aws.String("ADD seq :one"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, fmt.Errorf("increment counter: %w", err)
	}
	if out == nil {
		return 0, errors.New("increment counter: empty response")
	}
	seq, err := intAttr(out.Attributes, "seq")
	if err != nil {
		return 0, fmt.Errorf("increment counter: %w", err)
	}
	return seq, nil
}

// ListAll queries every exchange item, following pagination.
func (s *DynamoStore) ListAll(ctx context.Context) ([]domain.Exchange, error) {
	return s.query(ctx, "ListAll", "", "")
}

func (s *DynamoStore) ListBySubject(ctx context.Context, subject string) ([]domain.Exchange, error) {
	return s.query(ctx, "ListBySubject", "subject", subject)
}

func (s *DynamoStore) ListByExamType(ctx context.Context, examType string) ([]domain.Exchange, error) {
	return s.query(ctx, "ListByExamType", "examType", examType)
}

// query pages through every exchange item, optionally filtered by equality on
// one attribute.
func (s *DynamoStore) query(ctx context.Context, op, field, value string) ([]domain.Exchange, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: pkTranscript},
			":prefix": &types.AttributeValueMemberS{Value: skPrefixExchange},
		},
		ScanIndexForward: aws.Bool(true),
	}
	if field != "" {
		in.FilterExpression = aws.String("#f = :v")
		in.ExpressionAttributeNames = map[string]string{"#f": field}
		in.ExpressionAttributeValues[":v"] = &types.AttributeValueMemberS{Value: value}
	}

	out := []domain.Exchange{}
	for {
		page, err := s.api.Query(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("repository: %s query: %w", op, err)
		}
		for _, item := range page.Items {
			ex, err := itemToExchange(item)
			if err != nil {
				return nil, fmt.Errorf("repository: %s unmarshal: %w", op, err)
			}
			out = append(out, ex)
		}
		if len(page.LastEvaluatedKey) == 0 {
			break
		}
		in.ExclusiveStartKey = page.LastEvaluatedKey
	}
	sortByID(out)
	return out, nil
}

func exchangeItem(ex domain.Exchange) map[string]types.AttributeValue {
	item := map[string]types.AttributeValue{
		"PK":         &types.AttributeValueMemberS{Value: pkTranscript},
		"SK":         &types.AttributeValueMemberS{Value: exchangeSK(ex.ID)},
		"id":         &types.AttributeValueMemberN{Value: strconv.FormatInt(ex.ID, 10)},
		"question":   &types.AttributeValueMemberS{Value: ex.Question},
		"answer":     &types.AttributeValueMemberS{Value: ex.Answer},
		"timestamp":  &types.AttributeValueMemberS{Value: ex.Timestamp.Format(time.RFC3339Nano)},
		"isFallback": &types.AttributeValueMemberBOOL{Value: ex.IsFallback},
	}
	if ex.Subject != "" {
		item["subject"] = &types.AttributeValueMemberS{Value: ex.Subject}
	}
	if ex.ExamType != "" {
		item["examType"] = &types.AttributeValueMemberS{Value: ex.ExamType}
	}
	return item
}

func itemToExchange(item map[string]types.AttributeValue) (domain.Exchange, error) {
	id, err := intAttr(item, "id")
	if err != nil {
		return domain.Exchange{}, err
	}
	question, err := strAttr(item, "question")
	if err != nil {
		return domain.Exchange{}, err
	}
	answer, err := strAttr(item, "answer")
	if err != nil {
		return domain.Exchange{}, err
	}
	rawTS, err := strAttr(item, "timestamp")
	if err != nil {
		return domain.Exchange{}, err
	}
	ts, err := time.Parse(time.RFC3339Nano, rawTS)
	if err != nil {
		return domain.Exchange{}, fmt.Errorf("repository: parse attribute \"timestamp\": %w", err)
	}
	subject, _ := strAttr(item, "subject")   // optional
	examType, _ := strAttr(item, "examType") // optional

	fallback := false
	if v, ok := item["isFallback"].(*types.AttributeValueMemberBOOL); ok {
		fallback = v.Value
	}

	return domain.Exchange{
		ID:         id,
		Question:   question,
		Answer:     answer,
		Subject:    subject,
		ExamType:   examType,
		Timestamp:  ts,
		IsFallback: fallback,
	}, nil
}

func strAttr(item map[string]types.AttributeValue, key string) (string, error) {
	v, ok := item[key]
	if !ok {
		return "", fmt.Errorf("repository: missing attribute %q", key)
	}
	s, ok := v.(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("repository: attribute %q is not a string", key)
	}
	return s.Value, nil
}

func intAttr(item map[string]types.AttributeValue, key string) (int64, error) {
	v, ok := item[key]
	if !ok {
		return 0, fmt.Errorf("repository: missing attribute %q", key)
	}
	n, ok := v.(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("repository: attribute %q is not a number", key)
	}
	parsed, err := strconv.ParseInt(n.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("repository: parse attribute %q: %w", key, err)
	}
	return parsed, nil
}
