package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"

	"exam-tutor/internal/domain"
)

type fakeDynamo struct {
	seq          int64
	updateErr    error
	putErr       error
	queryPages   []*dynamodb.QueryOutput
	queryErr     error
	queryCalls   int
	lastUpdateIn *dynamodb.UpdateItemInput
	lastPutInput *dynamodb.PutItemInput
	queryInputs  []dynamodb.QueryInput
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.lastUpdateIn = in
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.seq++
	return &dynamodb.UpdateItemOutput{Attributes: map[string]types.AttributeValue{
		"seq": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", f.seq)},
	}}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.lastPutInput = in
	return &dynamodb.PutItemOutput{}, f.putErr
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.queryInputs = append(f.queryInputs, *in)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	if f.queryCalls >= len(f.queryPages) {
		return &dynamodb.QueryOutput{}, nil
	}
	out := f.queryPages[f.queryCalls]
	f.queryCalls++
	return out, nil
}

func makeExchangeItem(id int64, subject, examType string, fallback bool) map[string]types.AttributeValue {
	return exchangeItem(domain.Exchange{
		ID:         id,
		Question:   fmt.Sprintf("q%d", id),
		Answer:     fmt.Sprintf("a%d", id),
		Subject:    subject,
		ExamType:   examType,
		Timestamp:  time.Date(2024, 3, 1, 10, 0, int(id), 0, time.UTC),
		IsFallback: fallback,
	})
}

func mustNewDynamoStore(t *testing.T, db *fakeDynamo) *DynamoStore {
	t.Helper()
	s, err := NewDynamoStore(db, "test-table")
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }
	return s
}

func TestNewDynamoStore_Validation(t *testing.T) {
	_, err := NewDynamoStore(nil, "t")
	require.Error(t, err)

	_, err = NewDynamoStore(&fakeDynamo{}, "  ")
	require.Error(t, err)
}

func TestDynamoSave_AssignsCounterIDAndWritesItem(t *testing.T) {
	db := &fakeDynamo{seq: 41}
	s := mustNewDynamoStore(t, db)

	saved, err := s.Save(context.Background(), domain.Exchange{
		ID:       999,
		Question: "What is inertia?",
		Answer:   "Resistance to change in motion.",
		Subject:  "Physics",
	})
	require.NoError(t, err)
	require.Equal(t, int64(42), saved.ID)
	require.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), saved.Timestamp)

	require.Equal(t, "ADD seq :one", aws.ToString(db.lastUpdateIn.UpdateExpression))
	require.Equal(t, types.ReturnValueUpdatedNew, db.lastUpdateIn.ReturnValues)

	item := db.lastPutInput.Item
	require.Equal(t, "test-table", aws.ToString(db.lastPutInput.TableName))
	require.Contains(t, aws.ToString(db.lastPutInput.ConditionExpression), "attribute_not_exists")
	require.Equal(t, pkTranscript, item["PK"].(*types.AttributeValueMemberS).Value)
	require.Equal(t, "EXCH#00000000000000000042", item["SK"].(*types.AttributeValueMemberS).Value)
	require.Equal(t, "Physics", item["subject"].(*types.AttributeValueMemberS).Value)
	_, hasExam := item["examType"]
	require.False(t, hasExam)
	require.False(t, item["isFallback"].(*types.AttributeValueMemberBOOL).Value)
}

func TestDynamoSave_CounterError(t *testing.T) {
	db := &fakeDynamo{updateErr: errors.New("throttled")}
	s := mustNewDynamoStore(t, db)

	_, err := s.Save(context.Background(), domain.Exchange{Question: "q", Answer: "a"})
	require.Error(t, err)
	require.ErrorIs(t, err, db.updateErr)
	require.Nil(t, db.lastPutInput)
}

func TestDynamoSave_PutError(t *testing.T) {
	db := &fakeDynamo{putErr: errors.New("conditional check failed")}
	s := mustNewDynamoStore(t, db)

	_, err := s.Save(context.Background(), domain.Exchange{Question: "q", Answer: "a"})
	require.ErrorIs(t, err, db.putErr)
}

func TestDynamoListAll_PaginatesAndSorts(t *testing.T) {
	lastKey := map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pkTranscript},
		"SK": &types.AttributeValueMemberS{Value: exchangeSK(2)},
	}
	db := &fakeDynamo{queryPages: []*dynamodb.QueryOutput{
		{Items: []map[string]types.AttributeValue{
			makeExchangeItem(2, "Chemistry", "", false),
			makeExchangeItem(1, "Physics", "JEE", true),
		}, LastEvaluatedKey: lastKey},
		{Items: []map[string]types.AttributeValue{
			makeExchangeItem(3, "", "NEET", false),
		}},
	}}
	s := mustNewDynamoStore(t, db)

	got, err := s.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, []int64{1, 2, 3}, []int64{got[0].ID, got[1].ID, got[2].ID})
	require.True(t, got[0].IsFallback)
	require.Equal(t, "JEE", got[0].ExamType)
	require.Equal(t, "q3", got[2].Question)

	require.Len(t, db.queryInputs, 2)
	require.Nil(t, db.queryInputs[0].ExclusiveStartKey)
	require.Equal(t, lastKey, db.queryInputs[1].ExclusiveStartKey)
	require.Nil(t, db.queryInputs[0].FilterExpression)
}

func TestDynamoListAll_EmptyIsNonNil(t *testing.T) {
	s := mustNewDynamoStore(t, &fakeDynamo{})
	got, err := s.ListAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestDynamoListBySubject_UsesFilter(t *testing.T) {
	db := &fakeDynamo{queryPages: []*dynamodb.QueryOutput{
		{Items: []map[string]types.AttributeValue{makeExchangeItem(5, "Biology", "", false)}},
	}}
	s := mustNewDynamoStore(t, db)

	got, err := s.ListBySubject(context.Background(), "Biology")
	require.NoError(t, err)
	require.Len(t, got, 1)

	in := db.queryInputs[0]
	require.Equal(t, "#f = :v", aws.ToString(in.FilterExpression))
	require.Equal(t, "subject", in.ExpressionAttributeNames["#f"])
	require.Equal(t, "Biology", in.ExpressionAttributeValues[":v"].(*types.AttributeValueMemberS).Value)
}

func TestDynamoListByExamType_UsesFilter(t *testing.T) {
	db := &fakeDynamo{}
	s := mustNewDynamoStore(t, db)

	_, err := s.ListByExamType(context.Background(), "JEE")
	require.NoError(t, err)
	require.Equal(t, "examType", db.queryInputs[0].ExpressionAttributeNames["#f"])
}

func TestDynamoList_QueryError(t *testing.T) {
	db := &fakeDynamo{queryErr: errors.New("boom")}
	s := mustNewDynamoStore(t, db)

	_, err := s.ListAll(context.Background())
	require.ErrorIs(t, err, db.queryErr)
}

func TestDynamoList_MalformedItem(t *testing.T) {
	item := makeExchangeItem(1, "Physics", "", false)
	delete(item, "answer")
	db := &fakeDynamo{queryPages: []*dynamodb.QueryOutput{{Items: []map[string]types.AttributeValue{item}}}}
	s := mustNewDynamoStore(t, db)

	_, err := s.ListAll(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "answer")
}

func TestExchangeSK_SortsLexically(t *testing.T) {
	require.Less(t, exchangeSK(9), exchangeSK(10))
	require.Less(t, exchangeSK(99), exchangeSK(100))
}
