package paramstore

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/require"
)

type fakeSSM struct {
	out    *ssm.GetParameterOutput
	err    error
	lastIn *ssm.GetParameterInput
}

func (f *fakeSSM) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.lastIn = in
	return f.out, f.err
}

func tokenParam(name string) *ssm.GetParameterOutput {
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{
		Name:    aws.String(name),
		Value:   aws.String(`{"token":"sk-test"}`),
		Type:    types.ParameterTypeSecureString,
		Version: 3,
	}}
}

func TestNew_NilAPI(t *testing.T) {
	_, err := New(nil)
	require.ErrorContains(t, err, "must not be nil")
}

func TestLookup_ReturnsMetadataAndDecrypts(t *testing.T) {
	api := &fakeSSM{out: tokenParam("/exam-tutor/open-ai-token")}
	client, err := New(api)
	require.NoError(t, err)

	p, err := client.Lookup(context.Background(), "  /exam-tutor/open-ai-token ")
	require.NoError(t, err)
	require.Equal(t, Parameter{
		Name:    "/exam-tutor/open-ai-token",
		Value:   `{"token":"sk-test"}`,
		Type:    "SecureString",
		Version: 3,
	}, p)
	require.Equal(t, "/exam-tutor/open-ai-token", aws.ToString(api.lastIn.Name))
	require.True(t, aws.ToBool(api.lastIn.WithDecryption))
}

func TestLookup_WithoutDecryption(t *testing.T) {
	api := &fakeSSM{out: tokenParam("p")}
	client, err := New(api, WithoutDecryption())
	require.NoError(t, err)

	_, err = client.Lookup(context.Background(), "p")
	require.NoError(t, err)
	require.False(t, aws.ToBool(api.lastIn.WithDecryption))
}

func TestGetParameter_ValueOnly(t *testing.T) {
	client, err := New(&fakeSSM{out: tokenParam("p")})
	require.NoError(t, err)

	v, err := client.GetParameter(context.Background(), "p")
	require.NoError(t, err)
	require.Equal(t, `{"token":"sk-test"}`, v)
}

func TestLookup_Errors(t *testing.T) {
	cases := []struct {
		name     string
		api      *fakeSSM
		param    string
		contains string
		notFound bool
	}{
		{name: "missing value", api: &fakeSSM{out: &ssm.GetParameterOutput{Parameter: &types.Parameter{Name: aws.String("p")}}}, param: "p", contains: "missing value"},
		{name: "nil output", api: &fakeSSM{}, param: "p", contains: "missing value"},
		{name: "not found", api: &fakeSSM{err: &types.ParameterNotFound{Message: aws.String("nope")}}, param: "/exam-tutor/open-ai-token", contains: "/exam-tutor/open-ai-token", notFound: true},
		{name: "api error", api: &fakeSSM{err: errors.New("boom")}, param: "p", contains: "boom"},
		{name: "blank name", api: &fakeSSM{}, param: "  ", contains: "required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, err := New(tc.api)
			require.NoError(t, err)
			_, err = client.GetParameter(context.Background(), tc.param)
			require.ErrorContains(t, err, tc.contains)
			if tc.notFound {
				require.ErrorIs(t, err, ErrNotFound)
			} else {
				require.NotErrorIs(t, err, ErrNotFound)
			}
		})
	}
}

func TestLookup_ClientNotInitialized(t *testing.T) {
	_, err := (&Client{}).Lookup(context.Background(), "p")
	require.ErrorContains(t, err, "not initialized")
}
