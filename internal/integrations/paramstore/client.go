package paramstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

// ErrNotFound is returned when the named parameter does not exist.
var ErrNotFound = errors.New("paramstore: parameter not found")

// ssmAPI is the slice of *ssm.Client used here.
type ssmAPI interface {
	GetParameter(ctx context.Context, in *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// Getter resolves a parameter name to its value.
type Getter interface {
	GetParameter(ctx context.Context, name string) (string, error)
}

// Parameter is one resolved SSM parameter.
type Parameter struct {
	Name    string
	Value   string
	Type    string
	Version int64
}

// Client reads parameters from AWS SSM Parameter Store. SecureString values
// are decrypted unless WithoutDecryption is set.
type Client struct {
	api     ssmAPI
	decrypt bool
}

type Option func(*Client)

// WithoutDecryption returns SecureString values as stored.
func WithoutDecryption() Option {
	return func(c *Client) { c.decrypt = false }
}

// New creates a Client over the given SSM API.
func New(api ssmAPI, opts ...Option) (*Client, error) {
	if api == nil {
		return nil, errors.New("paramstore: api must not be nil")
	}
	c := &Client{api: api, decrypt: true}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Lookup fetches a parameter with its metadata.
func (c *Client) Lookup(ctx context.Context, name string) (Parameter, error) {
	if c == nil || c.api == nil {
		return Parameter{}, errors.New("paramstore: client not initialized")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Parameter{}, errors.New("paramstore: name is required")
	}

	out, err := c.api.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(c.decrypt),
	})
	if err != nil {
		var notFound *types.ParameterNotFound
		if errors.As(err, &notFound) {
			return Parameter{}, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return Parameter{}, fmt.Errorf("paramstore: get parameter %q: %w", name, err)
	}
	if out == nil || out.Parameter == nil || out.Parameter.Value == nil {
		return Parameter{}, fmt.Errorf("paramstore: parameter %q missing value", name)
	}

	p := out.Parameter
	resolved := Parameter{
		Name:    name,
		Value:   *p.Value,
		Type:    string(p.Type),
		Version: p.Version,
	}
	if p.Name != nil {
		resolved.Name = *p.Name
	}
	return resolved, nil
}

// GetParameter returns only the value; it satisfies Getter.
func (c *Client) GetParameter(ctx context.Context, name string) (string, error) {
	p, err := c.Lookup(ctx, name)
	if err != nil {
		return "", err
	}
	return p.Value, nil
}
