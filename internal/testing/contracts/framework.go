package contracts

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/xeipuuv/gojsonschema"

	"github.com/deprtest/e2e/internal/apiclient"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Schema names shipped with the package.
const (
	SchemaUser    = "user"
	SchemaContact = "contact"
	SchemaLogin   = "login"
	SchemaPage    = "page"
	SchemaError   = "error"
)

var (
	schemaMu    sync.Mutex
	schemaCache = map[string]*gojsonschema.Schema{}
)

// Contract defines an API contract to be tested
type Contract struct {
	Name        string
	Description string
	Method      string
	Path        string
	// Anonymous sends the request without the client's bearer token.
	Anonymous bool
	Body      interface{}
	Expected  Response
}

// Response defines expected response characteristics
type Response struct {
	Status      int
	Headers     map[string]string
	Schema      string // name of an embedded schema, "" to skip
	Validations []Validation
}

// Validation is a custom validation function
type Validation func(body []byte) error

// ContractTest runs contracts against a live (or fake) API
type ContractTest struct {
	t         *testing.T
	contracts []Contract
	client    *apiclient.Client
}

// NewContractTest creates a new contract test runner
func NewContractTest(t *testing.T, client *apiclient.Client) *ContractTest {
	return &ContractTest{
		t:      t,
		client: client,
	}
}

// AddContract adds a contract to test
func (ct *ContractTest) AddContract(contract ...Contract) {
	ct.contracts = append(ct.contracts, contract...)
}

// Run executes all contract tests
func (ct *ContractTest) Run() {
	for _, contract := range ct.contracts {
		ct.t.Run(contract.Name, func(t *testing.T) {
			for _, err := range Check(context.Background(), ct.client, contract) {
				t.Error(err)
			}
		})
	}
}

// Check sends the contract's request and returns every violation found.
func Check(ctx context.Context, client *apiclient.Client, contract Contract) []error {
	if contract.Anonymous {
		client = client.Anonymous()
	}

	resp, err := send(ctx, client, contract)
	if err != nil {
		return []error{err}
	}

	var errs []error
	if resp.StatusCode != contract.Expected.Status {
		errs = append(errs, fmt.Errorf("status code mismatch: expected %d, got %d (body: %s)",
			contract.Expected.Status, resp.StatusCode, truncate(resp.Text(), 200)))
	}

	for key, expectedValue := range contract.Expected.Headers {
		if actual := resp.Header.Get(key); !strings.HasPrefix(actual, expectedValue) {
			errs = append(errs, fmt.Errorf("header %s mismatch: expected %s, got %s", key, expectedValue, actual))
		}
	}

	if contract.Expected.Schema != "" {
		if err := ValidateSchema(contract.Expected.Schema, resp.Body); err != nil {
			errs = append(errs, err)
		}
	}

	for _, validation := range contract.Expected.Validations {
		if err := validation(resp.Body); err != nil {
			errs = append(errs, fmt.Errorf("custom validation failed: %w", err))
		}
	}
	return errs
}

func send(ctx context.Context, client *apiclient.Client, contract Contract) (*apiclient.Response, error) {
	switch contract.Method {
	case http.MethodGet:
		return client.Get(ctx, contract.Path, nil)
	case http.MethodPost:
		return client.Post(ctx, contract.Path, contract.Body)
	case http.MethodPut:
		return client.Put(ctx, contract.Path, contract.Body)
	case http.MethodDelete:
		return client.Delete(ctx, contract.Path)
	default:
		return nil, fmt.Errorf("unsupported method %q", contract.Method)
	}
}

func loadSchema(name string) (*gojsonschema.Schema, error) {
	schemaMu.Lock()
	defer schemaMu.Unlock()
	if s, ok := schemaCache[name]; ok {
		return s, nil
	}
	raw, err := schemaFS.ReadFile("schemas/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("unknown schema %q: %w", name, err)
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid schema %q: %w", name, err)
	}
	schemaCache[name] = s
	return s, nil
}

// ValidateSchema checks body against the named embedded JSON schema.
func ValidateSchema(name string, body []byte) error {
	schema, err := loadSchema(name)
	if err != nil {
		return err
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("schema %s: body is not JSON: %w", name, err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema %s validation failed: %s", name, strings.Join(msgs, "; "))
}

// ItemsMatch validates every element of a paginated body against a schema.
func ItemsMatch(schemaName string) Validation {
	return func(body []byte) error {
		var page struct {
			Items []json.RawMessage `json:"items"`
		}
		if err := json.Unmarshal(body, &page); err != nil {
			return err
		}
		var errs []error
		for i, item := range page.Items {
			if err := ValidateSchema(schemaName, item); err != nil {
				errs = append(errs, fmt.Errorf("item %d: %w", i, err))
			}
		}
		return errors.Join(errs...)
	}
}

// Helper function to check if response contains expected fields
func HasFields(fields ...string) Validation {
	return func(body []byte) error {
		var data map[string]interface{}
		if err := json.Unmarshal(body, &data); err != nil {
			return err
		}

		for _, field := range fields {
			if _, ok := data[field]; !ok {
				return fmt.Errorf("missing field: %s", field)
			}
		}
		return nil
	}
}

// FieldEquals checks a top-level field after a JSON round trip, so numbers
// compare as float64.
func FieldEquals(field string, expected interface{}) Validation {
	return func(body []byte) error {
		var data map[string]interface{}
		if err := json.Unmarshal(body, &data); err != nil {
			return err
		}
		want, err := normalize(expected)
		if err != nil {
			return err
		}
		if got := data[field]; fmt.Sprint(got) != fmt.Sprint(want) {
			return fmt.Errorf("field %s: expected %v, got %v", field, want, got)
		}
		return nil
	}
}

// AllItemsHave checks that every element of "items" has field == expected.
func AllItemsHave(field string, expected interface{}) Validation {
	return func(body []byte) error {
		var page struct {
			Items []map[string]interface{} `json:"items"`
		}
		if err := json.Unmarshal(body, &page); err != nil {
			return err
		}
		want, err := normalize(expected)
		if err != nil {
			return err
		}
		for i, item := range page.Items {
			if fmt.Sprint(item[field]) != fmt.Sprint(want) {
				return fmt.Errorf("item %d: %s is %v, expected %v", i, field, item[field], want)
			}
		}
		return nil
	}
}

// IsErrorResponse validates the API error body format
func IsErrorResponse() Validation {
	return func(body []byte) error {
		return ValidateSchema(SchemaError, body)
	}
}

func normalize(v interface{}) (interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
