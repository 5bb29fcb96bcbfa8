package contracts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deprtest/e2e/internal/apiclient"
	"github.com/deprtest/e2e/internal/models"
	"github.com/deprtest/e2e/internal/routes"
	"github.com/deprtest/e2e/internal/testing/mockapi"
)

func setup(t *testing.T) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(mockapi.New().Handler())
	t.Cleanup(srv.Close)

	client := apiclient.New(srv.URL + routes.APIBase)
	resp, err := client.Login(context.Background(), "admin", "password")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return client
}

func createUser(t *testing.T, client *apiclient.Client) models.User {
	t.Helper()
	u := models.NewUser()
	u.Username = "contract_user"
	u.Email = "contract@example.com"
	u.FirstName = "Contract"
	u.LastName = "User"
	resp, err := client.CreateUser(context.Background(), u)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode, resp.Text())
	var created models.User
	require.NoError(t, resp.JSON(&created))
	return created
}

func TestAPIContracts(t *testing.T) {
	client := setup(t)
	user := createUser(t, client)

	resp, err := client.CreateContact(context.Background(), models.Contact{
		FirstName: "Con", LastName: "Tact", Email: "con@example.com", Phone: "555-0104", UserID: user.ID,
	})
	require.NoError(t, err)
	var contact models.Contact
	require.NoError(t, resp.JSON(&contact))

	ct := NewContractTest(t, client)
	ct.AddContract(AuthContracts("admin", "password")...)
	ct.AddContract(UserContracts(user)...)
	ct.AddContract(ContactContracts(contact)...)
	ct.Run()
}

func TestCheckReportsViolations(t *testing.T) {
	client := setup(t)

	errs := Check(context.Background(), client, Contract{
		Name:   "wrong expectations",
		Method: http.MethodGet,
		Path:   routes.APIUsers,
		Expected: Response{
			Status:      http.StatusTeapot,
			Headers:     map[string]string{"X-Missing": "yes"},
			Schema:      SchemaUser,
			Validations: []Validation{HasFields("nope")},
		},
	})
	require.Len(t, errs, 4)
	assert.Contains(t, errs[0].Error(), "status code mismatch")
	assert.Contains(t, errs[1].Error(), "X-Missing")
	assert.Contains(t, errs[2].Error(), "schema user")
	assert.Contains(t, errs[3].Error(), "missing field: nope")
}

func TestCheckUnsupportedMethod(t *testing.T) {
	errs := Check(context.Background(), apiclient.New("http://127.0.0.1:1"), Contract{Method: http.MethodPatch})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "unsupported method")
}

func TestValidateSchema(t *testing.T) {
	t.Run("Valid user", func(t *testing.T) {
		body := []byte(`{"id":1,"username":"abc","email":"a@b.co","first_name":"A","last_name":"B","is_active":true}`)
		assert.NoError(t, ValidateSchema(SchemaUser, body))
	})

	t.Run("Password must not leak", func(t *testing.T) {
		body := []byte(`{"id":1,"username":"abc","email":"a@b.co","first_name":"A","last_name":"B","is_active":true,"password":"x"}`)
		assert.Error(t, ValidateSchema(SchemaUser, body))
	})

	t.Run("Unknown schema", func(t *testing.T) {
		err := ValidateSchema("nope", []byte(`{}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown schema")
	})

	t.Run("Not JSON", func(t *testing.T) {
		assert.Error(t, ValidateSchema(SchemaPage, []byte(`<html>`)))
	})
}

func TestValidations(t *testing.T) {
	body := []byte(`{"id":3,"items":[{"user_id":5},{"user_id":5}],"name":"x"}`)

	assert.NoError(t, HasFields("id", "items")(body))
	assert.Error(t, HasFields("missing")(body))
	assert.NoError(t, FieldEquals("id", int64(3))(body))
	assert.Error(t, FieldEquals("name", "y")(body))
	assert.NoError(t, AllItemsHave("user_id", 5)(body))
	assert.Error(t, AllItemsHave("user_id", 6)(body))
	assert.NoError(t, IsErrorResponse()([]byte(`{"detail":"Not found","status_code":404}`)))
	assert.Error(t, IsErrorResponse()([]byte(`{"message":"x"}`)))
	assert.Error(t, ItemsMatch(SchemaContact)(body))
}
