package contracts

import (
	"net/http"

	"github.com/deprtest/e2e/internal/models"
	"github.com/deprtest/e2e/internal/routes"
)

// AuthContracts covers the login endpoint for one valid account.
func AuthContracts(username, password string) []Contract {
	return []Contract{
		{
			Name:      "POST /auth/login - Valid credentials",
			Method:    http.MethodPost,
			Path:      routes.APILogin,
			Anonymous: true,
			Body:      models.LoginRequest{Username: username, Password: password},
			Expected: Response{
				Status:  http.StatusOK,
				Headers: map[string]string{"Content-Type": "application/json"},
				Schema:  SchemaLogin,
			},
		},
		{
			Name:      "POST /auth/login - Wrong password",
			Method:    http.MethodPost,
			Path:      routes.APILogin,
			Anonymous: true,
			Body:      models.LoginRequest{Username: username, Password: password + "-wrong"},
			Expected: Response{
				Status:      http.StatusUnauthorized,
				Validations: []Validation{IsErrorResponse()},
			},
		},
	}
}

// UserContracts covers the user collection and one existing user.
func UserContracts(existing models.User) []Contract {
	return []Contract{
		{
			Name:   "GET /users - List users",
			Method: http.MethodGet,
			Path:   routes.APIUsers,
			Expected: Response{
				Status:      http.StatusOK,
				Schema:      SchemaPage,
				Validations: []Validation{ItemsMatch(SchemaUser)},
			},
		},
		{
			Name:   "GET /users/{id} - Existing user",
			Method: http.MethodGet,
			Path:   routes.UserByID(existing.ID),
			Expected: Response{
				Status: http.StatusOK,
				Schema: SchemaUser,
				Validations: []Validation{
					FieldEquals("id", existing.ID),
					FieldEquals("username", existing.Username),
				},
			},
		},
		{
			Name:   "GET /users/{id} - Unknown user",
			Method: http.MethodGet,
			Path:   routes.UserByID(0),
			Expected: Response{
				Status:      http.StatusNotFound,
				Validations: []Validation{IsErrorResponse()},
			},
		},
		{
			Name:      "GET /users - Anonymous",
			Method:    http.MethodGet,
			Path:      routes.APIUsers,
			Anonymous: true,
			Expected:  Response{Status: http.StatusUnauthorized, Schema: SchemaError},
		},
	}
}

// ContactContracts covers the contact collection, the owner filter and one
// existing contact.
func ContactContracts(existing models.Contact) []Contract {
	return []Contract{
		{
			Name:   "GET /contacts - List contacts",
			Method: http.MethodGet,
			Path:   routes.APIContacts,
			Expected: Response{
				Status:      http.StatusOK,
				Schema:      SchemaPage,
				Validations: []Validation{ItemsMatch(SchemaContact)},
			},
		},
		{
			Name:   "GET /contacts?user_id - Filter by owner",
			Method: http.MethodGet,
			Path:   routes.APIContacts + "?user_id=" + routes.Build("{}", existing.UserID),
			Expected: Response{
				Status:      http.StatusOK,
				Schema:      SchemaPage,
				Validations: []Validation{AllItemsHave("user_id", existing.UserID)},
			},
		},
		{
			Name:   "GET /contacts/{id} - Existing contact",
			Method: http.MethodGet,
			Path:   routes.ContactByID(existing.ID),
			Expected: Response{
				Status:      http.StatusOK,
				Schema:      SchemaContact,
				Validations: []Validation{FieldEquals("email", existing.Email)},
			},
		},
		{
			Name:      "POST /contacts - Anonymous",
			Method:    http.MethodPost,
			Path:      routes.APIContacts,
			Anonymous: true,
			Body:      map[string]string{"first_name": "Test"},
			Expected:  Response{Status: http.StatusUnauthorized, Schema: SchemaError},
		},
	}
}
