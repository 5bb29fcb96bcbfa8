package apiclient

import (
	"context"
	"net/url"
	"strconv"

	"github.com/deprtest/e2e/internal/routes"
)

func (c *Client) GetUsers(ctx context.Context) (*Response, error) {
	return c.Get(ctx, routes.APIUsers, nil)
}

func (c *Client) GetUser(ctx context.Context, id int64) (*Response, error) {
	return c.Get(ctx, routes.UserByID(id), nil)
}

func (c *Client) CreateUser(ctx context.Context, user any) (*Response, error) {
	return c.Post(ctx, routes.APIUsers, user)
}

func (c *Client) UpdateUser(ctx context.Context, id int64, user any) (*Response, error) {
	return c.Put(ctx, routes.UserByID(id), user)
}

func (c *Client) DeleteUser(ctx context.Context, id int64) (*Response, error) {
	return c.Delete(ctx, routes.UserByID(id))
}

func (c *Client) GetContacts(ctx context.Context) (*Response, error) {
	return c.Get(ctx, routes.APIContacts, nil)
}

// GetContactsByUser lists only the contacts owned by userID.
func (c *Client) GetContactsByUser(ctx context.Context, userID int64) (*Response, error) {
	return c.Get(ctx, routes.APIContacts, url.Values{"user_id": {strconv.FormatInt(userID, 10)}})
}

func (c *Client) GetContact(ctx context.Context, id int64) (*Response, error) {
	return c.Get(ctx, routes.ContactByID(id), nil)
}

func (c *Client) CreateContact(ctx context.Context, contact any) (*Response, error) {
	return c.Post(ctx, routes.APIContacts, contact)
}

func (c *Client) UpdateContact(ctx context.Context, id int64, contact any) (*Response, error) {
	return c.Put(ctx, routes.ContactByID(id), contact)
}

func (c *Client) DeleteContact(ctx context.Context, id int64) (*Response, error) {
	return c.Delete(ctx, routes.ContactByID(id))
}
