//go:build e2e

package api

import (
	"testing"

	"github.com/deprtest/e2e/internal/testing/contracts"
)

func TestAPIContracts(t *testing.T) {
	client := authClient(t)
	user := createUser(t, client)
	contact := createContact(t, client, user)

	ct := contracts.NewContractTest(t, client)
	ct.AddContract(contracts.AuthContracts(settings.AdminUsername, settings.AdminPassword)...)
	ct.AddContract(contracts.UserContracts(user)...)
	ct.AddContract(contracts.ContactContracts(contact)...)
	ct.Run()
}
