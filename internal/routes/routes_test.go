package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deprtest/e2e/internal/config"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name  string
		route string
		args  []any
		want  string
	}{
		{name: "no args", route: UIUsers, want: "users"},
		{name: "one arg", route: UIUserDetails, args: []any{12}, want: "users/12"},
		{name: "relative route", route: UILogin, want: "login"},
		{name: "extra args ignored", route: UIContacts, args: []any{1}, want: "contacts"},
		{name: "missing args leave placeholder", route: UIContactDetails, want: "contacts/{}"},
		{name: "case id", route: UIDepreciationProfile, args: []any{"abc"}, want: "depreciation/abc/configurations/depreciation-profile"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Build(tt.route, tt.args...))
		})
	}
}

func TestAPIRoutes(t *testing.T) {
	assert.Equal(t, "users/5", UserByID(5))
	assert.Equal(t, "contacts/9", ContactByID(int64(9)))
	assert.Equal(t, "/api/auth/login", APIPath(APILogin))
	assert.Equal(t, "/api/users/{}", APIPath(APIUserByID))
}

func TestURLBuilder(t *testing.T) {
	s := config.Default()
	s.Protocol = "https"
	s.Host = "app.test"
	u := NewURLBuilder(s)

	assert.Equal(t, "https://app.test/login", u.Login())
	assert.Equal(t, "https://app.test/users", u.Users())
	assert.Equal(t, "https://app.test/contacts", u.Contacts())
	assert.Equal(t, "https://app.test/dashboard", u.Dashboard())
	assert.Equal(t, "https://app.test/depreciation/c1/configurations/asset-class", u.DepreciationAssetClass("c1"))
	assert.Equal(t, "https://app.test/depreciation/c1/configurations/basis-adjustments", u.DepreciationBasisAdjustment("c1"))
	assert.Equal(t, "https://app.test/depreciation/c1/configurations/bonus-profile", u.DepreciationBonusProfile("c1"))
	assert.Equal(t, "https://app.test/depreciation/c1/configurations/depreciation-profile", u.DepreciationProfile("c1"))
	assert.Equal(t, "users/3", UserDetails(3))
	assert.Equal(t, "contacts/4", ContactDetails(4))
}
