// Package routes names every API endpoint and UI path the suites touch.
package routes

import (
	"fmt"
	"strings"

	"github.com/deprtest/e2e/internal/config"
)

// APIBase is where the REST API is mounted. The configured API base URL
// already ends with it, so the API routes below are relative to it.
const APIBase = "/api"

// API routes, relative to the API base URL.
const (
	APILogin        = "auth/login"
	APIRegister     = "auth/register"
	APIRefreshToken = "auth/refresh"
	APIUsers        = "users"
	APIUserByID     = "users/{}"
	APIContacts     = "contacts"
	APIContactByID  = "contacts/{}"
)

// UI routes, relative to protocol://host.
const (
	UILogin          = "login"
	UIRegister       = "/register"
	UIUsers          = "/users"
	UIUserDetails    = "/users/{}"
	UIContacts       = "/contacts"
	UIContactDetails = "/contacts/{}"
	UIDashboard      = "/dashboard"

	UIDepreciationAssetClass      = "/depreciation/{}/configurations/asset-class"
	UIDepreciationBasisAdjustment = "/depreciation/{}/configurations/basis-adjustments"
	UIDepreciationBonusProfile    = "/depreciation/{}/configurations/bonus-profile"
	UIDepreciationProfile         = "/depreciation/{}/configurations/depreciation-profile"
)

// UserByID returns the API route of one user.
func UserByID(id any) string { return Build(APIUserByID, id) }

// ContactByID returns the API route of one contact.
func ContactByID(id any) string { return Build(APIContactByID, id) }

// APIPath returns the absolute server path of an API route, e.g. /api/users.
func APIPath(route string) string {
	return APIBase + "/" + strings.TrimLeft(route, "/")
}

// Build fills each {} placeholder of route with the next argument and
// strips the leading slash.
func Build(route string, args ...any) string {
	var b strings.Builder
	rest := route
	for _, arg := range args {
		i := strings.Index(rest, "{}")
		if i < 0 {
			break
		}
		b.WriteString(rest[:i])
		b.WriteString(fmt.Sprint(arg))
		rest = rest[i+2:]
	}
	b.WriteString(rest)
	return strings.TrimLeft(b.String(), "/")
}

// URLBuilder turns UI routes into absolute URLs for one target.
type URLBuilder struct {
	settings *config.Settings
}

// NewURLBuilder returns a builder for the UI described by settings.
func NewURLBuilder(settings *config.Settings) *URLBuilder {
	return &URLBuilder{settings: settings}
}

// Full returns protocol://host/<route with args>.
func (u *URLBuilder) Full(route string, args ...any) string {
	return fmt.Sprintf("%s/%s", u.settings.UIBaseURL(), Build(route, args...))
}

// Login returns the login page URL.
func (u *URLBuilder) Login() string { return u.Full(UILogin) }

// Users returns the user list URL.
func (u *URLBuilder) Users() string { return u.Full(UIUsers) }

// Contacts returns the contact list URL.
func (u *URLBuilder) Contacts() string { return u.Full(UIContacts) }

// Dashboard returns the landing page after login.
func (u *URLBuilder) Dashboard() string { return u.Full(UIDashboard) }

// DepreciationAssetClass returns the asset class configuration of a case.
func (u *URLBuilder) DepreciationAssetClass(caseID string) string {
	return u.Full(UIDepreciationAssetClass, caseID)
}

// DepreciationBasisAdjustment returns the basis adjustment configuration of a case.
func (u *URLBuilder) DepreciationBasisAdjustment(caseID string) string {
	return u.Full(UIDepreciationBasisAdjustment, caseID)
}

// DepreciationBonusProfile returns the bonus profile configuration of a case.
func (u *URLBuilder) DepreciationBonusProfile(caseID string) string {
	return u.Full(UIDepreciationBonusProfile, caseID)
}

// DepreciationProfile returns the depreciation profile configuration of a case.
func (u *URLBuilder) DepreciationProfile(caseID string) string {
	return u.Full(UIDepreciationProfile, caseID)
}

// UserDetails is relative, like every Build result.
func UserDetails(id any) string { return Build(UIUserDetails, id) }

// ContactDetails is the relative contact details route.
func ContactDetails(id any) string { return Build(UIContactDetails, id) }
