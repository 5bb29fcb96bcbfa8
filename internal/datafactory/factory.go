// Package datafactory generates realistic, randomized test data.
package datafactory

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deprtest/e2e/internal/models"
)

const maxNotesLength = 100

// UserOverride adjusts a generated user.
type UserOverride func(*models.User)

// ContactOverride adjusts a generated contact.
type ContactOverride func(*models.Contact)

// Factory wraps a faker. The zero value is not usable; call New.
type Factory struct {
	mu    sync.Mutex
	faker *gofakeit.Faker
	title cases.Caser
	now   func() time.Time
}

// New returns a factory. A zero seed draws a random one.
func New(seed uint64) *Factory {
	return &Factory{
		faker: gofakeit.New(seed),
		title: cases.Title(language.English),
		now:   time.Now,
	}
}

var (
	defaultOnce sync.Once
	defaultF    *Factory
)

// Default returns a process-wide randomly seeded factory.
func Default() *Factory {
	defaultOnce.Do(func() { defaultF = New(0) })
	return defaultF
}

func (f *Factory) thisYear() time.Time {
	now := f.now()
	start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	return f.faker.DateRange(start, now)
}

// User returns a user with random data and the overrides applied in order.
func (f *Factory) User(overrides ...UserOverride) models.User {
	f.mu.Lock()
	u := models.User{
		ID:        int64(f.faker.Number(1, 100000)),
		Username:  f.username(),
		Email:     f.faker.Email(),
		FirstName: f.faker.FirstName(),
		LastName:  f.faker.LastName(),
		Password:  f.faker.Password(true, true, true, false, false, 12),
		Phone:     f.faker.Phone(),
		IsActive:  true,
		CreatedAt: f.thisYear().Format("2006-01-02T15:04:05"),
	}
	f.mu.Unlock()

	for _, o := range overrides {
		o(&u)
	}
	return u
}

// usernames must be at least three characters for the API to accept them.
func (f *Factory) username() string {
	name := strings.ToLower(f.faker.Username())
	for len(name) < 3 {
		name += fmt.Sprint(f.faker.Number(0, 9))
	}
	return name
}

// Contact returns a contact with random data and the overrides applied in order.
func (f *Factory) Contact(overrides ...ContactOverride) models.Contact {
	f.mu.Lock()
	c := models.Contact{
		ID:        int64(f.faker.Number(1, 100000)),
		FirstName: f.faker.FirstName(),
		LastName:  f.faker.LastName(),
		Email:     f.faker.Email(),
		Phone:     f.faker.Phone(),
		Address:   f.faker.Address().Address,
		Notes:     f.notes(),
		CreatedAt: f.thisYear().Format("2006-01-02T15:04:05"),
		UserID:    int64(f.faker.Number(1, 100)),
	}
	f.mu.Unlock()

	for _, o := range overrides {
		o(&c)
	}
	return c
}

func (f *Factory) notes() string {
	var b strings.Builder
	for {
		word := f.faker.Noun()
		if b.Len()+len(word)+2 > maxNotesLength {
			break
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(word)
	}
	if b.Len() == 0 {
		return "."
	}
	return strings.ToUpper(b.String()[:1]) + b.String()[1:] + "."
}

// Users returns count users sharing the same overrides.
func (f *Factory) Users(count int, overrides ...UserOverride) []models.User {
	out := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, f.User(overrides...))
	}
	return out
}

// Contacts returns count contacts sharing the same overrides.
func (f *Factory) Contacts(count int, overrides ...ContactOverride) []models.Contact {
	out := make([]models.Contact, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, f.Contact(overrides...))
	}
	return out
}

// RelatedContacts returns count contacts owned by userID.
func (f *Factory) RelatedContacts(userID int64, count int) []models.Contact {
	return f.Contacts(count, OwnedBy(userID))
}

// OwnedBy sets the contact owner.
func OwnedBy(userID int64) ContactOverride {
	return func(c *models.Contact) { c.UserID = userID }
}

// WithUsername sets a fixed username.
func WithUsername(username string) UserOverride {
	return func(u *models.User) { u.Username = username }
}

// Inactive marks the user as inactive.
func Inactive() UserOverride {
	return func(u *models.User) { u.IsActive = false }
}

// Email returns a fresh random address.
func (f *Factory) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.faker.Email()
}

// Phone returns a fresh random phone number.
func (f *Factory) Phone() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.faker.Phone()
}

// Notes returns a short random text of at most 100 characters.
func (f *Factory) Notes() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.notes()
}

// word returns one title-cased noun.
func (f *Factory) word() string {
	return f.title.String(f.faker.Noun())
}

func (f *Factory) number(min, max int) int {
	return f.faker.Number(min, max)
}

// BasisAdjustmentName returns "Test Basis Adjustment <Word> <100-999>".
func (f *Factory) BasisAdjustmentName() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fmt.Sprintf("Test Basis Adjustment %s %d", f.word(), f.number(100, 999))
}

// AssetClassName returns "111 Test Asset Class <Word> <100-999>". The numeric
// prefix keeps generated classes at the top of the sorted grid.
func (f *Factory) AssetClassName() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fmt.Sprintf("111 Test Asset Class %s %d", f.word(), f.number(100, 999))
}

// BonusProfileName returns "Test Bonus Profile <1000-9999>".
func (f *Factory) BonusProfileName() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fmt.Sprintf("Test Bonus Profile %d", f.number(1000, 9999))
}

// DepreciationProfileName returns "Test Depreciation Profile <1000-9999>".
func (f *Factory) DepreciationProfileName() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fmt.Sprintf("Test Depreciation Profile %d", f.number(1000, 9999))
}

// BonusPercent returns a percentage between 10 and 95 as the form expects it.
func (f *Factory) BonusPercent() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fmt.Sprint(f.number(10, 95))
}

// UniqueName appends a short random suffix to prefix.
func UniqueName(prefix string) string {
	return fmt.Sprintf("%s %s", prefix, strings.SplitN(uuid.NewString(), "-", 2)[0])
}
