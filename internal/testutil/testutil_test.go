package testutil

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRandomString(t *testing.T) {
	s := RandomString(10)
	assert.Len(t, s, 10)
	assert.Regexp(t, `^[a-z]{10}$`, s)
	assert.Empty(t, RandomString(0))
}

func TestRandomEmail(t *testing.T) {
	assert.Regexp(t, `^[a-z]{8}@example\.com$`, RandomEmail(""))
	assert.Regexp(t, `^[a-z]{8}@corp\.test$`, RandomEmail("corp.test"))
}

func TestWaitFor(t *testing.T) {
	t.Run("Immediate success", func(t *testing.T) {
		assert.True(t, WaitFor(context.Background(), func() bool { return true }, time.Millisecond, time.Millisecond))
	})

	t.Run("Eventually true", func(t *testing.T) {
		var calls atomic.Int32
		ok := WaitFor(context.Background(), func() bool { return calls.Add(1) >= 3 }, time.Second, 5*time.Millisecond)
		assert.True(t, ok)
		assert.GreaterOrEqual(t, calls.Load(), int32(3))
	})

	t.Run("Times out", func(t *testing.T) {
		start := time.Now()
		assert.False(t, WaitFor(context.Background(), func() bool { return false }, 50*time.Millisecond, 10*time.Millisecond))
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("Context cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.False(t, WaitFor(ctx, func() bool { return false }, time.Minute, time.Millisecond))
	})
}

func TestDates(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	assert.Equal(t, "2024-03-09 14:05:07", FormatDateTime(ts, ""))
	assert.Equal(t, "09/03/2024", FormatDateTime(ts, "02/01/2006"))

	parsed, err := ParseDateTime("2024-03-09 14:05:07", "")
	require.NoError(t, err)
	assert.True(t, parsed.Equal(ts))

	_, err = ParseDateTime("yesterday", "")
	assert.Error(t, err)

	assert.WithinDuration(t, time.Now().Add(49*time.Hour+30*time.Minute), RelativeDate(2, 1, 30), time.Second)
	assert.WithinDuration(t, time.Now().Add(-24*time.Hour), RelativeDate(-1, 0, 0), time.Second)
}

type fixture struct {
	Name  string   `json:"name" yaml:"name"`
	Roles []string `json:"roles" yaml:"roles"`
}

func TestResources(t *testing.T) {
	r := NewResources(t.TempDir())
	want := fixture{Name: "admin", Roles: []string{"read", "write"}}

	require.NoError(t, r.SaveJSON("nested/admin.json", want))

	var got fixture
	require.NoError(t, r.JSON("nested/admin.json", &got))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	text, err := r.Text("nested/admin.json")
	require.NoError(t, err)
	assert.Contains(t, text, "\n  \"name\": \"admin\"")

	require.NoError(t, os.WriteFile(filepath.Join(r.Dir, "admin.yaml"), []byte("name: admin\nroles: [read, write]\n"), 0600))
	var fromYAML fixture
	require.NoError(t, r.YAML("admin.yaml", &fromYAML))
	assert.Empty(t, cmp.Diff(want, fromYAML))

	_, err = r.Text("missing.txt")
	assert.ErrorContains(t, err, "failed to load resource missing.txt")
	assert.Error(t, r.JSON("admin.yaml", &got))
}

func TestProjectResources(t *testing.T) {
	r, err := ProjectResources()
	require.NoError(t, err)
	assert.Equal(t, "resources", filepath.Base(r.Dir))
	_, err = os.Stat(filepath.Join(filepath.Dir(r.Dir), "go.mod"))
	assert.NoError(t, err)
}

func TestIsolateSettings(t *testing.T) {
	s := IsolateSettings(t, "HOST=isolated:1", "demo_test=true")
	assert.Equal(t, "isolated:1", s.Host)
	assert.True(t, s.DemoTest)
	assert.Equal(t, "http", s.Protocol)
}

func TestIsTestSecret(t *testing.T) {
	assert.True(t, IsTestSecret("test-abc"))
	assert.True(t, IsTestSecret("Demo-xyz"))
	assert.False(t, IsTestSecret("prod-secret"))
}
