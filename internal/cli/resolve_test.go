package cli

import (
	"testing"
	"time"

	"github.com/alexanderramin/daygoal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEntryRef(t *testing.T) {
	ref, err := resolveEntryRef("3")
	require.NoError(t, err)
	require.NotNil(t, ref.Position)
	assert.Equal(t, 2, *ref.Position, "positions are shown 1-based")
	assert.Empty(t, ref.ID)

	ref, err = resolveEntryRef("#1")
	require.NoError(t, err)
	assert.Equal(t, 0, *ref.Position)

	ref, err = resolveEntryRef("4f1c2a9e-entry")
	require.NoError(t, err)
	assert.Equal(t, "4f1c2a9e-entry", ref.ID)
	assert.Nil(t, ref.Position)

	for _, bad := range []string{"", "  ", "0", "-2"} {
		_, err := resolveEntryRef(bad)
		assert.ErrorIs(t, err, domain.ErrValidation, "input=%q", bad)
	}
}

func TestResolveDate(t *testing.T) {
	app := &App{Now: func() time.Time { return cliNow }}

	tests := []struct {
		flag string
		want string
	}{
		{"", "2024-01-01"},
		{"today", "2024-01-01"},
		{"Yesterday", "2023-12-31"},
		{"2023-06-15", "2023-06-15"},
	}
	for _, tt := range tests {
		got, err := resolveDate(app, tt.flag)
		require.NoError(t, err, "flag=%q", tt.flag)
		assert.Equal(t, tt.want, got)
	}

	_, err := resolveDate(app, "15/06/2023")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestResolveInstant(t *testing.T) {
	app := &App{Now: func() time.Time { return cliNow }}

	got, err := resolveInstant(app, cliDate, "")
	require.NoError(t, err)
	assert.Equal(t, cliNow, got)

	got, err = resolveInstant(app, cliDate, "08:15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 8, 15, 0, 0, time.UTC), got)

	got, err = resolveInstant(app, cliDate, "2024-01-01T07:00:00+02:00")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 1, 1, 5, 0, 0, 0, time.UTC)))

	_, err = resolveInstant(app, cliDate, "quarter past")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
