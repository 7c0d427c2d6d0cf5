package couple

import (
	"testing"

	"nosdois-service/database"
	"nosdois-service/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{" NossoAmor ", "nossoamor"},
		{"nossoamor", "nossoamor"},
		{"NOSSOAMOR", "nossoamor"},
		{"  abc  ", "abc"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCode(tt.input))
	}
}

func TestResolveCodeRejectsShortCodes(t *testing.T) {
	_, err := ResolveCode("abc")
	assert.ErrorIs(t, err, ErrCodeTooShort)

	_, err = ResolveCode("  ab  ")
	assert.ErrorIs(t, err, ErrCodeTooShort)

	code, err := ResolveCode("abcd")
	require.NoError(t, err)
	assert.Equal(t, "abcd", code)
}

func TestConnectCreatesCoupleWithDefaults(t *testing.T) {
	db := newTestDB(t)

	record, err := Connect(db, " NossoAmor ")
	require.NoError(t, err)
	assert.Equal(t, "nossoamor", record.Code)
	assert.True(t, record.NotificationsEnabled)
	assert.False(t, record.NightMode)
	assert.Equal(t, model.BrightnessMax, record.Brightness)
	assert.NotEmpty(t, record.TargetDate)
	assert.NotZero(t, record.Created)
}

func TestConnectIsIdempotentAcrossSpellings(t *testing.T) {
	db := newTestDB(t)

	first, err := Connect(db, "nossoamor")
	require.NoError(t, err)

	second, err := Connect(db, "NOSSOAMOR")
	require.NoError(t, err)
	assert.Equal(t, first.Code, second.Code)
	assert.Equal(t, first.Created, second.Created)

	var count int64
	require.NoError(t, db.Model(&model.Couple{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestConnectRejectionLeavesNoState(t *testing.T) {
	db := newTestDB(t)

	_, err := Connect(db, "abc")
	assert.ErrorIs(t, err, ErrCodeTooShort)

	var count int64
	require.NoError(t, db.Model(&model.Couple{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
