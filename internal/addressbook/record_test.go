package addressbook_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/assistant-bot/internal/addressbook"
	"github.com/tartampluch/assistant-bot/internal/config"
)

func phoneStrings(r *addressbook.Record) []string {
	var out []string
	for _, p := range r.Phones() {
		out = append(out, p.String())
	}
	return out
}

func TestRecord_NameIsVerbatim(t *testing.T) {
	r := addressbook.NewRecord("  jöhn_Doe 42 ")
	assert.Equal(t, "  jöhn_Doe 42 ", r.Name())
	assert.Empty(t, r.Phones())
	_, ok := r.Birthday()
	assert.False(t, ok)
}

func TestRecord_AddPhone_AllowsDuplicates(t *testing.T) {
	r := addressbook.NewRecord("John")
	require.NoError(t, r.AddPhone("1234567890"))
	require.NoError(t, r.AddPhone("0987654321"))
	require.NoError(t, r.AddPhone("1234567890"))

	assert.Equal(t, []string{"1234567890", "0987654321", "1234567890"}, phoneStrings(r))
}

func TestRecord_AddPhone_Invalid(t *testing.T) {
	r := addressbook.NewRecord("John")
	err := r.AddPhone("12345")

	var vErr *addressbook.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Empty(t, r.Phones())
}

func TestRecord_RemovePhone(t *testing.T) {
	r := addressbook.NewRecord("John")
	require.NoError(t, r.AddPhone("1111111111"))
	require.NoError(t, r.AddPhone("2222222222"))
	require.NoError(t, r.AddPhone("1111111111"))

	assert.True(t, r.RemovePhone("1111111111"), "first match is removed")
	assert.Equal(t, []string{"2222222222", "1111111111"}, phoneStrings(r))

	assert.False(t, r.RemovePhone("3333333333"), "absent phone is a no-op")
	assert.Equal(t, []string{"2222222222", "1111111111"}, phoneStrings(r))
}

func TestRecord_ChangePhone(t *testing.T) {
	r := addressbook.NewRecord("John")
	require.NoError(t, r.AddPhone("1111111111"))
	require.NoError(t, r.AddPhone("2222222222"))
	require.NoError(t, r.AddPhone("3333333333"))

	require.NoError(t, r.ChangePhone("2222222222", "4444444444"))
	assert.Equal(t, []string{"1111111111", "4444444444", "3333333333"}, phoneStrings(r), "order is preserved")
}

func TestRecord_ChangePhone_NotFound(t *testing.T) {
	r := addressbook.NewRecord("John")
	require.NoError(t, r.AddPhone("1111111111"))

	err := r.ChangePhone("9999999999", "4444444444")

	var nfErr *addressbook.NotFoundError
	require.True(t, errors.As(err, &nfErr))
	assert.Equal(t, "9999999999", nfErr.Key)
	assert.Equal(t, config.ErrPhoneNotFound+": 9999999999", err.Error())
	assert.Equal(t, []string{"1111111111"}, phoneStrings(r), "phones must be unmodified")
}

func TestRecord_ChangePhone_InvalidNew(t *testing.T) {
	r := addressbook.NewRecord("John")
	require.NoError(t, r.AddPhone("1111111111"))

	err := r.ChangePhone("1111111111", "abc")

	var vErr *addressbook.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []string{"1111111111"}, phoneStrings(r), "phones must be unmodified")
}

func TestRecord_FindPhone(t *testing.T) {
	r := addressbook.NewRecord("John")
	require.NoError(t, r.AddPhone("1111111111"))

	p, ok := r.FindPhone("1111111111")
	assert.True(t, ok)
	assert.Equal(t, "1111111111", p.String())

	_, ok = r.FindPhone("2222222222")
	assert.False(t, ok)
}

func TestRecord_SetBirthday_Replaces(t *testing.T) {
	r := addressbook.NewRecord("John")
	require.NoError(t, r.SetBirthday("24-12-1990"))
	require.NoError(t, r.SetBirthday("01-02-1991"))

	b, ok := r.Birthday()
	require.True(t, ok)
	assert.Equal(t, "01.02.1991", b.Format())

	require.Error(t, r.SetBirthday("1991/02/01"))
	b, _ = r.Birthday()
	assert.Equal(t, "01.02.1991", b.Format(), "invalid input keeps the previous birthday")
}

func TestRecord_String(t *testing.T) {
	r := addressbook.NewRecord("John")
	assert.Equal(t, "Contact name: John, phones: ", r.String())

	require.NoError(t, r.AddPhone("1234567890"))
	require.NoError(t, r.AddPhone("0987654321"))
	assert.Equal(t, "Contact name: John, phones: 1234567890; 0987654321", r.String())
}

func TestRecord_PhonesIsACopy(t *testing.T) {
	r := addressbook.NewRecord("John")
	require.NoError(t, r.AddPhone("1234567890"))

	phones := r.Phones()
	phones[0], _ = addressbook.NewPhone("0000000000")

	assert.Equal(t, []string{"1234567890"}, phoneStrings(r))
}
