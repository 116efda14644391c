package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validReport() *Report {
	return NewReport("1", "red-flag", "23.0, 34.5", "Corruption", "bribery")
}

func TestReportValidate(t *testing.T) {
	require := require.New(t)

	r := validReport()
	require.NoError(r.Validate())
	require.False(r.CreatedOn.IsZero())
}

func TestReportValidateAggregatesAllFailures(t *testing.T) {
	require := require.New(t)

	// Every rule runs regardless of earlier failures; messages accumulate
	// in the fixed rule order: creator, type, location, comment, title.
	r := NewReport("ptah", "a report", "34.5", "", "")
	err := r.Validate()
	require.Error(err)

	var verrs ValidationErrors
	require.ErrorAs(err, &verrs)
	require.Equal(ValidationErrors{
		MsgOwnerNotInteger,
		MsgTypeUnknown,
		MsgLocationTwoCoords,
		MsgCommentBlank,
		MsgTitleBlank,
	}, verrs)
}

func TestReportValidateSingleFailureComesFirst(t *testing.T) {
	require := require.New(t)

	r := validReport()
	r.Location = "34.5"

	err := r.Validate()
	var verrs ValidationErrors
	require.ErrorAs(err, &verrs)
	require.Equal(MsgLocationTwoCoords, verrs[0])
}

func TestParsePatchField(t *testing.T) {
	require := require.New(t)

	for _, f := range []string{"comment", "location", "title", "type"} {
		field, err := ParsePatchField(f)
		require.NoError(err)
		require.Equal(PatchField(f), field)
	}

	_, err := ParsePatchField("status")
	require.ErrorIs(err, ErrUnknownField)
	_, err = ParsePatchField("owner")
	require.ErrorIs(err, ErrUnknownField)
}

func TestReportPatchMergesValidValue(t *testing.T) {
	require := require.New(t)

	r := validReport()
	require.NoError(r.Patch(PatchComment, "extortion at the gate"))
	require.Equal("extortion at the gate", r.Comment)

	require.NoError(r.Patch(PatchLocation, "1.5, -2.25"))
	require.Equal("1.5, -2.25", r.Location)

	require.NoError(r.Patch(PatchKind, "intervention"))
	require.Equal("intervention", r.Kind)
}

func TestReportPatchRejectsInvalidValueWithoutMerging(t *testing.T) {
	require := require.New(t)

	r := validReport()
	err := r.Patch(PatchLocation, "34.5")

	var verrs ValidationErrors
	require.ErrorAs(err, &verrs)
	require.Equal(ValidationErrors{MsgLocationTwoCoords}, verrs)
	require.Equal("23.0, 34.5", r.Location, "failed patch must not merge")

	err = r.Patch(PatchComment, "")
	require.ErrorAs(err, &verrs)
	require.Equal("bribery", r.Comment)
}

func TestAccountValidateSignUp(t *testing.T) {
	require := require.New(t)

	a := NewAccount("user@example.com", "pass1234")
	require.NoError(a.ValidateSignUp("pass1234"))

	a = NewAccount("not an email", "pass1234")
	err := a.ValidateSignUp("pass5678")
	var verrs ValidationErrors
	require.ErrorAs(err, &verrs)
	require.Equal(ValidationErrors{MsgEmailInvalid, MsgPasswordMismatch}, verrs)
}

func TestValidateCredentials(t *testing.T) {
	require := require.New(t)

	require.NoError(ValidateCredentials("user@example.com", "pass1234"))

	err := ValidateCredentials("", "")
	var verrs ValidationErrors
	require.ErrorAs(err, &verrs)
	require.Equal(ValidationErrors{MsgEmailBlank, MsgPasswordBlank}, verrs)
}
