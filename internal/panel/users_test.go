package panel

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gww-voice/dashboard/internal/backend"
	"github.com/gww-voice/dashboard/internal/mocks"
	"github.com/gww-voice/dashboard/internal/models"
	"github.com/gww-voice/dashboard/internal/view"
)

func seededUsers(api *mocks.MockAPI) {
	api.ListUsersFunc = func(ctx context.Context) (models.UsersListResponse, error) {
		return models.UsersListResponse{Items: []models.User{
			{Name: "Ada", PhoneNumber: "+15550001", Email: "ada@example.com"},
			{Name: "Bob", PhoneNumber: "+15550002"},
		}}, nil
	}
}

func TestUsers_OpenEmailPrefills(t *testing.T) {
	api := mocks.NewMockAPI()
	seededUsers(api)
	p := NewUsers(api, testOptions())
	require.NoError(t, p.Refresh(context.Background(), view.Foreground))

	p.OpenEmail("+15550001")
	d := p.Snapshot().Dialog
	assert.True(t, d.Is(DialogEmail))
	assert.Equal(t, "+15550001", d.Target)
	assert.Equal(t, "ada@example.com", d.Value)
}

func TestUsers_SubmitEmailRefetches(t *testing.T) {
	api := mocks.NewMockAPI()
	seededUsers(api)
	var phone, email string
	api.UpdateEmailFunc = func(ctx context.Context, p, e string) (models.OKResponse, error) {
		phone, email = p, e
		return models.OKResponse{OK: true}, nil
	}
	p := NewUsers(api, testOptions())

	p.OpenEmail("+15550002")
	require.NoError(t, p.SubmitEmail(context.Background(), "bob@example.com"))

	assert.Equal(t, "+15550002", phone)
	assert.Equal(t, "bob@example.com", email)
	st := p.Snapshot()
	assert.False(t, st.Dialog.Open())
	assert.Equal(t, "Email updated", st.Notice.Text(testNow))
	assert.Equal(t, []string{"UpdateEmail", "ListUsers"}, api.Calls())
}

func TestUsers_FailedSubmitKeepsDialog(t *testing.T) {
	api := mocks.NewMockAPI()
	api.SetOutcomeFunc = func(ctx context.Context, phone, outcome string) (models.OKResponse, error) {
		return models.OKResponse{}, &backend.APIError{Status: http.StatusBadRequest, Message: "invalid outcome"}
	}
	p := NewUsers(api, testOptions())

	p.OpenOutcome("+15550001")
	require.Error(t, p.SubmitOutcome(context.Background(), models.OutcomeWrongNumber))

	st := p.Snapshot()
	assert.Equal(t, "invalid outcome", st.Err)
	assert.True(t, st.Dialog.Is(DialogOutcome))
	assert.Equal(t, models.OutcomeWrongNumber, st.Dialog.Value)
	assert.Equal(t, 0, api.CallCount("ListUsers"))
}

func TestUsers_SubmitWithoutDialogIsNoop(t *testing.T) {
	api := mocks.NewMockAPI()
	p := NewUsers(api, testOptions())
	ctx := context.Background()

	require.NoError(t, p.SubmitEmail(ctx, "x@example.com"))
	require.NoError(t, p.SubmitCallback(ctx, "2025-03-02T10:00"))
	require.NoError(t, p.ConfirmDelete(ctx))

	// An open dialog of a different kind does not count.
	p.OpenCallback("+15550001")
	require.NoError(t, p.SubmitOutcome(ctx, models.OutcomeAbruptCall))

	assert.Empty(t, api.Calls())
}

func TestUsers_DeleteRequiresConfirmation(t *testing.T) {
	api := mocks.NewMockAPI()
	var deleted string
	api.DeleteUserFunc = func(ctx context.Context, phone string) (models.DeleteUserResponse, error) {
		deleted = phone
		return models.DeleteUserResponse{OK: true}, nil
	}
	p := NewUsers(api, testOptions())

	p.RequestDelete("+15550002")
	assert.Equal(t, 0, api.CallCount("DeleteUser"))

	require.NoError(t, p.ConfirmDelete(context.Background()))
	assert.Equal(t, "+15550002", deleted)
	assert.Equal(t, "User deleted", p.Snapshot().Notice.Text(testNow))
}

func TestUsers_SendOTP(t *testing.T) {
	api := mocks.NewMockAPI()
	p := NewUsers(api, testOptions())

	require.NoError(t, p.SendOTP(context.Background(), "+15550001"))
	assert.Equal(t, "OTP generated", p.Snapshot().Notice.Text(testNow))
	assert.Equal(t, []string{"SendOTP", "ListUsers"}, api.Calls())
}

func TestUsers_CreateKeepsFieldsOnFailure(t *testing.T) {
	api := mocks.NewMockAPI()
	api.CreateUserFunc = func(ctx context.Context, req models.CreateUserRequest) (models.CreateUserResponse, error) {
		return models.CreateUserResponse{}, &backend.APIError{Status: http.StatusConflict, Message: "user already exists"}
	}
	p := NewUsers(api, testOptions())
	req := models.CreateUserRequest{Name: "Ada", PhoneNumber: "+15550001", Address: "1 Main St", DOB: "1990-01-01", Email: "ada@example.com"}

	p.OpenCreate()
	require.Error(t, p.SubmitCreate(context.Background(), req))

	st := p.Snapshot()
	assert.Equal(t, "user already exists", st.Err)
	assert.True(t, st.Dialog.Is(DialogCreate))
	assert.Equal(t, "Ada", st.Dialog.Field("name"))
	assert.Equal(t, "+15550001", st.Dialog.Field("phone_number"))
}

func TestUsers_ValidateOTPNotVerified(t *testing.T) {
	api := mocks.NewMockAPI()
	api.ValidateOTPFunc = func(ctx context.Context, phone, otp string) (models.ValidateOTPResponse, error) {
		return models.ValidateOTPResponse{OK: true, Verified: otp == "123456"}, nil
	}
	p := NewUsers(api, testOptions())
	ctx := context.Background()

	p.OpenValidateOTP("+15550001")
	require.Error(t, p.SubmitValidateOTP(ctx, "000000"))
	st := p.Snapshot()
	assert.Equal(t, "OTP not verified", st.Err)
	assert.True(t, st.Dialog.Is(DialogValidateOTP))

	require.NoError(t, p.SubmitValidateOTP(ctx, "123456"))
	assert.Equal(t, "OTP verified", p.Snapshot().Notice.Text(testNow))
}

func TestUsers_OpenUnknownKind(t *testing.T) {
	p := NewUsers(mocks.NewMockAPI(), testOptions())
	err := p.Open("bogus", "+1")
	assert.ErrorIs(t, err, ErrUnknownDialog)
	assert.False(t, p.Snapshot().Dialog.Open())
}

func TestUsers_Lookup(t *testing.T) {
	api := mocks.NewMockAPI()
	api.GetUserByNameFunc = func(ctx context.Context, name string) (models.User, error) {
		if name == "Ada" {
			return models.User{Name: "Ada", PhoneNumber: "+15550001"}, nil
		}
		return models.User{}, &backend.APIError{Status: http.StatusNotFound, Message: "user not found"}
	}
	p := NewUsers(api, testOptions())
	ctx := context.Background()

	require.NoError(t, p.Lookup(ctx, "name", " Ada "))
	res := p.LookupResult()
	require.NotNil(t, res.User)
	assert.Equal(t, "+15550001", res.User.PhoneNumber)
	assert.Equal(t, "Ada", res.Key)

	require.Error(t, p.Lookup(ctx, "name", "Nobody"))
	res = p.LookupResult()
	assert.Nil(t, res.User)
	assert.Equal(t, "user not found", res.Err)

	p.ClearLookup()
	assert.Equal(t, UserLookup{}, p.LookupResult())
}
