package hrapi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/linskybing/hr-console-go/hrtest"
	"github.com/linskybing/hr-console-go/models"
	"github.com/linskybing/hr-console-go/session"
)

func newFixture(t *testing.T) (*hrtest.Server, *Client, *session.MemoryStore) {
	t.Helper()
	srv := hrtest.NewServer("admin", "secret123")
	t.Cleanup(srv.Close)
	store := session.NewMemoryStore()
	return srv, New(srv.URL(), store), store
}

func TestLoginStoresTokenPair(t *testing.T) {
	_, client, store := newFixture(t)

	tokens, err := client.Login(context.Background(), "admin", "secret123")

	assert.NoError(t, err)
	assert.NotEmpty(t, tokens.Access)
	assert.NotEmpty(t, tokens.Refresh)
	assert.Equal(t, tokens, store.Tokens())
}

func TestLoginBadCredentials(t *testing.T) {
	_, client, store := newFixture(t)

	_, err := client.Login(context.Background(), "admin", "wrong")

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
	assert.False(t, store.Tokens().Valid())
}

func TestBearerAttachedToRequests(t *testing.T) {
	srv, client, _ := newFixture(t)
	_, err := client.Login(context.Background(), "admin", "secret123")
	assert.NoError(t, err)

	_, err = client.ListEmployees(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, srv.Calls("/employees/"))
}

func TestRefreshOnceThenRetry(t *testing.T) {
	srv, client, store := newFixture(t)

	// Issue an already-expired access token alongside a valid refresh
	// token, so the first employees call 401s.
	srv.SetAccessTTL(-time.Minute)
	_, err := client.Login(context.Background(), "admin", "secret123")
	assert.NoError(t, err)

	employees, err := client.ListEmployees(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, employees)
	assert.Equal(t, 1, srv.RefreshCalls, "exactly one refresh")
	assert.Equal(t, 2, srv.Calls("/employees/"), "original request retried exactly once")
	assert.True(t, store.Tokens().Valid(), "rotated access token saved")
}

func TestMissingRefreshTokenForcesReauth(t *testing.T) {
	srv, client, store := newFixture(t)
	assert.NoError(t, store.Save(session.Tokens{Access: "garbage"}))

	_, err := client.ListEmployees(context.Background())

	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.False(t, store.Tokens().Valid(), "tokens cleared")
	assert.Equal(t, 0, srv.RefreshCalls)
}

func TestInvalidRefreshTokenForcesReauth(t *testing.T) {
	srv, client, store := newFixture(t)
	assert.NoError(t, store.Save(session.Tokens{Access: "garbage", Refresh: "also-garbage"}))

	_, err := client.ListEmployees(context.Background())

	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.False(t, store.Tokens().Valid())
	assert.Equal(t, 1, srv.RefreshCalls)
	assert.Equal(t, 1, srv.Calls("/employees/"), "no retry without a fresh token")
}

func TestEmployeeCRUD(t *testing.T) {
	_, client, _ := newFixture(t)
	ctx := context.Background()
	_, err := client.Login(ctx, "admin", "secret123")
	assert.NoError(t, err)

	created, err := client.CreateEmployee(ctx, models.FormDataRecord{
		"name": "Ada Lovelace", "email": "ada@example.com",
		"department": "IT", "role": "Engineer", "status": "ACTIVE",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), created.ID())

	updated, err := client.UpdateEmployee(ctx, created.ID(), models.FormDataRecord{
		"name": "Ada King", "email": "ada@example.com",
		"department": "IT", "role": "Engineer", "status": "ACTIVE",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Ada King", updated.Name())

	list, err := client.ListEmployees(ctx)
	assert.NoError(t, err)
	assert.Len(t, list, 1)

	assert.NoError(t, client.DeleteEmployee(ctx, created.ID()))
	list, err = client.ListEmployees(ctx)
	assert.NoError(t, err)
	assert.Empty(t, list)
}

func TestGetEmployee(t *testing.T) {
	_, client, _ := newFixture(t)
	ctx := context.Background()
	_, err := client.Login(ctx, "admin", "secret123")
	assert.NoError(t, err)

	created, err := client.CreateEmployee(ctx, models.FormDataRecord{
		"name": "Ada Lovelace", "email": "ada@example.com",
		"department": "IT", "role": "Engineer", "status": "ACTIVE",
	})
	assert.NoError(t, err)

	fetched, err := client.GetEmployee(ctx, created.ID())
	assert.NoError(t, err)
	assert.Equal(t, created.ID(), fetched.ID())
	assert.Equal(t, "Engineer", fetched.Role())

	_, err = client.GetEmployee(ctx, 999)
	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
}

func TestFormRoundTrip(t *testing.T) {
	_, client, _ := newFixture(t)
	ctx := context.Background()
	_, err := client.Login(ctx, "admin", "secret123")
	assert.NoError(t, err)

	saved := models.FormConfiguration{
		FormName:        "Employee Form",
		FormDescription: "onboarding",
		IsActive:        true,
		Fields: []models.FieldDescriptor{
			{ID: "field_a", Name: "shirt_size", Label: "Shirt Size", Type: models.FieldTypeSelect,
				Order: 7, Options: []string{"S", "M", "L"}},
		},
	}
	assert.NoError(t, client.SaveForm(ctx, saved))

	loaded, err := client.GetForm(ctx)
	assert.NoError(t, err)
	assert.Equal(t, saved.FormName, loaded.FormName)
	assert.Equal(t, saved.Fields, loaded.Fields)

	merged := models.MergedFields(loaded.Fields)
	assert.Len(t, merged, 7)
	assert.Equal(t, "shirt_size", merged[6].Name)
}

func TestDuplicateFieldNameSurfacesBackendMessage(t *testing.T) {
	_, client, _ := newFixture(t)
	ctx := context.Background()
	_, err := client.Login(ctx, "admin", "secret123")
	assert.NoError(t, err)

	err = client.SaveForm(ctx, models.FormConfiguration{
		FormName: "Employee Form",
		Fields: []models.FieldDescriptor{
			{ID: "a", Name: "dup", Type: models.FieldTypeText, Order: 7},
			{ID: "b", Name: "dup", Type: models.FieldTypeText, Order: 8},
		},
	})

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "duplicate field name: dup", apiErr.Message)
}

func TestRegisterAndChangePassword(t *testing.T) {
	_, client, _ := newFixture(t)
	ctx := context.Background()

	err := client.Register(ctx, RegisterInput{
		Username: "jane", Email: "jane@example.com",
		Password: "secret456", Password2: "secret456",
		FirstName: "Jane", LastName: "Smith",
	})
	assert.NoError(t, err)

	_, err = client.Login(ctx, "jane", "secret456")
	assert.NoError(t, err)

	assert.NoError(t, client.ChangePassword(ctx, "secret456", "newsecret1", "newsecret1"))

	_, err = client.Login(ctx, "jane", "newsecret1")
	assert.NoError(t, err)
}
