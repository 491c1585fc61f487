package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/maheshk/workpulse/internal/domain"
	"github.com/maheshk/workpulse/internal/repository"
	"github.com/maheshk/workpulse/internal/repository/postgres"
	"github.com/maheshk/workpulse/internal/service"
	"github.com/maheshk/workpulse/internal/testutil"
	"github.com/maheshk/workpulse/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEmployeeService(t *testing.T) (*service.EmployeeService, *testutil.TestDB, *token.Service) {
	t.Helper()

	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	tokens := token.NewService(testutil.TestConfig())
	return service.NewEmployeeService(repos.Employee, tokens), testDB, tokens
}

func TestEmployeeService_Add(t *testing.T) {
	svc, testDB, tokens := newEmployeeService(t)
	ctx := context.Background()

	companyA, _ := testutil.NewCompanyBuilder().Build(t, testDB.DB)
	companyB, _ := testutil.NewCompanyBuilder().Build(t, testDB.DB)

	t.Run("creates employee at version zero", func(t *testing.T) {
		result, err := svc.Add(ctx, companyA.ID, service.AddEmployeeInput{
			Name:     "Dana",
			Email:    "dana@acme.test",
			Password: "supersecret",
		})
		require.NoError(t, err)
		assert.Equal(t, companyA.ID, result.Employee.CompanyID)
		assert.True(t, result.Employee.IsActive)
		assert.Equal(t, 0, result.Employee.TokenVersion)

		claims, err := tokens.VerifyEmployee(result.Token)
		require.NoError(t, err)
		assert.Equal(t, result.Employee.ID, claims.EmployeeID)
		assert.Equal(t, 0, claims.Version)
	})

	t.Run("rejects duplicate email within the company", func(t *testing.T) {
		_, err := svc.Add(ctx, companyA.ID, service.AddEmployeeInput{
			Name:     "Dana Again",
			Email:    "dana@acme.test",
			Password: "supersecret",
		})
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})

	t.Run("allows the same email under another company", func(t *testing.T) {
		result, err := svc.Add(ctx, companyB.ID, service.AddEmployeeInput{
			Name:     "Other Dana",
			Email:    "dana@acme.test",
			Password: "supersecret",
		})
		require.NoError(t, err)
		assert.Equal(t, companyB.ID, result.Employee.CompanyID)
	})
}

// collidingEmployeeRepo simulates an add that loses the race against a
// concurrent insert of the same email in the same company.
type collidingEmployeeRepo struct {
	repository.EmployeeRepository
}

func (r *collidingEmployeeRepo) ExistsByEmail(ctx context.Context, companyID uuid.UUID, email string) (bool, error) {
	return false, nil
}

func (r *collidingEmployeeRepo) Create(ctx context.Context, employee *domain.Employee) error {
	return gorm.ErrDuplicatedKey
}

func TestEmployeeService_AddConcurrentDuplicate(t *testing.T) {
	svc := service.NewEmployeeService(&collidingEmployeeRepo{}, token.NewService(testutil.TestConfig()))

	_, err := svc.Add(context.Background(), uuid.New(), service.AddEmployeeInput{
		Name:     "Racer",
		Email:    "racer@acme.test",
		Password: "supersecret",
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestEmployeeService_ToggleStatus(t *testing.T) {
	svc, testDB, _ := newEmployeeService(t)
	ctx := context.Background()

	company, _ := testutil.NewCompanyBuilder().Build(t, testDB.DB)
	other, _ := testutil.NewCompanyBuilder().Build(t, testDB.DB)
	employee, _ := testutil.NewEmployeeBuilder().WithCompany(company).Build(t, testDB.DB)

	t.Run("flips the flag both ways", func(t *testing.T) {
		toggled, err := svc.ToggleStatus(ctx, company.ID, employee.ID)
		require.NoError(t, err)
		assert.False(t, toggled.IsActive)

		toggled, err = svc.ToggleStatus(ctx, company.ID, employee.ID)
		require.NoError(t, err)
		assert.True(t, toggled.IsActive)
	})

	t.Run("refuses an employee of another company", func(t *testing.T) {
		_, err := svc.ToggleStatus(ctx, other.ID, employee.ID)
		assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
	})

	t.Run("unknown employee", func(t *testing.T) {
		_, err := svc.ToggleStatus(ctx, company.ID, uuid.New())
		assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_RevokeTokens(t *testing.T) {
	svc, testDB, _ := newEmployeeService(t)
	ctx := context.Background()

	company, _ := testutil.NewCompanyBuilder().Build(t, testDB.DB)
	other, _ := testutil.NewCompanyBuilder().Build(t, testDB.DB)
	employee, _ := testutil.NewEmployeeBuilder().WithCompany(company).Build(t, testDB.DB)

	t.Run("bumps the version", func(t *testing.T) {
		bumped, err := svc.RevokeTokens(ctx, company.ID, employee.ID)
		require.NoError(t, err)
		assert.Equal(t, employee.TokenVersion+1, bumped.TokenVersion)

		bumped, err = svc.RevokeTokens(ctx, company.ID, employee.ID)
		require.NoError(t, err)
		assert.Equal(t, employee.TokenVersion+2, bumped.TokenVersion)
	})

	t.Run("scoped to the admin's company", func(t *testing.T) {
		_, err := svc.RevokeTokens(ctx, other.ID, employee.ID)
		assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_Login(t *testing.T) {
	svc, testDB, tokens := newEmployeeService(t)
	ctx := context.Background()

	companyA, _ := testutil.NewCompanyBuilder().Build(t, testDB.DB)
	companyB, _ := testutil.NewCompanyBuilder().Build(t, testDB.DB)

	// The same email under two tenants with different passwords; login must
	// find the matching candidate.
	shared := "worker@shared.test"
	employeeA, passwordA := testutil.NewEmployeeBuilder().
		WithCompany(companyA).WithEmail(shared).WithPassword("password-a1").Build(t, testDB.DB)
	employeeB, passwordB := testutil.NewEmployeeBuilder().
		WithCompany(companyB).WithEmail(shared).WithPassword("password-b2").Build(t, testDB.DB)

	t.Run("resolves the right tenant by password", func(t *testing.T) {
		result, err := svc.Login(ctx, shared, passwordA)
		require.NoError(t, err)
		assert.Equal(t, employeeA.ID, result.Employee.ID)

		result, err = svc.Login(ctx, shared, passwordB)
		require.NoError(t, err)
		assert.Equal(t, employeeB.ID, result.Employee.ID)
	})

	t.Run("token carries the stored version", func(t *testing.T) {
		bumped, err := svc.RevokeTokens(ctx, companyA.ID, employeeA.ID)
		require.NoError(t, err)

		result, err := svc.Login(ctx, shared, passwordA)
		require.NoError(t, err)

		claims, err := tokens.VerifyEmployee(result.Token)
		require.NoError(t, err)
		assert.Equal(t, bumped.TokenVersion, claims.Version)
	})

	t.Run("inactive accounts cannot log in", func(t *testing.T) {
		inactive, password := testutil.NewEmployeeBuilder().
			WithCompany(companyA).WithActive(false).Build(t, testDB.DB)

		_, err := svc.Login(ctx, inactive.Email, password)
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, shared, "neither-password")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "ghost@nowhere.test", "whatever")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestEmployeeService_RotateToken(t *testing.T) {
	svc, testDB, tokens := newEmployeeService(t)
	ctx := context.Background()

	employee, _ := testutil.NewEmployeeBuilder().Build(t, testDB.DB)

	result, err := svc.RotateToken(ctx, employee.ID)
	require.NoError(t, err)
	assert.Equal(t, employee.TokenVersion+1, result.Employee.TokenVersion)

	claims, err := tokens.VerifyEmployee(result.Token)
	require.NoError(t, err)
	assert.Equal(t, employee.TokenVersion+1, claims.Version)

	_, err = svc.RotateToken(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
}
