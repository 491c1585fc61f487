package postgres_test

import (
	"context"
	"testing"

	"github.com/maheshk/workpulse/internal/domain"
	"github.com/maheshk/workpulse/internal/repository/postgres"
	"github.com/maheshk/workpulse/internal/testutil"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestUniqueIndexViolationsTranslate(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	companies := postgres.NewCompanyRepository(testDB.DB)
	employees := postgres.NewEmployeeRepository(testDB.DB)
	ctx := context.Background()

	company, _ := testutil.NewCompanyBuilder().Build(t, testDB.DB)
	employee, _ := testutil.NewEmployeeBuilder().WithCompany(company).Build(t, testDB.DB)

	t.Run("owner email", func(t *testing.T) {
		err := companies.Create(ctx, &domain.Company{
			CompanyName:       "copycat",
			OwnerName:         "Copy Cat",
			OwnerEmail:        company.OwnerEmail,
			OwnerPasswordHash: "x",
		})
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})

	t.Run("employee email within company", func(t *testing.T) {
		err := employees.Create(ctx, &domain.Employee{
			CompanyID:    company.ID,
			Name:         "Copy Cat",
			Email:        employee.Email,
			PasswordHash: "x",
		})
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})

	t.Run("employee email across companies is allowed", func(t *testing.T) {
		other, _ := testutil.NewCompanyBuilder().Build(t, testDB.DB)
		err := employees.Create(ctx, &domain.Employee{
			CompanyID:    other.ID,
			Name:         "Other Cat",
			Email:        employee.Email,
			PasswordHash: "x",
		})
		assert.NoError(t, err)
	})
}
