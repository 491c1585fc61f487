package postgres

import (
	"github.com/maheshk/workpulse/internal/domain"
	"github.com/maheshk/workpulse/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.Plan{},
		&domain.Company{},
		&domain.Employee{},
		&domain.Capture{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		Company:  NewCompanyRepository(db),
		Plan:     NewPlanRepository(db),
		Employee: NewEmployeeRepository(db),
		Capture:  NewCaptureRepository(db),
	}
}
