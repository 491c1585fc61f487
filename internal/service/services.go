package service

import (
	"github.com/maheshk/workpulse/internal/realtime"
	"github.com/maheshk/workpulse/internal/repository"
	"github.com/maheshk/workpulse/internal/storage"
	"github.com/maheshk/workpulse/internal/token"
)

type Services struct {
	Company  *CompanyService
	Employee *EmployeeService
	Capture  *CaptureService
}

func NewServices(repos *repository.Repositories, tokens *token.Service, objects storage.ObjectStore, feed *realtime.Hub) *Services {
	return &Services{
		Company:  NewCompanyService(repos.Company, repos.Plan, tokens),
		Employee: NewEmployeeService(repos.Employee, tokens),
		Capture:  NewCaptureService(repos.Capture, repos.Employee, objects, feed),
	}
}
