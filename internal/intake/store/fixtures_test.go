package store_test

import (
	"time"

	"civicdesk/internal/intake/models"
	"civicdesk/internal/intake/workflow"
	"civicdesk/pkg/domain"
)

func newEntity(name string, createdAt time.Time) *models.EntityProfile {
	return &models.EntityProfile{
		ID:                    domain.NewEntityID(),
		EntityName:            name,
		EntityType:            models.EntityMinistry,
		Governorate:           models.Baghdad,
		Address:               "Karrada, Baghdad",
		PhoneNumber:           "07701234567",
		Email:                 "info@example.gov.iq",
		ManagerName:           "Ali Hassan",
		ManagerPosition:       "Director",
		ManagerPhone:          "07707654321",
		ManagerEmail:          "ali@example.gov.iq",
		EstablishmentDate:     "2004-06-01",
		EmployeeCount:         120,
		AnnualBudget:          "1500000.50",
		ServicesProvided:      "licensing and permits",
		TargetAudience:        "citizens",
		CurrentProjects:       "e-services portal",
		FuturePlans:           "mobile app",
		PerformanceIndicators: "processing time",
		Challenges:            "staffing",
		Needs:                 "training",
		CreatedAt:             createdAt,
		UpdatedAt:             createdAt,
	}
}

func newFeedback(title string, createdAt time.Time) *models.FeedbackReport {
	return &models.FeedbackReport{
		ID:             domain.NewFeedbackID(),
		CitizenName:    "Sara Kareem",
		CitizenPhone:   "07711112222",
		CitizenEmail:   "sara@example.com",
		CitizenAddress: "Basra",
		FeedbackType:   models.FeedbackComplaint,
		Title:          title,
		Description:    "the office was closed during working hours",
		RelatedEntity:  "Ministry of Health",
		Governorate:    string(models.Basra),
		Priority:       models.PriorityMedium,
		Status:         workflow.StatusPending,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
}
