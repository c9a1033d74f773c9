package dto

import "github.com/google/uuid"

type CreateWorkerRequest struct {
	WorkerName            string     `json:"worker_name" validate:"required,min=2,max=100"`
	WorkerEmail           string     `json:"worker_email" validate:"required,email,max=100"`
	WorkerPhone           string     `json:"worker_phone" validate:"omitempty,max=20"`
	WorkerBoardingPointID *uuid.UUID `json:"worker_boarding_point_id"`
}

type UpdateWorkerRequest struct {
	WorkerName            *string    `json:"worker_name" validate:"omitempty,min=2,max=100"`
	WorkerEmail           *string    `json:"worker_email" validate:"omitempty,email,max=100"`
	WorkerPhone           *string    `json:"worker_phone" validate:"omitempty,max=20"`
	WorkerBoardingPointID *uuid.UUID `json:"worker_boarding_point_id"`
	WorkerActive          *bool      `json:"worker_active"`
}
