package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"diarias_backend/internals/features/allocations/dto"
	allocmodel "diarias_backend/internals/features/allocations/model"
	"diarias_backend/internals/features/allocations/service"
	fleetmodel "diarias_backend/internals/features/fleet/model"
	shiftmodel "diarias_backend/internals/features/shifts/model"
	"diarias_backend/internals/helpers/dbtime"
)

type AllocationRepository struct {
	db *gorm.DB
}

func NewAllocationRepository(db *gorm.DB) *AllocationRepository {
	return &AllocationRepository{db: db}
}

var _ service.PlannerStore = (*AllocationRepository)(nil)

func (r *AllocationRepository) GetShiftForPlanning(ctx context.Context, id uuid.UUID) (*service.PlannerShift, error) {
	var m shiftmodel.ShiftModel
	err := r.db.WithContext(ctx).Where("shift_id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &service.PlannerShift{
		ID:     m.ShiftID,
		Title:  m.ShiftTitle,
		Date:   time.Time(m.ShiftDate),
		Status: m.ShiftStatus,
	}, nil
}

// ActiveEnrollees: PENDING/CONFIRMED enrollments joined with the worker's
// profile, oldest enrollment first so seating follows enrollment order.
func (r *AllocationRepository) ActiveEnrollees(ctx context.Context, shiftID uuid.UUID) ([]service.Enrollee, error) {
	var rows []struct {
		EnrollmentID uuid.UUID  `gorm:"column:enrollment_id"`
		WorkerID     uuid.UUID  `gorm:"column:worker_id"`
		WorkerName   string     `gorm:"column:worker_name"`
		PointID      *uuid.UUID `gorm:"column:worker_boarding_point_id"`
	}
	err := r.db.WithContext(ctx).
		Table("enrollments").
		Select("enrollments.enrollment_id, workers.worker_id, workers.worker_name, workers.worker_boarding_point_id").
		Joins("JOIN workers ON workers.worker_id = enrollments.enrollment_worker_id").
		Where("enrollments.enrollment_shift_id = ?", shiftID).
		Where("enrollments.enrollment_status IN ?", []shiftmodel.EnrollmentStatus{shiftmodel.EnrollmentPending, shiftmodel.EnrollmentConfirmed}).
		Order("enrollments.enrollment_created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]service.Enrollee, 0, len(rows))
	for _, rw := range rows {
		out = append(out, service.Enrollee{
			EnrollmentID: rw.EnrollmentID,
			WorkerID:     rw.WorkerID,
			WorkerName:   rw.WorkerName,
			PointID:      rw.PointID,
		})
	}
	return out, nil
}

func (r *AllocationRepository) PointsByID(ctx context.Context, ids []uuid.UUID) ([]service.StopPoint, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var points []fleetmodel.BoardingPointModel
	err := r.db.WithContext(ctx).
		Where("point_id IN ?", ids).
		Find(&points).Error
	if err != nil {
		return nil, err
	}

	out := make([]service.StopPoint, 0, len(points))
	for _, p := range points {
		out = append(out, service.StopPoint{
			ID:        p.PointID,
			RouteID:   p.PointRouteID,
			Name:      p.PointName,
			Latitude:  p.PointLatitude,
			Longitude: p.PointLongitude,
			Order:     p.PointOrder,
		})
	}
	return out, nil
}

// AvailableVehicles: active vehicles minus those already allocated to a
// different shift on the same date, largest first so the planner needs the
// fewest vehicles.
func (r *AllocationRepository) AvailableVehicles(ctx context.Context, date time.Time, shiftID uuid.UUID) ([]service.VehicleInfo, error) {
	busy := r.db.
		Table("shift_allocations").
		Select("shift_allocations.allocation_vehicle_id").
		Joins("JOIN shifts ON shifts.shift_id = shift_allocations.allocation_shift_id").
		Where("shifts.shift_date = ?", date.Format("2006-01-02")).
		Where("shift_allocations.allocation_shift_id <> ?", shiftID)

	var vehicles []fleetmodel.VehicleModel
	err := r.db.WithContext(ctx).
		Where("vehicle_active = ?", true).
		Where("vehicle_id NOT IN (?)", busy).
		Order("vehicle_capacity DESC").
		Find(&vehicles).Error
	if err != nil {
		return nil, err
	}

	out := make([]service.VehicleInfo, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, service.VehicleInfo{
			ID:       v.VehicleID,
			Plate:    v.VehiclePlate,
			Capacity: v.VehicleCapacity,
		})
	}
	return out, nil
}

// ReplaceAllocations swaps the shift's plan in one transaction: the old rows
// go and the new ones land together, so a failed insert rolls the delete back
// and the previous plan survives. The Workers association is persisted
// alongside each allocation row.
func (r *AllocationRepository) ReplaceAllocations(ctx context.Context, shiftID uuid.UUID, allocations []allocmodel.ShiftAllocationModel) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub := tx.Table("shift_allocations").
			Select("allocation_id").
			Where("allocation_shift_id = ?", shiftID)
		if err := tx.Where("worker_allocation_allocation_id IN (?)", sub).
			Delete(&allocmodel.WorkerAllocationModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("allocation_shift_id = ?", shiftID).
			Delete(&allocmodel.ShiftAllocationModel{}).Error; err != nil {
			return err
		}
		for i := range allocations {
			if err := tx.Create(&allocations[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

/* =========================================================
   Read views
========================================================= */

// GetShiftAllocations: the full plan for one shift, vehicle by vehicle.
func (r *AllocationRepository) GetShiftAllocations(ctx context.Context, shiftID uuid.UUID) ([]dto.VehicleAllocationView, error) {
	var heads []struct {
		AllocationID  uuid.UUID   `gorm:"column:allocation_id"`
		VehicleID     uuid.UUID   `gorm:"column:vehicle_id"`
		VehiclePlate  string      `gorm:"column:vehicle_plate"`
		VehicleModel  string      `gorm:"column:vehicle_model"`
		DriverName    string      `gorm:"column:vehicle_driver_name"`
		DriverPhone   string      `gorm:"column:vehicle_driver_phone"`
		DepartureTime *dbtime.Tod `gorm:"column:allocation_departure_time"`
	}
	err := r.db.WithContext(ctx).
		Table("shift_allocations").
		Select("shift_allocations.allocation_id, vehicles.vehicle_id, vehicles.vehicle_plate, vehicles.vehicle_model, vehicles.vehicle_driver_name, vehicles.vehicle_driver_phone, shift_allocations.allocation_departure_time").
		Joins("JOIN vehicles ON vehicles.vehicle_id = shift_allocations.allocation_vehicle_id").
		Where("shift_allocations.allocation_shift_id = ?", shiftID).
		Order("shift_allocations.allocation_created_at ASC").
		Scan(&heads).Error
	if err != nil {
		return nil, err
	}

	views := make([]dto.VehicleAllocationView, 0, len(heads))
	for _, h := range heads {
		var seats []struct {
			WorkerAllocationID uuid.UUID   `gorm:"column:worker_allocation_id"`
			EnrollmentID       uuid.UUID   `gorm:"column:worker_allocation_enrollment_id"`
			WorkerID           uuid.UUID   `gorm:"column:worker_id"`
			WorkerName         string      `gorm:"column:worker_name"`
			PointName          string      `gorm:"column:point_name"`
			EstimatedTime      *dbtime.Tod `gorm:"column:worker_allocation_estimated_time"`
			BoardingOrder      int         `gorm:"column:worker_allocation_boarding_order"`
		}
		err := r.db.WithContext(ctx).
			Table("worker_allocations").
			Select("worker_allocations.worker_allocation_id, worker_allocations.worker_allocation_enrollment_id, workers.worker_id, workers.worker_name, boarding_points.point_name, worker_allocations.worker_allocation_estimated_time, worker_allocations.worker_allocation_boarding_order").
			Joins("JOIN enrollments ON enrollments.enrollment_id = worker_allocations.worker_allocation_enrollment_id").
			Joins("JOIN workers ON workers.worker_id = enrollments.enrollment_worker_id").
			Joins("LEFT JOIN boarding_points ON boarding_points.point_id = worker_allocations.worker_allocation_point_id").
			Where("worker_allocations.worker_allocation_allocation_id = ?", h.AllocationID).
			Order("worker_allocations.worker_allocation_boarding_order ASC").
			Scan(&seats).Error
		if err != nil {
			return nil, err
		}

		view := dto.VehicleAllocationView{
			AllocationID:  h.AllocationID,
			VehicleID:     h.VehicleID,
			VehiclePlate:  h.VehiclePlate,
			VehicleModel:  h.VehicleModel,
			DriverName:    h.DriverName,
			DriverPhone:   h.DriverPhone,
			DepartureTime: h.DepartureTime,
			Workers:       make([]dto.AllocatedWorkerView, 0, len(seats)),
		}
		for _, s := range seats {
			view.Workers = append(view.Workers, dto.AllocatedWorkerView{
				WorkerAllocationID: s.WorkerAllocationID,
				EnrollmentID:       s.EnrollmentID,
				WorkerID:           s.WorkerID,
				WorkerName:         s.WorkerName,
				PointName:          s.PointName,
				EstimatedTime:      s.EstimatedTime,
				BoardingOrder:      s.BoardingOrder,
			})
		}
		views = append(views, view)
	}
	return views, nil
}

// GetMyAllocations: upcoming seatings for one worker, soonest shift first.
func (r *AllocationRepository) GetMyAllocations(ctx context.Context, workerID uuid.UUID) ([]dto.MyAllocationView, error) {
	var rows []struct {
		ShiftID       uuid.UUID   `gorm:"column:shift_id"`
		ShiftTitle    string      `gorm:"column:shift_title"`
		ShiftDate     time.Time   `gorm:"column:shift_date"`
		ShiftLocation string      `gorm:"column:shift_location"`
		VehiclePlate  string      `gorm:"column:vehicle_plate"`
		VehicleModel  string      `gorm:"column:vehicle_model"`
		DriverName    string      `gorm:"column:vehicle_driver_name"`
		DriverPhone   string      `gorm:"column:vehicle_driver_phone"`
		PointName     string      `gorm:"column:point_name"`
		PointAddress  string      `gorm:"column:point_address"`
		EstimatedTime *dbtime.Tod `gorm:"column:worker_allocation_estimated_time"`
		BoardingOrder int         `gorm:"column:worker_allocation_boarding_order"`
	}
	err := r.db.WithContext(ctx).
		Table("worker_allocations").
		Select("shifts.shift_id, shifts.shift_title, shifts.shift_date, shifts.shift_location, vehicles.vehicle_plate, vehicles.vehicle_model, vehicles.vehicle_driver_name, vehicles.vehicle_driver_phone, boarding_points.point_name, boarding_points.point_address, worker_allocations.worker_allocation_estimated_time, worker_allocations.worker_allocation_boarding_order").
		Joins("JOIN enrollments ON enrollments.enrollment_id = worker_allocations.worker_allocation_enrollment_id").
		Joins("JOIN shift_allocations ON shift_allocations.allocation_id = worker_allocations.worker_allocation_allocation_id").
		Joins("JOIN shifts ON shifts.shift_id = shift_allocations.allocation_shift_id").
		Joins("JOIN vehicles ON vehicles.vehicle_id = shift_allocations.allocation_vehicle_id").
		Joins("LEFT JOIN boarding_points ON boarding_points.point_id = worker_allocations.worker_allocation_point_id").
		Where("enrollments.enrollment_worker_id = ?", workerID).
		Where("shifts.shift_date >= ?", time.Now().Format("2006-01-02")).
		Order("shifts.shift_date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]dto.MyAllocationView, 0, len(rows))
	for _, rw := range rows {
		out = append(out, dto.MyAllocationView{
			ShiftID:       rw.ShiftID,
			ShiftTitle:    rw.ShiftTitle,
			ShiftDate:     rw.ShiftDate.Format("2006-01-02"),
			ShiftLocation: rw.ShiftLocation,
			VehiclePlate:  rw.VehiclePlate,
			VehicleModel:  rw.VehicleModel,
			DriverName:    rw.DriverName,
			DriverPhone:   rw.DriverPhone,
			PointName:     rw.PointName,
			PointAddress:  rw.PointAddress,
			EstimatedTime: rw.EstimatedTime,
			BoardingOrder: rw.BoardingOrder,
		})
	}
	return out, nil
}
