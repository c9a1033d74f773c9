package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	allocmodel "diarias_backend/internals/features/allocations/model"
	shiftmodel "diarias_backend/internals/features/shifts/model"
	"diarias_backend/internals/helpers/dbtime"
)

var (
	ErrShiftNotFound = errors.New("shift not found")
	// ErrShiftNotPlannable: allocation only makes sense before the shift
	// actually runs.
	ErrShiftNotPlannable = errors.New("shift is not in a plannable status")
)

/* =========================================================
   Flat views + store contract
========================================================= */

type PlannerShift struct {
	ID     uuid.UUID
	Title  string
	Date   time.Time
	Status shiftmodel.ShiftStatus
}

// Enrollee is an active enrollment flattened for seating.
type Enrollee struct {
	EnrollmentID uuid.UUID
	WorkerID     uuid.UUID
	WorkerName   string
	PointID      *uuid.UUID
}

type VehicleInfo struct {
	ID       uuid.UUID
	Plate    string
	Capacity int
}

type PlannerStore interface {
	GetShiftForPlanning(ctx context.Context, id uuid.UUID) (*PlannerShift, error)
	// ActiveEnrollees returns PENDING/CONFIRMED enrollees in enrollment
	// order (oldest first).
	ActiveEnrollees(ctx context.Context, shiftID uuid.UUID) ([]Enrollee, error)
	PointsByID(ctx context.Context, ids []uuid.UUID) ([]StopPoint, error)
	// AvailableVehicles returns active vehicles not already allocated to a
	// different shift on the given date, largest capacity first.
	AvailableVehicles(ctx context.Context, date time.Time, shiftID uuid.UUID) ([]VehicleInfo, error)
	// ReplaceAllocations swaps the shift's whole plan in one transaction:
	// delete then insert, so a failed run never leaves a partial mix. An
	// empty slice is a plain reset.
	ReplaceAllocations(ctx context.Context, shiftID uuid.UUID, allocations []allocmodel.ShiftAllocationModel) error
}

// AllocationResult is the operator-facing outcome of a planning run. A run
// that cannot seat anyone is still a successful call; Success reports whether
// a plan was produced.
type AllocationResult struct {
	Success             bool     `json:"success"`
	Message             string   `json:"message"`
	VehiclesUsed        int      `json:"vehicles_used"`
	WorkersAllocated    int      `json:"workers_allocated"`
	WorkersWithoutPoint []string `json:"workers_without_point,omitempty"`
}

/* =========================================================
   Planner
========================================================= */

// PlannerService turns a shift's active enrollments into vehicle seatings.
// The operator picks the departure time; each vehicle leaves at it and every
// passage estimate is anchored on it. Each run is a full reset swapped in as
// one transaction, so re-running after roster changes is always safe. Runs
// for the same shift are serialized with a per-shift mutex.
type PlannerService struct {
	store     PlannerStore
	estimator *TimingEstimator
	locks     sync.Map // uuid.UUID -> *sync.Mutex
}

func NewPlannerService(store PlannerStore, estimator *TimingEstimator) *PlannerService {
	return &PlannerService{store: store, estimator: estimator}
}

func (s *PlannerService) shiftLock(id uuid.UUID) *sync.Mutex {
	v, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return v.(*sync.Mutex)
}

func (s *PlannerService) GeneratePlan(ctx context.Context, shiftID uuid.UUID, departure dbtime.Tod) (*AllocationResult, error) {
	mu := s.shiftLock(shiftID)
	mu.Lock()
	defer mu.Unlock()

	shift, err := s.store.GetShiftForPlanning(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, ErrShiftNotFound
	}
	switch shift.Status {
	case shiftmodel.ShiftOpen, shiftmodel.ShiftClosed:
	default:
		return nil, ErrShiftNotPlannable
	}

	enrollees, err := s.store.ActiveEnrollees(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if len(enrollees) == 0 {
		return s.resetWith(ctx, shiftID, &AllocationResult{
			Success: false,
			Message: "No active enrollments to allocate",
		})
	}

	var seatable []Enrollee
	var withoutPoint []string
	for _, e := range enrollees {
		if e.PointID == nil {
			withoutPoint = append(withoutPoint, e.WorkerName)
			continue
		}
		seatable = append(seatable, e)
	}
	if len(seatable) == 0 {
		return s.resetWith(ctx, shiftID, &AllocationResult{
			Success:             false,
			Message:             "No enrolled worker has a boarding point set",
			WorkersWithoutPoint: withoutPoint,
		})
	}

	stops, err := s.loadStops(ctx, seatable)
	if err != nil {
		return nil, err
	}

	vehicles, err := s.store.AvailableVehicles(ctx, shift.Date, shift.ID)
	if err != nil {
		return nil, err
	}
	if len(vehicles) == 0 {
		return s.resetWith(ctx, shiftID, &AllocationResult{
			Success:             false,
			Message:             "No vehicles available for this date",
			WorkersWithoutPoint: withoutPoint,
		})
	}

	allocations, seated := s.seat(ctx, shiftID, departure, seatable, stops, vehicles)
	if err := s.store.ReplaceAllocations(ctx, shiftID, allocations); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Allocation generated: %d vehicle(s), %d worker(s) seated", len(allocations), seated)
	if leftover := len(seatable) - seated; leftover > 0 {
		message += fmt.Sprintf("; %d worker(s) left out for lack of capacity", leftover)
	}
	return &AllocationResult{
		Success:             true,
		Message:             message,
		VehiclesUsed:        len(allocations),
		WorkersAllocated:    seated,
		WorkersWithoutPoint: withoutPoint,
	}, nil
}

// resetWith clears any previous plan before reporting a run that produced
// none, so stale seatings never survive a roster that no longer supports
// them.
func (s *PlannerService) resetWith(ctx context.Context, shiftID uuid.UUID, result *AllocationResult) (*AllocationResult, error) {
	if err := s.store.ReplaceAllocations(ctx, shiftID, nil); err != nil {
		return nil, err
	}
	return result, nil
}

// loadStops fetches the distinct boarding points referenced by the enrollees
// and sorts them into visiting order.
func (s *PlannerService) loadStops(ctx context.Context, enrollees []Enrollee) ([]StopPoint, error) {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, e := range enrollees {
		if !seen[*e.PointID] {
			seen[*e.PointID] = true
			ids = append(ids, *e.PointID)
		}
	}
	stops, err := s.store.PointsByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(stops, func(i, j int) bool {
		return stops[i].rank() < stops[j].rank()
	})
	return stops, nil
}

// seat fills vehicles greedily: enrollees in enrollment order, vehicles in
// capacity order. Boarding order and passage times follow the route's stop
// order, restarting per vehicle since each vehicle drives the route itself.
func (s *PlannerService) seat(ctx context.Context, shiftID uuid.UUID, departure dbtime.Tod, seatable []Enrollee, stops []StopPoint, vehicles []VehicleInfo) ([]allocmodel.ShiftAllocationModel, int) {
	var allocations []allocmodel.ShiftAllocationModel
	seated := 0
	remaining := seatable

	for _, vehicle := range vehicles {
		if len(remaining) == 0 {
			break
		}
		take := vehicle.Capacity
		if take > len(remaining) {
			take = len(remaining)
		}
		batch := remaining[:take]
		remaining = remaining[take:]

		allocations = append(allocations, s.buildAllocation(ctx, shiftID, departure, vehicle, batch, stops))
		seated += take
	}
	return allocations, seated
}

func (s *PlannerService) buildAllocation(ctx context.Context, shiftID uuid.UUID, departure dbtime.Tod, vehicle VehicleInfo, batch []Enrollee, stops []StopPoint) allocmodel.ShiftAllocationModel {
	byPoint := make(map[uuid.UUID][]Enrollee)
	for _, e := range batch {
		byPoint[*e.PointID] = append(byPoint[*e.PointID], e)
	}

	var occupied []StopPoint
	for _, stop := range stops {
		if len(byPoint[stop.ID]) > 0 {
			occupied = append(occupied, stop)
		}
	}

	etas := s.estimator.EstimateArrivals(ctx, departure, occupied)

	dep := departure
	alloc := allocmodel.ShiftAllocationModel{
		AllocationShiftID:       shiftID,
		AllocationVehicleID:     vehicle.ID,
		AllocationRouteID:       sharedRoute(occupied),
		AllocationDepartureTime: &dep,
	}

	order := 0
	for _, stop := range occupied {
		eta := etas[stop.ID]
		for _, e := range byPoint[stop.ID] {
			order++
			alloc.Workers = append(alloc.Workers, allocmodel.WorkerAllocationModel{
				WorkerAllocationEnrollmentID:  e.EnrollmentID,
				WorkerAllocationPointID:       e.PointID,
				WorkerAllocationEstimatedTime: &eta,
				WorkerAllocationBoardingOrder: order,
			})
		}
	}
	return alloc
}

// sharedRoute: the allocation carries a route reference only when every
// occupied stop belongs to the same route.
func sharedRoute(stops []StopPoint) *uuid.UUID {
	if len(stops) == 0 {
		return nil
	}
	route := stops[0].RouteID
	for _, stop := range stops[1:] {
		if stop.RouteID != route {
			return nil
		}
	}
	return &route
}
