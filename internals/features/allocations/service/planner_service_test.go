package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diarias_backend/internals/features/allocations/maps"
	allocmodel "diarias_backend/internals/features/allocations/model"
	shiftmodel "diarias_backend/internals/features/shifts/model"
	"diarias_backend/internals/helpers/dbtime"
)

/* =========================================================
   Fakes
========================================================= */

type vehicleQuery struct {
	date    time.Time
	shiftID uuid.UUID
}

type fakePlannerStore struct {
	shift     *PlannerShift
	enrollees []Enrollee
	points    map[uuid.UUID]StopPoint
	vehicles  []VehicleInfo

	// busyOn marks a vehicle as allocated to some other shift on a date;
	// AvailableVehicles filters with the arguments the planner passes in.
	busyOn map[uuid.UUID]time.Time

	vehicleQueries []vehicleQuery
	replacements   [][]allocmodel.ShiftAllocationModel
	replaceErr     error
}

func (f *fakePlannerStore) GetShiftForPlanning(_ context.Context, id uuid.UUID) (*PlannerShift, error) {
	if f.shift == nil || f.shift.ID != id {
		return nil, nil
	}
	return f.shift, nil
}

func (f *fakePlannerStore) ActiveEnrollees(_ context.Context, _ uuid.UUID) ([]Enrollee, error) {
	return f.enrollees, nil
}

func (f *fakePlannerStore) PointsByID(_ context.Context, ids []uuid.UUID) ([]StopPoint, error) {
	var out []StopPoint
	for _, id := range ids {
		if p, ok := f.points[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlannerStore) AvailableVehicles(_ context.Context, date time.Time, shiftID uuid.UUID) ([]VehicleInfo, error) {
	f.vehicleQueries = append(f.vehicleQueries, vehicleQuery{date: date, shiftID: shiftID})
	var out []VehicleInfo
	for _, v := range f.vehicles {
		if busy, ok := f.busyOn[v.ID]; ok && busy.Equal(date) {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (f *fakePlannerStore) ReplaceAllocations(_ context.Context, _ uuid.UUID, allocations []allocmodel.ShiftAllocationModel) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replacements = append(f.replacements, allocations)
	return nil
}

// lastPlan: the allocations persisted by the most recent run.
func (f *fakePlannerStore) lastPlan() []allocmodel.ShiftAllocationModel {
	if len(f.replacements) == 0 {
		return nil
	}
	return f.replacements[len(f.replacements)-1]
}

type fakeDirections struct {
	minutes map[string]float64
	err     error
	calls   int
}

func (f *fakeDirections) TravelMinutes(_ context.Context, origin, dest maps.LatLng) (float64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	key := fmt.Sprintf("%.0f->%.0f", origin.Lat, dest.Lat)
	if m, ok := f.minutes[key]; ok {
		return m, nil
	}
	return 0, errors.New("no leg configured")
}

/* =========================================================
   Helpers
========================================================= */

func ptr[T any](v T) *T { return &v }

func tod(s string) dbtime.Tod {
	t, err := dbtime.Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func stop(route uuid.UUID, name string, lat float64, order *int) StopPoint {
	return StopPoint{
		ID:        uuid.New(),
		RouteID:   route,
		Name:      name,
		Latitude:  ptr(lat),
		Longitude: ptr(lat),
		Order:     order,
	}
}

func enrollee(name string, point *uuid.UUID) Enrollee {
	return Enrollee{
		EnrollmentID: uuid.New(),
		WorkerID:     uuid.New(),
		WorkerName:   name,
		PointID:      point,
	}
}

func openShift() *PlannerShift {
	return &PlannerShift{
		ID:     uuid.New(),
		Title:  "Night picking",
		Date:   time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		Status: shiftmodel.ShiftOpen,
	}
}

/* =========================================================
   Timing estimator
========================================================= */

func TestEstimateArrivals_FirstStopIsDeparture(t *testing.T) {
	route := uuid.New()
	stops := []StopPoint{stop(route, "A", 1, ptr(1)), stop(route, "B", 2, ptr(2))}
	est := NewTimingEstimator(nil, 10, 0)

	etas := est.EstimateArrivals(context.Background(), tod("05:30"), stops)

	assert.Equal(t, "05:30", etas[stops[0].ID].HHMM())
	assert.Equal(t, "05:40", etas[stops[1].ID].HHMM())
}

func TestEstimateArrivals_ProviderDurations(t *testing.T) {
	route := uuid.New()
	stops := []StopPoint{
		stop(route, "A", 1, ptr(1)),
		stop(route, "B", 2, ptr(2)),
		stop(route, "C", 3, ptr(3)),
	}
	provider := &fakeDirections{minutes: map[string]float64{"1->2": 7, "2->3": 12}}
	est := NewTimingEstimator(provider, 10, 0)

	etas := est.EstimateArrivals(context.Background(), tod("06:00"), stops)

	assert.Equal(t, "06:00", etas[stops[0].ID].HHMM())
	assert.Equal(t, "06:07", etas[stops[1].ID].HHMM())
	assert.Equal(t, "06:19", etas[stops[2].ID].HHMM())
	assert.Equal(t, 2, provider.calls)
}

func TestEstimateArrivals_ProviderFailureFallsBack(t *testing.T) {
	route := uuid.New()
	stops := []StopPoint{stop(route, "A", 1, ptr(1)), stop(route, "B", 2, ptr(2))}
	provider := &fakeDirections{err: errors.New("quota exceeded")}
	est := NewTimingEstimator(provider, 15, 0)

	etas := est.EstimateArrivals(context.Background(), tod("06:00"), stops)

	assert.Equal(t, "06:15", etas[stops[1].ID].HHMM())
}

func TestEstimateArrivals_MissingCoordinatesFallsBack(t *testing.T) {
	route := uuid.New()
	blind := StopPoint{ID: uuid.New(), RouteID: route, Name: "B", Order: ptr(2)}
	stops := []StopPoint{stop(route, "A", 1, ptr(1)), blind}
	provider := &fakeDirections{minutes: map[string]float64{}}
	est := NewTimingEstimator(provider, 10, 0)

	etas := est.EstimateArrivals(context.Background(), tod("06:00"), stops)

	assert.Equal(t, "06:10", etas[blind.ID].HHMM())
	assert.Zero(t, provider.calls)
}

func TestEstimateArrivals_DwellAddedPerHop(t *testing.T) {
	route := uuid.New()
	stops := []StopPoint{
		stop(route, "A", 1, ptr(1)),
		stop(route, "B", 2, ptr(2)),
		stop(route, "C", 3, ptr(3)),
	}
	est := NewTimingEstimator(nil, 10, 2)

	etas := est.EstimateArrivals(context.Background(), tod("06:00"), stops)

	assert.Equal(t, "06:00", etas[stops[0].ID].HHMM())
	assert.Equal(t, "06:12", etas[stops[1].ID].HHMM())
	assert.Equal(t, "06:24", etas[stops[2].ID].HHMM())
}

/* =========================================================
   Planner
========================================================= */

func newPlanner(store PlannerStore) *PlannerService {
	return NewPlannerService(store, NewTimingEstimator(nil, 10, 0))
}

func TestGeneratePlan_ShiftNotFound(t *testing.T) {
	store := &fakePlannerStore{}
	_, err := newPlanner(store).GeneratePlan(context.Background(), uuid.New(), tod("06:00"))
	assert.ErrorIs(t, err, ErrShiftNotFound)
}

func TestGeneratePlan_RejectsRunningShift(t *testing.T) {
	shift := openShift()
	shift.Status = shiftmodel.ShiftInProgress
	store := &fakePlannerStore{shift: shift}

	_, err := newPlanner(store).GeneratePlan(context.Background(), shift.ID, tod("06:00"))
	assert.ErrorIs(t, err, ErrShiftNotPlannable)
	assert.Empty(t, store.replacements)
}

func TestGeneratePlan_NoEnrollmentsStillResets(t *testing.T) {
	shift := openShift()
	store := &fakePlannerStore{shift: shift}

	result, err := newPlanner(store).GeneratePlan(context.Background(), shift.ID, tod("06:00"))
	require.NoError(t, err)
	assert.False(t, result.Success)
	require.Len(t, store.replacements, 1)
	assert.Empty(t, store.replacements[0])
}

func TestGeneratePlan_NobodyHasBoardingPoint(t *testing.T) {
	shift := openShift()
	store := &fakePlannerStore{
		shift:     shift,
		enrollees: []Enrollee{enrollee("Ana", nil), enrollee("Bruno", nil)},
	}

	result, err := newPlanner(store).GeneratePlan(context.Background(), shift.ID, tod("06:00"))
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, []string{"Ana", "Bruno"}, result.WorkersWithoutPoint)
	require.Len(t, store.replacements, 1)
	assert.Empty(t, store.replacements[0])
}

func TestGeneratePlan_NoVehicles(t *testing.T) {
	shift := openShift()
	route := uuid.New()
	p := stop(route, "A", 1, ptr(1))
	store := &fakePlannerStore{
		shift:     shift,
		enrollees: []Enrollee{enrollee("Ana", ptr(p.ID))},
		points:    map[uuid.UUID]StopPoint{p.ID: p},
	}

	result, err := newPlanner(store).GeneratePlan(context.Background(), shift.ID, tod("06:00"))
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "No vehicles")
}

func TestGeneratePlan_PacksLargestVehicleFirst(t *testing.T) {
	shift := openShift()
	route := uuid.New()
	p1 := stop(route, "Terminal", 1, ptr(1))
	p2 := stop(route, "Praça", 2, ptr(2))
	workers := []Enrollee{
		enrollee("Ana", ptr(p1.ID)),
		enrollee("Bruno", ptr(p2.ID)),
		enrollee("Carla", ptr(p1.ID)),
		enrollee("Davi", ptr(p2.ID)),
		enrollee("Eva", ptr(p1.ID)),
	}
	store := &fakePlannerStore{
		shift:     shift,
		enrollees: workers,
		points:    map[uuid.UUID]StopPoint{p1.ID: p1, p2.ID: p2},
		vehicles: []VehicleInfo{
			{ID: uuid.New(), Plate: "ABC1D23", Capacity: 3},
			{ID: uuid.New(), Plate: "XYZ9W87", Capacity: 2},
		},
	}

	result, err := newPlanner(store).GeneratePlan(context.Background(), shift.ID, tod("06:00"))
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.VehiclesUsed)
	assert.Equal(t, 5, result.WorkersAllocated)
	assert.Empty(t, result.WorkersWithoutPoint)

	plan := store.lastPlan()
	require.Len(t, plan, 2)
	assert.Len(t, plan[0].Workers, 3)
	assert.Len(t, plan[1].Workers, 2)
	assert.Equal(t, store.vehicles[0].ID, plan[0].AllocationVehicleID)
}

func TestGeneratePlan_DepartureAnchorsPlan(t *testing.T) {
	shift := openShift()
	route := uuid.New()
	p1 := stop(route, "Terminal", 1, ptr(1))
	p2 := stop(route, "Praça", 2, ptr(2))
	store := &fakePlannerStore{
		shift:     shift,
		enrollees: []Enrollee{enrollee("Ana", ptr(p1.ID)), enrollee("Bruno", ptr(p2.ID))},
		points:    map[uuid.UUID]StopPoint{p1.ID: p1, p2.ID: p2},
		vehicles:  []VehicleInfo{{ID: uuid.New(), Plate: "ABC1D23", Capacity: 10}},
	}

	// The operator schedules the pickup run independently of the shift's
	// own working hours.
	_, err := newPlanner(store).GeneratePlan(context.Background(), shift.ID, tod("04:45"))
	require.NoError(t, err)

	plan := store.lastPlan()
	require.Len(t, plan, 1)
	require.NotNil(t, plan[0].AllocationDepartureTime)
	assert.Equal(t, "04:45", plan[0].AllocationDepartureTime.HHMM())

	seats := plan[0].Workers
	require.Len(t, seats, 2)
	require.NotNil(t, seats[0].WorkerAllocationEstimatedTime)
	assert.Equal(t, "04:45", seats[0].WorkerAllocationEstimatedTime.HHMM())
	assert.Equal(t, "04:55", seats[1].WorkerAllocationEstimatedTime.HHMM())
}

func TestGeneratePlan_BoardingOrderFollowsRoute(t *testing.T) {
	shift := openShift()
	route := uuid.New()
	first := stop(route, "Terminal", 1, ptr(1))
	second := stop(route, "Praça", 2, ptr(2))
	// Enrollment order deliberately visits the later stop first.
	ana := enrollee("Ana", ptr(second.ID))
	bruno := enrollee("Bruno", ptr(first.ID))
	carla := enrollee("Carla", ptr(second.ID))
	store := &fakePlannerStore{
		shift:     shift,
		enrollees: []Enrollee{ana, bruno, carla},
		points:    map[uuid.UUID]StopPoint{first.ID: first, second.ID: second},
		vehicles:  []VehicleInfo{{ID: uuid.New(), Plate: "ABC1D23", Capacity: 10}},
	}

	_, err := newPlanner(store).GeneratePlan(context.Background(), shift.ID, tod("06:00"))
	require.NoError(t, err)
	plan := store.lastPlan()
	require.Len(t, plan, 1)

	seats := plan[0].Workers
	require.Len(t, seats, 3)
	assert.Equal(t, bruno.EnrollmentID, seats[0].WorkerAllocationEnrollmentID)
	assert.Equal(t, 1, seats[0].WorkerAllocationBoardingOrder)
	assert.Equal(t, ana.EnrollmentID, seats[1].WorkerAllocationEnrollmentID)
	assert.Equal(t, 2, seats[1].WorkerAllocationBoardingOrder)
	assert.Equal(t, carla.EnrollmentID, seats[2].WorkerAllocationEnrollmentID)
	assert.Equal(t, 3, seats[2].WorkerAllocationBoardingOrder)

	// First occupied stop is passed at departure, the next one 10 min later.
	assert.Equal(t, "06:00", seats[0].WorkerAllocationEstimatedTime.HHMM())
	assert.Equal(t, "06:10", seats[1].WorkerAllocationEstimatedTime.HHMM())
	assert.Equal(t, "06:10", seats[2].WorkerAllocationEstimatedTime.HHMM())
}

func TestGeneratePlan_UnorderedStopVisitedLast(t *testing.T) {
	shift := openShift()
	route := uuid.New()
	ordered := stop(route, "Terminal", 1, ptr(5))
	unordered := stop(route, "Anexo", 2, nil)
	store := &fakePlannerStore{
		shift:     shift,
		enrollees: []Enrollee{enrollee("Ana", ptr(unordered.ID)), enrollee("Bruno", ptr(ordered.ID))},
		points:    map[uuid.UUID]StopPoint{ordered.ID: ordered, unordered.ID: unordered},
		vehicles:  []VehicleInfo{{ID: uuid.New(), Plate: "ABC1D23", Capacity: 10}},
	}

	_, err := newPlanner(store).GeneratePlan(context.Background(), shift.ID, tod("06:00"))
	require.NoError(t, err)

	seats := store.lastPlan()[0].Workers
	require.Len(t, seats, 2)
	assert.Equal(t, ordered.ID, *seats[0].WorkerAllocationPointID)
	assert.Equal(t, unordered.ID, *seats[1].WorkerAllocationPointID)
}

func TestGeneratePlan_CapacityShortageReported(t *testing.T) {
	shift := openShift()
	route := uuid.New()
	p := stop(route, "Terminal", 1, ptr(1))
	store := &fakePlannerStore{
		shift: shift,
		enrollees: []Enrollee{
			enrollee("Ana", ptr(p.ID)),
			enrollee("Bruno", ptr(p.ID)),
			enrollee("Carla", ptr(p.ID)),
		},
		points:   map[uuid.UUID]StopPoint{p.ID: p},
		vehicles: []VehicleInfo{{ID: uuid.New(), Plate: "ABC1D23", Capacity: 2}},
	}

	result, err := newPlanner(store).GeneratePlan(context.Background(), shift.ID, tod("06:00"))
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.WorkersAllocated)
	assert.Contains(t, result.Message, "lack of capacity")
}

func TestGeneratePlan_MixedPointsReportedAlongside(t *testing.T) {
	shift := openShift()
	route := uuid.New()
	p := stop(route, "Terminal", 1, ptr(1))
	store := &fakePlannerStore{
		shift: shift,
		enrollees: []Enrollee{
			enrollee("Ana", ptr(p.ID)),
			enrollee("Bruno", nil),
		},
		points:   map[uuid.UUID]StopPoint{p.ID: p},
		vehicles: []VehicleInfo{{ID: uuid.New(), Plate: "ABC1D23", Capacity: 4}},
	}

	result, err := newPlanner(store).GeneratePlan(context.Background(), shift.ID, tod("06:00"))
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.WorkersAllocated)
	assert.Equal(t, []string{"Bruno"}, result.WorkersWithoutPoint)
}

func TestGeneratePlan_RouteReferenceOnlyWhenShared(t *testing.T) {
	shift := openShift()
	routeA := uuid.New()
	routeB := uuid.New()
	pa := stop(routeA, "Terminal", 1, ptr(1))
	pb := stop(routeB, "Praça", 2, ptr(2))
	store := &fakePlannerStore{
		shift:     shift,
		enrollees: []Enrollee{enrollee("Ana", ptr(pa.ID)), enrollee("Bruno", ptr(pb.ID))},
		points:    map[uuid.UUID]StopPoint{pa.ID: pa, pb.ID: pb},
		vehicles:  []VehicleInfo{{ID: uuid.New(), Plate: "ABC1D23", Capacity: 4}},
	}

	_, err := newPlanner(store).GeneratePlan(context.Background(), shift.ID, tod("06:00"))
	require.NoError(t, err)
	assert.Nil(t, store.lastPlan()[0].AllocationRouteID)
}

func TestGeneratePlan_VehicleLookupScopedToShiftDate(t *testing.T) {
	shift := openShift()
	route := uuid.New()
	p := stop(route, "Terminal", 1, ptr(1))
	store := &fakePlannerStore{
		shift:     shift,
		enrollees: []Enrollee{enrollee("Ana", ptr(p.ID))},
		points:    map[uuid.UUID]StopPoint{p.ID: p},
		vehicles:  []VehicleInfo{{ID: uuid.New(), Plate: "ABC1D23", Capacity: 4}},
	}

	_, err := newPlanner(store).GeneratePlan(context.Background(), shift.ID, tod("06:00"))
	require.NoError(t, err)

	require.Len(t, store.vehicleQueries, 1)
	assert.Equal(t, shift.Date, store.vehicleQueries[0].date)
	assert.Equal(t, shift.ID, store.vehicleQueries[0].shiftID)
}

func TestGeneratePlan_SameDateVehicleExcluded(t *testing.T) {
	shift := openShift()
	route := uuid.New()
	p := stop(route, "Terminal", 1, ptr(1))
	busy := VehicleInfo{ID: uuid.New(), Plate: "BUS3Y00", Capacity: 30}
	free := VehicleInfo{ID: uuid.New(), Plate: "ABC1D23", Capacity: 4}
	store := &fakePlannerStore{
		shift:     shift,
		enrollees: []Enrollee{enrollee("Ana", ptr(p.ID))},
		points:    map[uuid.UUID]StopPoint{p.ID: p},
		vehicles:  []VehicleInfo{busy, free},
		// The bigger vehicle already serves another shift on the same date.
		busyOn: map[uuid.UUID]time.Time{busy.ID: shift.Date},
	}

	result, err := newPlanner(store).GeneratePlan(context.Background(), shift.ID, tod("06:00"))
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, free.ID, store.lastPlan()[0].AllocationVehicleID)
}

func TestGeneratePlan_OtherDateVehicleStillAvailable(t *testing.T) {
	shift := openShift()
	route := uuid.New()
	p := stop(route, "Terminal", 1, ptr(1))
	vehicle := VehicleInfo{ID: uuid.New(), Plate: "ABC1D23", Capacity: 4}
	store := &fakePlannerStore{
		shift:     shift,
		enrollees: []Enrollee{enrollee("Ana", ptr(p.ID))},
		points:    map[uuid.UUID]StopPoint{p.ID: p},
		vehicles:  []VehicleInfo{vehicle},
		busyOn:    map[uuid.UUID]time.Time{vehicle.ID: shift.Date.AddDate(0, 0, 1)},
	}

	result, err := newPlanner(store).GeneratePlan(context.Background(), shift.ID, tod("06:00"))
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, vehicle.ID, store.lastPlan()[0].AllocationVehicleID)
}

func TestGeneratePlan_FailedSwapSurfacesError(t *testing.T) {
	shift := openShift()
	route := uuid.New()
	p := stop(route, "Terminal", 1, ptr(1))
	store := &fakePlannerStore{
		shift:      shift,
		enrollees:  []Enrollee{enrollee("Ana", ptr(p.ID))},
		points:     map[uuid.UUID]StopPoint{p.ID: p},
		vehicles:   []VehicleInfo{{ID: uuid.New(), Plate: "ABC1D23", Capacity: 4}},
		replaceErr: errors.New("db down"),
	}

	_, err := newPlanner(store).GeneratePlan(context.Background(), shift.ID, tod("06:00"))
	require.Error(t, err)
	assert.Empty(t, store.replacements)
}

func TestGeneratePlan_RerunReplacesPreviousPlan(t *testing.T) {
	shift := openShift()
	route := uuid.New()
	p := stop(route, "Terminal", 1, ptr(1))
	store := &fakePlannerStore{
		shift:     shift,
		enrollees: []Enrollee{enrollee("Ana", ptr(p.ID))},
		points:    map[uuid.UUID]StopPoint{p.ID: p},
		vehicles:  []VehicleInfo{{ID: uuid.New(), Plate: "ABC1D23", Capacity: 4}},
	}
	planner := newPlanner(store)

	_, err := planner.GeneratePlan(context.Background(), shift.ID, tod("06:00"))
	require.NoError(t, err)
	_, err = planner.GeneratePlan(context.Background(), shift.ID, tod("06:30"))
	require.NoError(t, err)

	require.Len(t, store.replacements, 2)
	assert.Len(t, store.lastPlan(), 1)
	assert.Equal(t, "06:30", store.lastPlan()[0].AllocationDepartureTime.HHMM())
}
