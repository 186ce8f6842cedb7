package service

import (
	"carrotrent-backend/internal/domain"
	"carrotrent-backend/internal/utils"
)

// MapRentalToSummary builds the list view of a rental.
func MapRentalToSummary(rt *domain.Rental, vehicle *domain.VehicleSummary) domain.RentalSummary {
	s := domain.RentalSummary{
		ID:        rt.ID,
		Status:    rt.Status,
		StartDate: rt.StartDate,
		EndDate:   rt.EndDate,
	}
	if vehicle != nil {
		s.Vehicle = vehicle.Model
	}
	return s
}

// MapRentalToDetail builds the single-rental view. renter and receiver may be nil.
func MapRentalToDetail(rt *domain.Rental, vehicle *domain.VehicleSummary, client, renter, receiver *domain.User) domain.RentalDetail {
	d := domain.RentalDetail{
		ID:           rt.ID,
		Status:       rt.Status,
		StartDate:    rt.StartDate,
		EndDate:      rt.EndDate,
		ClientID:     rt.ClientID,
		ClientName:   client.DisplayName(),
		RenterID:     rt.RenterID,
		RenterName:   renter.DisplayName(),
		ReceiverID:   rt.ReceiverID,
		ReceiverName: receiver.DisplayName(),
	}
	if vehicle != nil {
		d.Vehicle = domain.RentalVehicle{
			ID:               vehicle.ID,
			Brand:            vehicle.Brand,
			Model:            vehicle.Model,
			YearOfProduction: vehicle.YearOfProduction,
		}
	}
	return d
}

func MapRentalCost(b utils.RentalCostBreakdown) domain.RentalCost {
	return domain.RentalCost{TotalPrice: b.TotalCost}
}

func MapUnverifiedUser(u *domain.User) domain.UnverifiedUser {
	return domain.UnverifiedUser{
		ID:          u.ID,
		Login:       u.Login,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Pesel:       u.Pesel,
		PhoneNumber: u.PhoneNumber,
		Email:       u.Email,
	}
}

func MapVehicleToListItem(v *domain.Vehicle) domain.VehicleListItem {
	return domain.VehicleListItem{
		ID:               v.ID,
		Brand:            v.Brand,
		Model:            v.Model,
		YearOfProduction: v.YearOfProduction,
		Price:            v.PricePerDay,
	}
}

// MapVehiclesToListItems never returns nil.
func MapVehiclesToListItems(vehicles []domain.Vehicle) []domain.VehicleListItem {
	out := make([]domain.VehicleListItem, 0, len(vehicles))
	for i := range vehicles {
		out = append(out, MapVehicleToListItem(&vehicles[i]))
	}
	return out
}

func MapVehicleToDetail(v *domain.Vehicle) domain.VehicleDetail {
	return domain.VehicleDetail{
		ID:               v.ID,
		Brand:            v.Brand,
		Model:            v.Model,
		Fuel:             v.Fuel,
		Description:      v.Description,
		Registration:     v.Registration,
		YearOfProduction: v.YearOfProduction,
		Seats:            v.Seats,
		Price:            v.PricePerDay,
		DepartmentID:     v.DepartmentID,
		Department:       v.Department,
	}
}

func MapDepartmentToSummary(d *domain.Department) domain.DepartmentSummary {
	return domain.DepartmentSummary{
		ID:      d.ID,
		Name:    d.Name,
		Address: d.Address.Line(),
	}
}

// MapDepartmentToDetail builds the department page. manager may be nil.
func MapDepartmentToDetail(d *domain.Department, manager *domain.User, vehicles []domain.Vehicle) domain.DepartmentDetail {
	return domain.DepartmentDetail{
		ID:        d.ID,
		Name:      d.Name,
		Address:   d.Address.Line(),
		ManagerID: d.ManagerID,
		Manager:   manager.DisplayName(),
		Vehicles:  MapVehiclesToListItems(vehicles),
	}
}
