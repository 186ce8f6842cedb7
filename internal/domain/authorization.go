package domain

import "github.com/google/uuid"

// Authorization predicates operate on already-fetched data and never touch storage.

// IsStaffOfDepartment is a membership check on ids only. Role gating happens
// in the route table and in the callers.
func IsStaffOfDepartment(actor *Actor, department *Department) bool {
	if actor == nil || department == nil {
		return false
	}
	return department.HasStaffMember(actor.ID)
}

// CanManageRental gates Issue and Receive: the rental must still be Reserved
// and the actor must work in the department owning the vehicle.
func CanManageRental(actor *Actor, rental *Rental, department *Department) bool {
	if rental == nil || rental.Status != RentalStatusReserved {
		return false
	}
	return IsStaffOfDepartment(actor, department)
}

func IsRentalOwner(actor *Actor, rental *Rental) bool {
	if actor == nil || rental == nil {
		return false
	}
	return actor.Role == RoleClient && actor.ID == rental.ClientID
}

// CanViewRental allows the client, the issuing and the receiving employee.
func CanViewRental(actor *Actor, rental *Rental) bool {
	if actor == nil || rental == nil {
		return false
	}
	if actor.ID == rental.ClientID {
		return true
	}
	if rental.RenterID != nil && *rental.RenterID == actor.ID {
		return true
	}
	return rental.ReceiverID != nil && *rental.ReceiverID == actor.ID
}

func CanCancelRental(actor *Actor, rental *Rental, department *Department) bool {
	return IsRentalOwner(actor, rental) || IsStaffOfDepartment(actor, department)
}

func CanReserve(actor *Actor) bool {
	return actor != nil && actor.Role == RoleClient
}

func CanVerifyUsers(actor *Actor) bool {
	return actor != nil && actor.Role.IsStaff()
}

// IsDepartmentManager holds only for the department's manager.
func IsDepartmentManager(actor *Actor, department *Department) bool {
	if actor == nil || department == nil || actor.ID == uuid.Nil {
		return false
	}
	return department.ManagerID == actor.ID
}

// CanCreateVehicle and CanDeleteVehicle are reserved to the manager of the
// department owning the vehicle.
func CanCreateVehicle(actor *Actor, department *Department) bool {
	return IsDepartmentManager(actor, department)
}

func CanDeleteVehicle(actor *Actor, department *Department) bool {
	return IsDepartmentManager(actor, department)
}

func CanUpdateVehicle(actor *Actor, department *Department) bool {
	return IsStaffOfDepartment(actor, department)
}

func CanRegisterEmployee(actor *Actor, department *Department) bool {
	return IsDepartmentManager(actor, department)
}
