package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"carrotrent-backend/internal/domain"
	"carrotrent-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

const maxRequestBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report json field names in messages.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Prices are validated as numbers.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

type createRentRequest struct {
	VehicleID string    `json:"vehicleId" validate:"required,uuid"`
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required,gtfield=StartDate"`
}

func (req createRentRequest) toInput() service.CreateRentalInput {
	return service.CreateRentalInput{
		VehicleID: uuid.MustParse(req.VehicleID),
		StartDate: req.StartDate.UTC(),
		EndDate:   req.EndDate.UTC(),
	}
}

type registerRequest struct {
	Login           string `json:"login" validate:"required"`
	Password        string `json:"password" validate:"required"`
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	Pesel           string `json:"pesel" validate:"required"`
	PhoneNumber     string `json:"phoneNumber" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	PostCode        string `json:"postCode" validate:"required"`
	City            string `json:"city" validate:"required"`
	Street          string `json:"street" validate:"required"`
	HouseNumber     string `json:"houseNumber" validate:"required"`
	ApartmentNumber string `json:"apartmentNumber"`
}

func (req registerRequest) toInput() service.RegisterInput {
	return service.RegisterInput{
		Login:       req.Login,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Pesel:       req.Pesel,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Address: domain.Address{
			PostCode:        req.PostCode,
			City:            req.City,
			Street:          req.Street,
			HouseNumber:     req.HouseNumber,
			ApartmentNumber: req.ApartmentNumber,
		},
	}
}

type createVehicleRequest struct {
	ModelID          string          `json:"modelId" validate:"required,uuid"`
	FuelID           string          `json:"fuelId" validate:"required,uuid"`
	DepartmentID     string          `json:"departmentId" validate:"required,uuid"`
	Description      string          `json:"description" validate:"required"`
	Registration     string          `json:"registration" validate:"required"`
	VIN              string          `json:"vin" validate:"required"`
	Seats            int             `json:"seats" validate:"gt=0"`
	YearOfProduction int             `json:"yearOfProduction" validate:"gte=1950"`
	Price            decimal.Decimal `json:"price" validate:"gt=0"`
}

func (req createVehicleRequest) toInput() service.CreateVehicleInput {
	return service.CreateVehicleInput{
		ModelID:          uuid.MustParse(req.ModelID),
		FuelID:           uuid.MustParse(req.FuelID),
		DepartmentID:     uuid.MustParse(req.DepartmentID),
		Description:      req.Description,
		Registration:     strings.TrimSpace(req.Registration),
		VIN:              strings.TrimSpace(req.VIN),
		Seats:            req.Seats,
		YearOfProduction: req.YearOfProduction,
		PricePerDay:      req.Price,
	}
}

type updateVehicleRequest struct {
	Description      string          `json:"description" validate:"required"`
	Seats            int             `json:"seats" validate:"gt=0"`
	YearOfProduction int             `json:"yearOfProduction" validate:"gte=1950"`
	Price            decimal.Decimal `json:"price" validate:"gt=0"`
}

func (req updateVehicleRequest) toInput() service.UpdateVehicleInput {
	return service.UpdateVehicleInput{
		Description:      req.Description,
		Seats:            req.Seats,
		YearOfProduction: req.YearOfProduction,
		PricePerDay:      req.Price,
	}
}

// vehicleFilterQuery holds the raw query string of GET /vehicle.
type vehicleFilterQuery struct {
	MinPrice     string `json:"minPrice" validate:"omitempty,numeric"`
	MaxPrice     string `json:"maxPrice" validate:"omitempty,numeric"`
	Seats        string `json:"seats" validate:"omitempty,number"`
	BrandID      string `json:"brandId" validate:"omitempty,uuid"`
	ModelID      string `json:"modelId" validate:"omitempty,uuid"`
	FuelID       string `json:"fuelId" validate:"omitempty,uuid"`
	DepartmentID string `json:"departmentId" validate:"omitempty,uuid"`
}

// decodeVehicleFilter reads the list filters from the query string. On
// failure it writes a 400 and returns false.
func decodeVehicleFilter(w http.ResponseWriter, r *http.Request) (domain.VehicleFilter, bool) {
	q := r.URL.Query()
	raw := vehicleFilterQuery{
		MinPrice:     q.Get("minPrice"),
		MaxPrice:     q.Get("maxPrice"),
		Seats:        q.Get("seats"),
		BrandID:      q.Get("brandId"),
		ModelID:      q.Get("modelId"),
		FuelID:       q.Get("fuelId"),
		DepartmentID: q.Get("departmentId"),
	}
	if err := validate.Struct(raw); err != nil {
		writeErrors(w, http.StatusBadRequest, validationMessages(err)...)
		return domain.VehicleFilter{}, false
	}

	var filter domain.VehicleFilter
	var err error
	if filter.MinPrice, err = optionalPrice(raw.MinPrice); err != nil {
		writeErrors(w, http.StatusBadRequest, "minPrice is not a number")
		return domain.VehicleFilter{}, false
	}
	if filter.MaxPrice, err = optionalPrice(raw.MaxPrice); err != nil {
		writeErrors(w, http.StatusBadRequest, "maxPrice is not a number")
		return domain.VehicleFilter{}, false
	}
	if raw.Seats != "" {
		seats, err := strconv.Atoi(raw.Seats)
		if err != nil {
			writeErrors(w, http.StatusBadRequest, "seats is not a whole number")
			return domain.VehicleFilter{}, false
		}
		filter.Seats = &seats
	}
	filter.BrandID = optionalID(raw.BrandID)
	filter.ModelID = optionalID(raw.ModelID)
	filter.FuelID = optionalID(raw.FuelID)
	filter.DepartmentID = optionalID(raw.DepartmentID)
	return filter, true
}

func optionalPrice(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func optionalID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id := uuid.MustParse(s)
	return &id
}

type loginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerResponse struct {
	Login string `json:"login"`
	Token string `json:"token"`
}

type rentsResponse struct {
	Rents []domain.RentalSummary `json:"rents"`
}

type vehiclesResponse struct {
	Vehicles []domain.VehicleListItem `json:"vehicles"`
}

type departmentsResponse struct {
	Departments []domain.DepartmentSummary `json:"departments"`
}

type unverifiedUsersResponse struct {
	Users []domain.UnverifiedUser `json:"users"`
}

// decodeRequest reads a JSON body into dst and validates it. On failure it
// writes a 400 and returns false.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeErrors(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeErrors(w, http.StatusBadRequest, validationMessages(err)...)
		return false
	}
	return true
}

func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s is not a valid email address", fe.Field()))
		case "uuid":
			msgs = append(msgs, fmt.Sprintf("%s is not a valid id", fe.Field()))
		case "number", "numeric":
			msgs = append(msgs, fmt.Sprintf("%s is not a number", fe.Field()))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		case "gtfield":
			msgs = append(msgs, fmt.Sprintf("%s must be after %s", fe.Field(), lowerFirst(fe.Param())))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return msgs
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// pathID parses the {id} route variable. On failure it writes a 400.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	return pathUUID(w, r, "id")
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		writeErrors(w, http.StatusBadRequest, name+" is not a valid id")
		return uuid.Nil, false
	}
	return id, true
}
