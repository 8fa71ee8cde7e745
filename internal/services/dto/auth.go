package dto

import (
	"time"

	"github.com/rgrams-coder/mmles/internal/models"
)

// AvailabilityRequest - either field may be omitted.
type AvailabilityRequest struct {
	Username string `json:"username" validate:"omitempty,username"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// AvailabilityResponse - an omitted field is reported available.
type AvailabilityResponse struct {
	UsernameAvailable bool `json:"usernameAvailable"`
	EmailAvailable    bool `json:"emailAvailable"`
}

// CategoryFields - the category-conditional fields as the registration form sends them.
// Minerals is shared by lessees and dealers.
type CategoryFields struct {
	FirmName       string `json:"firmName"`
	CompanyName    string `json:"companyName"`
	State          string `json:"state"`
	District       string `json:"district"`
	Circle         string `json:"circle"`
	MiningDetails  string `json:"miningdetails"`
	Minerals       string `json:"minerals"`
	LeasePeriod    string `json:"leaseperiod"`
	Mauzza         string `json:"mauzza"`
	RevenueThanaNo string `json:"revenueThanaNo"`
	PlotNo         string `json:"plotNo"`
	Area           string `json:"area"`
	PoliceStation  string `json:"policeStation"`
	NatureOfLand   string `json:"natureOfLand"`
	MineCodeIBM    string `json:"mineCodeIBM"`
	MineCodeDGMS   string `json:"mineCodeDGMS"`

	LicenseNo        string `json:"licenseNo"`
	DealerCodeIBM    string `json:"dealerCodeIBM"`
	NatureOfBusiness string `json:"natureOfBusiness"`
}

// Details converts the flat form fields into the tagged variant of category.
func (f CategoryFields) Details(category models.MemberCategory) (models.CategoryDetails, error) {
	var lessee models.LesseeDetails
	var dealer models.DealerDetails

	switch category.PayloadKind() {
	case models.PayloadDealer:
		dealer.Minerals = f.Minerals
	default:
		lessee.Minerals = f.Minerals
	}

	lessee.FirmName = f.FirmName
	lessee.CompanyName = f.CompanyName
	lessee.State = f.State
	lessee.District = f.District
	lessee.Circle = f.Circle
	lessee.MiningDetails = f.MiningDetails
	lessee.LeasePeriod = f.LeasePeriod
	lessee.Mauzza = f.Mauzza
	lessee.RevenueThanaNo = f.RevenueThanaNo
	lessee.PlotNo = f.PlotNo
	lessee.Area = f.Area
	lessee.PoliceStation = f.PoliceStation
	lessee.NatureOfLand = f.NatureOfLand
	lessee.MineCodeIBM = f.MineCodeIBM
	lessee.MineCodeDGMS = f.MineCodeDGMS

	dealer.LicenseNo = f.LicenseNo
	dealer.DealerCodeIBM = f.DealerCodeIBM
	dealer.NatureOfBusiness = f.NatureOfBusiness

	return models.NewCategoryDetails(category, lessee, dealer)
}

// CategoryFieldsFrom flattens a stored variant back into the form shape.
func CategoryFieldsFrom(d models.CategoryDetails) CategoryFields {
	var f CategoryFields
	if l := d.Lessee; l != nil {
		f.FirmName = l.FirmName
		f.CompanyName = l.CompanyName
		f.State = l.State
		f.District = l.District
		f.Circle = l.Circle
		f.MiningDetails = l.MiningDetails
		f.Minerals = l.Minerals
		f.LeasePeriod = l.LeasePeriod
		f.Mauzza = l.Mauzza
		f.RevenueThanaNo = l.RevenueThanaNo
		f.PlotNo = l.PlotNo
		f.Area = l.Area
		f.PoliceStation = l.PoliceStation
		f.NatureOfLand = l.NatureOfLand
		f.MineCodeIBM = l.MineCodeIBM
		f.MineCodeDGMS = l.MineCodeDGMS
	}
	if dl := d.Dealer; dl != nil {
		f.Minerals = dl.Minerals
		f.LicenseNo = dl.LicenseNo
		f.DealerCodeIBM = dl.DealerCodeIBM
		f.NatureOfBusiness = dl.NatureOfBusiness
	}
	return f
}

// Overlay returns f with every non-empty field of o written over it.
func (f CategoryFields) Overlay(o CategoryFields) CategoryFields {
	pick := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	pick(&f.FirmName, o.FirmName)
	pick(&f.CompanyName, o.CompanyName)
	pick(&f.State, o.State)
	pick(&f.District, o.District)
	pick(&f.Circle, o.Circle)
	pick(&f.MiningDetails, o.MiningDetails)
	pick(&f.Minerals, o.Minerals)
	pick(&f.LeasePeriod, o.LeasePeriod)
	pick(&f.Mauzza, o.Mauzza)
	pick(&f.RevenueThanaNo, o.RevenueThanaNo)
	pick(&f.PlotNo, o.PlotNo)
	pick(&f.Area, o.Area)
	pick(&f.PoliceStation, o.PoliceStation)
	pick(&f.NatureOfLand, o.NatureOfLand)
	pick(&f.MineCodeIBM, o.MineCodeIBM)
	pick(&f.MineCodeDGMS, o.MineCodeDGMS)
	pick(&f.LicenseNo, o.LicenseNo)
	pick(&f.DealerCodeIBM, o.DealerCodeIBM)
	pick(&f.NatureOfBusiness, o.NatureOfBusiness)
	return f
}

// RegisterRequest - account data plus the gateway checkout result.
type RegisterRequest struct {
	Username string                `json:"username" validate:"required,username"`
	Email    string                `json:"email" validate:"required,email"`
	Password string                `json:"password" validate:"required,max=72"`
	Name     string                `json:"name" validate:"required,max=255"`
	Phone    string                `json:"phone" validate:"max=32"`
	Status   models.MemberCategory `json:"status" validate:"required,member-status"`

	CategoryFields

	OrderID   string `json:"orderId" validate:"required"`
	PaymentID string `json:"paymentId" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

type RegisterResponse struct {
	Message string   `json:"message"`
	User    *UserDTO `json:"user"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *UserDTO  `json:"user"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=72"`
}
