package models

import (
	"errors"
	"fmt"
)

// MemberCategory - the fixed set of member kinds a user registers as.
type MemberCategory string

const (
	CategoryIndividualLessee MemberCategory = "Individual Leasee"
	CategoryFirmPartners     MemberCategory = "Firm/Partners"
	CategoryCompany          MemberCategory = "Company"
	CategoryMineralDealers   MemberCategory = "Mineral Dealers"
	CategoryOfficials        MemberCategory = "Officials"
	CategoryStudents         MemberCategory = "Students"
	CategoryResearchers      MemberCategory = "Researchers"
)

var AllCategories = []MemberCategory{
	CategoryIndividualLessee,
	CategoryFirmPartners,
	CategoryCompany,
	CategoryMineralDealers,
	CategoryOfficials,
	CategoryStudents,
	CategoryResearchers,
}

func (c MemberCategory) IsValid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// PayloadKind - which category payload the member category carries.
type PayloadKind string

const (
	PayloadNone   PayloadKind = ""
	PayloadLessee PayloadKind = "lessee"
	PayloadDealer PayloadKind = "dealer"
)

func (c MemberCategory) PayloadKind() PayloadKind {
	switch c {
	case CategoryIndividualLessee, CategoryFirmPartners, CategoryCompany:
		return PayloadLessee
	case CategoryMineralDealers:
		return PayloadDealer
	}
	return PayloadNone
}

// Fees in INR.
const (
	RegistrationFeeDefault int64 = 2000
	RegistrationFeeStudent int64 = 1000
	RegistrationFeeCompany int64 = 5000
	LibraryFeeDefault      int64 = 15000
	LibraryFeeStudents     int64 = 5000
	LibraryFeeResearchers  int64 = 7000
	LibraryFeeCompany      int64 = 25000
)

// RegistrationFee returns the one-off registration fee in INR.
func (c MemberCategory) RegistrationFee() int64 {
	switch c {
	case CategoryStudents, CategoryResearchers:
		return RegistrationFeeStudent
	case CategoryCompany:
		return RegistrationFeeCompany
	}
	return RegistrationFeeDefault
}

// LibraryFee returns the library access fee in INR.
func (c MemberCategory) LibraryFee() int64 {
	switch c {
	case CategoryStudents:
		return LibraryFeeStudents
	case CategoryResearchers:
		return LibraryFeeResearchers
	case CategoryCompany:
		return LibraryFeeCompany
	}
	return LibraryFeeDefault
}

// LesseeDetails - lease holders (individuals, firms, companies).
type LesseeDetails struct {
	FirmName       string `json:"firmName,omitempty"`
	CompanyName    string `json:"companyName,omitempty"`
	State          string `json:"state,omitempty"`
	District       string `json:"district,omitempty"`
	Circle         string `json:"circle,omitempty"`
	MiningDetails  string `json:"miningDetails,omitempty"`
	Minerals       string `json:"minerals,omitempty"`
	LeasePeriod    string `json:"leasePeriod,omitempty"`
	Mauzza         string `json:"mauzza,omitempty"`
	RevenueThanaNo string `json:"revenueThanaNo,omitempty"`
	PlotNo         string `json:"plotNo,omitempty"`
	Area           string `json:"area,omitempty"`
	PoliceStation  string `json:"policeStation,omitempty"`
	NatureOfLand   string `json:"natureOfLand,omitempty"`
	MineCodeIBM    string `json:"mineCodeIBM,omitempty"`
	MineCodeDGMS   string `json:"mineCodeDGMS,omitempty"`
}

func (d LesseeDetails) IsZero() bool {
	return d == LesseeDetails{}
}

// DealerDetails - mineral dealers.
type DealerDetails struct {
	LicenseNo        string `json:"licenseNo,omitempty"`
	Minerals         string `json:"minerals,omitempty"`
	DealerCodeIBM    string `json:"dealerCodeIBM,omitempty"`
	NatureOfBusiness string `json:"natureOfBusiness,omitempty"`
}

func (d DealerDetails) IsZero() bool {
	return d == DealerDetails{}
}

// CategoryDetails - tagged variant: Kind selects which of Lessee/Dealer is set.
type CategoryDetails struct {
	Kind   PayloadKind    `json:"kind,omitempty"`
	Lessee *LesseeDetails `json:"lessee,omitempty"`
	Dealer *DealerDetails `json:"dealer,omitempty"`
}

var ErrCategoryMismatch = errors.New("category details do not match member category")

// Validate checks that the payload belongs to the category.
func (d CategoryDetails) Validate(c MemberCategory) error {
	want := c.PayloadKind()
	if d.Kind != want {
		return fmt.Errorf("%w: %q carries %q payload, got %q", ErrCategoryMismatch, c, want, d.Kind)
	}
	switch want {
	case PayloadLessee:
		if d.Lessee == nil || d.Dealer != nil {
			return ErrCategoryMismatch
		}
	case PayloadDealer:
		if d.Dealer == nil || d.Lessee != nil {
			return ErrCategoryMismatch
		}
	default:
		if d.Lessee != nil || d.Dealer != nil {
			return ErrCategoryMismatch
		}
	}
	return nil
}

// NewCategoryDetails builds the variant for c. The payload that does not belong to c
// must be empty.
func NewCategoryDetails(c MemberCategory, lessee LesseeDetails, dealer DealerDetails) (CategoryDetails, error) {
	switch c.PayloadKind() {
	case PayloadLessee:
		if !dealer.IsZero() {
			return CategoryDetails{}, fmt.Errorf("%w: dealer fields given for %q", ErrCategoryMismatch, c)
		}
		return CategoryDetails{Kind: PayloadLessee, Lessee: &lessee}, nil
	case PayloadDealer:
		if !lessee.IsZero() {
			return CategoryDetails{}, fmt.Errorf("%w: lease fields given for %q", ErrCategoryMismatch, c)
		}
		return CategoryDetails{Kind: PayloadDealer, Dealer: &dealer}, nil
	}
	if !lessee.IsZero() || !dealer.IsZero() {
		return CategoryDetails{}, fmt.Errorf("%w: %q takes no category fields", ErrCategoryMismatch, c)
	}
	return CategoryDetails{}, nil
}
