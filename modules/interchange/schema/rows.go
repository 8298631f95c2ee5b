package schema

import (
	"time"

	"github.com/Rhymond/go-money"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/civicore-hq/civicore/pkg/excel"
)

// ErrRequiredBlank marks a row whose required field is blank. Such rows
// are skipped, not failed.
var ErrRequiredBlank = errors.New("required field blank")

type MemberRow struct {
	MemberNumber string
	FirstName    string
	LastName     string
	Phone        string
	Email        string
	Address      string
	StreetNumber string
	Floor        string
	Stair        string
	PostalCode   string
	Province     string
	Country      string
	BirthDate    *time.Time
	DuesPaid     *bool
	Note         string
}

func MemberRowFrom(r excel.Row, c Coercer) (MemberRow, error) {
	row := MemberRow{
		MemberNumber: c.String(r.Value(ColMemberNumber)),
		FirstName:    c.String(r.Value(ColFirstName)),
		LastName:     c.String(r.Value(ColLastName)),
		Phone:        c.String(r.Value(ColPhone)),
		Email:        c.String(r.Value(ColEmail)),
		Address:      c.String(r.Value(ColAddress)),
		StreetNumber: c.String(r.Value(ColStreetNumber)),
		Floor:        c.String(r.Value(ColFloor)),
		Stair:        c.String(r.Value(ColStair)),
		PostalCode:   c.String(r.Value(ColPostalCode)),
		Province:     c.String(r.Value(ColProvince)),
		Country:      c.String(r.Value(ColCountry)),
		BirthDate:    c.Date(r.Value(ColBirthDate)),
		DuesPaid:     c.BoolPointer(r.Value(ColDuesPaid)),
		Note:         c.String(r.Value(ColNote)),
	}
	if row.MemberNumber == "" || row.FirstName == "" || row.LastName == "" {
		return row, ErrRequiredBlank
	}
	return row, nil
}

type PlaceRow struct {
	Name         string
	Address      string
	Description  string
	StreetNumber string
	PostalCode   string
	City         string
	Country      string
}

func PlaceRowFrom(r excel.Row, c Coercer) (PlaceRow, error) {
	row := PlaceRow{
		Name:         c.String(r.Value(ColName)),
		Address:      c.String(r.Value(ColAddress)),
		Description:  c.String(r.Value(ColDescription)),
		StreetNumber: c.String(r.Value(ColStreetNumber)),
		PostalCode:   c.String(r.Value(ColPostalCode)),
		City:         c.String(r.Value(ColCity)),
		Country:      c.String(r.Value(ColCountry)),
	}
	if row.Name == "" {
		return row, ErrRequiredBlank
	}
	return row, nil
}

type ContactRow struct {
	FirstName       string
	LastName        string
	RoleContactInfo string
	Role            string
	Phone           string
	Email           string
	Note            string
	ProjectName     string
}

func ContactRowFrom(r excel.Row, c Coercer) (ContactRow, error) {
	row := ContactRow{
		FirstName:       c.String(r.Value(ColFirstName)),
		LastName:        c.String(r.Value(ColLastName)),
		RoleContactInfo: c.String(r.Value(ColRoleContactInfo)),
		Role:            c.String(r.Value(ColRole)),
		Phone:           c.String(r.Value(ColPhone)),
		Email:           c.String(r.Value(ColEmail)),
		Note:            c.String(r.Value(ColNote)),
		ProjectName:     c.String(r.Value(ColProjectName)),
	}
	if row.FirstName == "" {
		return row, ErrRequiredBlank
	}
	return row, nil
}

type InventoryItemRow struct {
	Name                  string
	UsageNote             string
	Price                 *decimal.Decimal
	PlaceName             string
	CustodianContactName  string
	CustodianMemberNumber string
}

func InventoryItemRowFrom(r excel.Row, c Coercer) (InventoryItemRow, error) {
	row := InventoryItemRow{
		Name:                  c.String(r.Value(ColName)),
		UsageNote:             c.String(r.Value(ColUsageNote)),
		PlaceName:             c.String(r.Value(ColPlaceName)),
		CustodianContactName:  c.String(r.Value(ColCustodianContact)),
		CustodianMemberNumber: c.String(r.Value(ColCustodianMember)),
	}
	if row.Name == "" {
		return row, ErrRequiredBlank
	}
	// a bad price degrades to no price, the item itself is still valid
	if price, err := c.Decimal(r.Value(ColPrice)); err == nil {
		row.Price = &price
	}
	return row, nil
}

type TransactionRow struct {
	Date         time.Time
	Amount       *money.Money
	Label        string
	Note         string
	Counterparty string
	DueDate      *time.Time
}

func TransactionRowFrom(r excel.Row, c Coercer) (TransactionRow, error) {
	row := TransactionRow{
		Label:        c.String(r.Value(ColLabel)),
		Note:         c.String(r.Value(ColNote)),
		Counterparty: c.String(r.Value(ColCounterparty)),
		DueDate:      c.Date(r.Value(ColDueDate)),
	}
	date := c.Date(r.Value(ColTransactionDate))
	rawAmount := c.String(r.Value(ColAmount))
	if date == nil || rawAmount == "" || row.Label == "" {
		return row, ErrRequiredBlank
	}
	row.Date = *date
	amount, err := c.Money(rawAmount)
	if err != nil {
		return row, errors.Wrap(err, "amount")
	}
	row.Amount = amount
	return row, nil
}

type EventRow struct {
	Name                    string
	StartTimestamp          time.Time
	PlaceNameOrText         string
	ResponsibleMemberNumber string
	Note                    string
	Duration                *time.Duration
	Collaborators           string
	Observations            string
}

func EventRowFrom(r excel.Row, c Coercer) (EventRow, error) {
	row := EventRow{
		Name:                    c.String(r.Value(ColName)),
		PlaceNameOrText:         c.String(r.Value(ColPlaceNameOrText)),
		ResponsibleMemberNumber: c.String(r.Value(ColResponsibleMember)),
		Note:                    c.String(r.Value(ColNote)),
		Duration:                c.Duration(r.Value(ColDuration)),
		Collaborators:           c.String(r.Value(ColCollaborators)),
		Observations:            c.String(r.Value(ColObservations)),
	}
	start := c.Timestamp(r.Value(ColStartTimestamp))
	if row.Name == "" || start == nil {
		return row, ErrRequiredBlank
	}
	row.StartTimestamp = *start
	return row, nil
}

type ProjectRow struct {
	Name         string
	Responsible  string
	StartDate    *time.Time
	EndDate      *time.Time
	PlaceName    string
	Description  string
	Materials    string
	Stakeholders string
	Recurring    bool
}

func ProjectRowFrom(r excel.Row, c Coercer) (ProjectRow, error) {
	row := ProjectRow{
		Name:         c.String(r.Value(ColName)),
		Responsible:  c.String(r.Value(ColResponsible)),
		StartDate:    c.Date(r.Value(ColStartDate)),
		EndDate:      c.Date(r.Value(ColEndDate)),
		PlaceName:    c.String(r.Value(ColPlaceName)),
		Description:  c.String(r.Value(ColDescription)),
		Materials:    c.String(r.Value(ColMaterials)),
		Stakeholders: c.String(r.Value(ColStakeholders)),
		Recurring:    c.Bool(r.Value(ColRecurring)),
	}
	if row.Name == "" {
		return row, ErrRequiredBlank
	}
	return row, nil
}
