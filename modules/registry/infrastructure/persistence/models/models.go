package models

import (
	"database/sql"
	"time"
)

type Member struct {
	ID           string
	TenantID     string
	Number       string
	FirstName    string
	LastName     string
	Phone        sql.NullString
	Email        sql.NullString
	Address      sql.NullString
	StreetNumber sql.NullString
	Floor        sql.NullString
	Stair        sql.NullString
	PostalCode   sql.NullString
	Province     sql.NullString
	Country      sql.NullString
	BirthDate    sql.NullTime
	DuesPaid     bool
	Note         sql.NullString
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Place struct {
	ID           string
	TenantID     string
	Name         string
	Address      sql.NullString
	Description  sql.NullString
	StreetNumber sql.NullString
	PostalCode   sql.NullString
	City         sql.NullString
	Country      sql.NullString
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Contact struct {
	ID        string
	TenantID  string
	FirstName string
	LastName  string
	RoleInfo  sql.NullString
	Role      sql.NullString
	Phone     sql.NullString
	Email     sql.NullString
	Note      sql.NullString
	ProjectID sql.NullString
	CreatedAt time.Time
	UpdatedAt time.Time
}

type InventoryItem struct {
	ID                 string
	TenantID           string
	Name               string
	UsageNote          sql.NullString
	Price              string
	PlaceID            sql.NullString
	PlaceName          sql.NullString
	CustodianContactID sql.NullString
	CustodianMemberID  sql.NullString
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type Transaction struct {
	ID              string
	TenantID        string
	Amount          int64
	Currency        string
	Label           string
	Note            sql.NullString
	Counterparty    sql.NullString
	TransactionDate time.Time
	DueDate         sql.NullTime
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Event struct {
	ID                  string
	TenantID            string
	Name                string
	StartsAt            time.Time
	DurationSeconds     sql.NullInt64
	PlaceID             sql.NullString
	PlaceName           sql.NullString
	PlaceAddress        sql.NullString
	ResponsibleMemberID sql.NullString
	ProjectID           sql.NullString
	Note                sql.NullString
	Collaborators       sql.NullString
	Observations        sql.NullString
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type Project struct {
	ID           string
	TenantID     string
	Name         string
	Responsible  sql.NullString
	StartDate    sql.NullTime
	EndDate      sql.NullTime
	Recurring    bool
	PlaceID      sql.NullString
	PlaceName    sql.NullString
	Description  sql.NullString
	Materials    sql.NullString
	Stakeholders sql.NullString
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
