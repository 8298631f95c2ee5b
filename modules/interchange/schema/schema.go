// Package schema pins the workbook layout of the interchange format: one
// sheet per entity type with a fixed column order, and the coercion rules
// that turn raw cells into typed rows.
package schema

const (
	SheetMembers        = "Members"
	SheetPlaces         = "Places"
	SheetContacts       = "Contacts"
	SheetInventoryItems = "InventoryItems"
	SheetTransactions   = "Transactions"
	SheetEvents         = "Events"
	SheetProjects       = "Projects"
)

const (
	ColMemberNumber      = "member_number"
	ColFirstName         = "first_name"
	ColLastName          = "last_name"
	ColPhone             = "phone"
	ColEmail             = "email"
	ColAddress           = "address"
	ColStreetNumber      = "street_number"
	ColFloor             = "floor"
	ColStair             = "stair"
	ColPostalCode        = "postal_code"
	ColProvince          = "province"
	ColCountry           = "country"
	ColBirthDate         = "birth_date"
	ColDuesPaid          = "dues_paid"
	ColNote              = "note"
	ColName              = "name"
	ColDescription       = "description"
	ColCity              = "city"
	ColRoleContactInfo   = "role_contact_info"
	ColRole              = "role"
	ColProjectName       = "project_name"
	ColUsageNote         = "usage_note"
	ColPrice             = "price"
	ColPlaceName         = "place_name"
	ColCustodianContact  = "custodian_contact_name"
	ColCustodianMember   = "custodian_member_number"
	ColTransactionDate   = "transaction_date"
	ColAmount            = "amount"
	ColLabel             = "label"
	ColCounterparty      = "counterparty"
	ColDueDate           = "due_date"
	ColStartTimestamp    = "start_timestamp"
	ColPlaceNameOrText   = "place_name_or_text"
	ColResponsibleMember = "responsible_member_number"
	ColDuration          = "duration"
	ColCollaborators     = "collaborators"
	ColObservations      = "observations"
	ColResponsible       = "responsible"
	ColStartDate         = "start_date"
	ColEndDate           = "end_date"
	ColMaterials         = "materials"
	ColStakeholders      = "stakeholders"
	ColRecurring         = "recurring"
)

var MemberColumns = []string{
	ColMemberNumber, ColFirstName, ColLastName, ColPhone, ColEmail,
	ColAddress, ColStreetNumber, ColFloor, ColStair, ColPostalCode,
	ColProvince, ColCountry, ColBirthDate, ColDuesPaid, ColNote,
}

var PlaceColumns = []string{
	ColName, ColAddress, ColDescription, ColStreetNumber, ColPostalCode,
	ColCity, ColCountry,
}

var ContactColumns = []string{
	ColFirstName, ColLastName, ColRoleContactInfo, ColRole, ColPhone,
	ColEmail, ColNote, ColProjectName,
}

var InventoryItemColumns = []string{
	ColName, ColUsageNote, ColPrice, ColPlaceName, ColCustodianContact,
	ColCustodianMember,
}

var TransactionColumns = []string{
	ColTransactionDate, ColAmount, ColLabel, ColNote, ColCounterparty,
	ColDueDate,
}

var EventColumns = []string{
	ColName, ColStartTimestamp, ColPlaceNameOrText, ColResponsibleMember,
	ColNote, ColDuration, ColCollaborators, ColObservations,
}

var ProjectColumns = []string{
	ColName, ColResponsible, ColStartDate, ColEndDate, ColPlaceName,
	ColDescription, ColMaterials, ColStakeholders, ColRecurring,
}
