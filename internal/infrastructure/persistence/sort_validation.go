package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes the requested sort direction, falling
// back to DESC for anything that is not ASC. Values reach SQL verbatim,
// so only the two literals ever come back.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "ASC") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField checks the requested field against the entity's
// whitelist, returning defaultField for anything unknown. Whitelisting
// is what keeps user-supplied column names out of ORDER BY.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// sortFields builds a whitelist from the columns every table has plus
// the entity's own sortable columns.
func sortFields(extra ...string) map[string]bool {
	m := map[string]bool{
		"id":         true,
		"created_at": true,
		"updated_at": true,
	}
	for _, f := range extra {
		m[f] = true
	}
	return m
}

var (
	BookingSortFields    = sortFields("booking_reference", "check_in_date", "check_out_date", "nights", "status", "grand_total")
	GuestSortFields      = sortFields("first_name", "last_name", "city", "province")
	RoomSortFields       = sortFields("room_number", "floor", "status", "weekday_rate", "weekend_rate", "capacity")
	ChargeItemSortFields = sortFields("name", "value", "charge_type", "is_default")
	CardKeySortFields    = sortFields("room_number", "status", "valid_from", "valid_until")
	PersonnelSortFields  = sortFields("username", "display_name", "role", "active")
)
