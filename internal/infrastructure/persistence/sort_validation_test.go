package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	cases := map[string]string{
		"":                             "DESC",
		"ASC":                          "ASC",
		"asc":                          "ASC",
		"  asc  ":                      "ASC",
		"DESC":                         "DESC",
		"desc":                         "DESC",
		"sideways":                     "DESC",
		"   ":                          "DESC",
		"ASC; DROP TABLE bookings;--":  "DESC",
	}
	for input, want := range cases {
		assert.Equal(t, want, ValidateSortOrder(input), "input %q", input)
	}
}

func TestValidateSortField(t *testing.T) {
	allowed := sortFields("room_number")

	t.Run("known field passes through", func(t *testing.T) {
		assert.Equal(t, "room_number", ValidateSortField("room_number", allowed, "created_at"))
		assert.Equal(t, "room_number", ValidateSortField("  room_number  ", allowed, "created_at"))
	})

	t.Run("anything else falls back to the default", func(t *testing.T) {
		for _, input := range []string{
			"",
			"   ",
			"minibar_count",
			"ROOM_NUMBER",
			"room_number bookings",
			"room_number'--",
			"room_number; DROP TABLE bookings;--",
			"room_number UNION SELECT * FROM personnel",
		} {
			assert.Equal(t, "created_at", ValidateSortField(input, allowed, "created_at"), "input %q", input)
		}
	})

	t.Run("empty default stays empty for unknown fields", func(t *testing.T) {
		assert.Equal(t, "", ValidateSortField("minibar_count", allowed, ""))
	})
}

func TestEntitySortWhitelists(t *testing.T) {
	whitelists := map[string]map[string]bool{
		"bookings":     BookingSortFields,
		"guests":       GuestSortFields,
		"rooms":        RoomSortFields,
		"charge items": ChargeItemSortFields,
		"card keys":    CardKeySortFields,
		"personnel":    PersonnelSortFields,
	}

	for name, wl := range whitelists {
		// every whitelist carries the shared columns plus at least one of
		// its own
		assert.True(t, wl["id"] && wl["created_at"] && wl["updated_at"], "%s missing shared columns", name)
		assert.Greater(t, len(wl), 3, "%s has no entity columns", name)
	}

	assert.True(t, BookingSortFields["check_in_date"])
	assert.True(t, GuestSortFields["last_name"])
	assert.True(t, RoomSortFields["weekend_rate"])
	assert.True(t, CardKeySortFields["valid_until"])
}
