package csvcodec

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// headerAliases maps the spellings seen in registration exports to the
// canonical import keys. Keys are lowercased and whitespace-collapsed.
var headerAliases = map[string]string{
	"first name":                 "first_name",
	"player first name":          "first_name",
	"firstname":                  "first_name",
	"last name":                  "last_name",
	"player last name":           "last_name",
	"lastname":                   "last_name",
	"birth date":                 "birth_date",
	"birthdate":                  "birth_date",
	"date of birth":              "birth_date",
	"dob":                        "birth_date",
	"gender":                     "gender",
	"sex":                        "gender",
	"family id":                  "family_id",
	"family":                     "family_id",
	"division":                   "division",
	"division name":              "division",
	"team":                       "team",
	"team name":                  "team",
	"status":                     "status",
	"new player":                 "is_new_player",
	"is new player":              "is_new_player",
	"travel player":              "is_travel_player",
	"is travel player":           "is_travel_player",
	"payment received":           "payment_received",
	"paid":                       "payment_received",
	"guardian name":              "primary_guardian_name",
	"parent name":                "primary_guardian_name",
	"primary guardian name":      "primary_guardian_name",
	"guardian email":             "primary_guardian_email",
	"parent email":               "primary_guardian_email",
	"primary guardian email":     "primary_guardian_email",
	"guardian phone":             "primary_guardian_phone",
	"parent phone":               "primary_guardian_phone",
	"primary guardian phone":     "primary_guardian_phone",
	"secondary guardian name":    "secondary_guardian_name",
	"secondary guardian email":   "secondary_guardian_email",
	"secondary guardian phone":   "secondary_guardian_phone",
	"name":                       "name",
	"volunteer name":             "name",
	"email":                      "email",
	"email address":              "email",
	"phone":                      "phone",
	"phone number":               "phone",
	"role":                       "role",
	"volunteer role":             "role",
	"interested roles":           "interested_roles",
	"volunteer interests":        "interested_roles",
	"training completed":         "training_completed",
	"background check":           "background_check_status",
	"background check status":    "background_check_status",
	"medical notes":              "medical_notes",
	"address":                    "address",
	"workbond exempt":            "workbond_exempt",
	"workbond note":              "workbond_note",
	"shift":                      "shift_name",
	"shift name":                 "shift_name",
	"location":                   "location",
	"starts at":                  "starts_at",
	"ends at":                    "ends_at",
	"hours":                      "hours",
	"capacity":                   "capacity",
}

// NormalizeHeader maps a raw header to its canonical key. Unknown headers
// are lowercased with whitespace runs replaced by "_".
func NormalizeHeader(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.TrimPrefix(key, "\uFEFF")
	collapsed := whitespaceRun.ReplaceAllString(key, " ")
	if alias, ok := headerAliases[collapsed]; ok {
		return alias
	}
	return whitespaceRun.ReplaceAllString(key, "_")
}
