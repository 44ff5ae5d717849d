package family

import (
	"fmt"
	"strings"
)

type Contact struct {
	Name  string
	Email string
	Phone string
}

func (c Contact) IsZero() bool {
	return c.Name == "" && c.Email == "" && c.Phone == ""
}

// Family groups siblings and the guardians that volunteer for them.
type Family struct {
	ID             string
	Primary        Contact
	Secondary      Contact
	Address        string
	WorkbondExempt bool
	WorkbondNote   string
}

// DisplayName is the primary guardian's name, or the family id.
func (f Family) DisplayName() string {
	if name := strings.TrimSpace(f.Primary.Name); name != "" {
		return name
	}
	return f.ID
}

// Emails returns the non-empty guardian emails, primary first.
func (f Family) Emails() []string {
	out := make([]string, 0, 2)
	for _, c := range []Contact{f.Primary, f.Secondary} {
		if e := strings.TrimSpace(c.Email); e != "" {
			out = append(out, e)
		}
	}
	return out
}

func (f Family) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("family id is required")
	}
	if strings.TrimSpace(f.Primary.Name) == "" {
		return fmt.Errorf("family primary guardian name is required")
	}
	if strings.TrimSpace(f.Primary.Email) == "" {
		return fmt.Errorf("family primary guardian email is required")
	}
	return nil
}

// NormalizeEmail is the key families are matched on during import.
func NormalizeEmail(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
