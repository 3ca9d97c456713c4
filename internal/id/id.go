package id

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatMemberID returns a member reference like "#7".
func FormatMemberID(id int64) string {
	return "#" + strconv.FormatInt(id, 10)
}

// ParseMemberID parses "7" or "#7" into a member id.
// Zero is reserved for the Profit row and is rejected.
func ParseMemberID(s string) (int64, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if raw == "" {
		return 0, fmt.Errorf("empty member id")
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid member id %q: %w", s, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid member id %q: must be positive", s)
	}
	return id, nil
}
