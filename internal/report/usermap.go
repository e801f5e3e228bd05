package report

import (
	"fmt"
	"regexp"
	"strings"
)

const userToken = `[A-Za-z0-9_\-@.]+`

var userMapPattern = regexp.MustCompile(`^` + userToken + `:` + userToken + `(,\s*` + userToken + `:` + userToken + `)*$`)

// ValidUserMap reports whether s has the form "login:ID" or "login:ID, login:ID, ..."
func ValidUserMap(s string) bool {
	return userMapPattern.MatchString(strings.TrimSpace(s))
}

// ParseUserMap converts "login1:U123, login2:U456" into a login to chat user ID map.
// An empty string yields an empty map.
func ParseUserMap(s string) (map[string]string, error) {
	users := make(map[string]string)
	if strings.TrimSpace(s) == "" {
		return users, nil
	}
	if !ValidUserMap(s) {
		return nil, fmt.Errorf("invalid user map %q: expected login:ID[,login:ID...]", s)
	}

	for _, entry := range strings.Split(s, ",") {
		login, id, _ := strings.Cut(strings.TrimSpace(entry), ":")
		users[login] = id
	}
	return users, nil
}
