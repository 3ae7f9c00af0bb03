package host

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// User is the launching user as reported by the host platform.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
}

// DisplayName is the first name, falling back to the username.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}

// InitData is the URL-encoded launch data handed to the mini-app.
// It is parsed but never verified.
type InitData struct {
	Raw     string
	QueryID string
	User    *User
}

// Present reports whether the app was launched inside the host.
func (d InitData) Present() bool {
	return d.Raw != ""
}

// ParseInitData decodes raw launch data. An empty string yields the zero value.
func ParseInitData(raw string) (InitData, error) {
	if raw == "" {
		return InitData{}, nil
	}

	values, err := url.ParseQuery(raw)
	if err != nil {
		return InitData{}, fmt.Errorf("failed to parse init data: %w", err)
	}

	data := InitData{
		Raw:     raw,
		QueryID: values.Get("query_id"),
	}
	if u := values.Get("user"); u != "" {
		var user User
		if err := json.Unmarshal([]byte(u), &user); err != nil {
			return InitData{}, fmt.Errorf("failed to decode init data user: %w", err)
		}
		data.User = &user
	}
	return data, nil
}
