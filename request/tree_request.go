package request

import (
	"github.com/PayRam/go-team-tree/models"
	"github.com/goccy/go-json"
)

// StringOrNumber decodes a JSON value the backend emits either as a quoted
// string or a bare number, preserving its literal text. Amounts in particular
// arrive as "12.5" from some endpoints and 12.5 from others.
type StringOrNumber string

func (s *StringOrNumber) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*s = ""
		return nil
	}
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = StringOrNumber(v)
		return nil
	}
	*s = StringOrNumber(b)
	return nil
}

// TeamTreePayload mirrors the member/team-tree endpoint response shape at
// every level of nesting. All numeric fields go through defaulting coercion
// during ingestion; nothing here is trusted beyond its JSON type.
type TeamTreePayload struct {
	MemberID   string            `json:"member_id"`
	Email      string            `json:"email"`
	Nickname   string            `json:"nickname"`
	RealName   *string           `json:"realname"`
	Phone      *string           `json:"phone"`
	UserType   string            `json:"user_type"`
	Amount     StringOrNumber    `json:"amount"`
	CreateTime StringOrNumber    `json:"create_time"`
	Children   []TeamTreePayload `json:"children"`
}

// FilterCriteria is the search surface of the members screens: a free-text
// needle matched against email, nickname and real name, plus an optional
// user-type restriction. Owned by the caller and passed in on every filter.
type FilterCriteria struct {
	SearchText string           `json:"searchText"`
	UserType   *models.UserType `json:"userType"`
}
