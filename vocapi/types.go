package vocapi

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ID accepts identifiers sent either as JSON numbers or strings.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes numeric ids as numbers so they round-trip unchanged.
func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id ID) String() string {
	return string(id)
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserData struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the body of a successful login or registration. Token is
// empty when the server accepted the request without opening a session.
type AuthResponse struct {
	Token   string `json:"token"`
	UserID  ID     `json:"userId,omitempty"`
	Message string `json:"message,omitempty"`
}

// Acknowledgement is returned by endpoints that only confirm receipt.
type Acknowledgement struct {
	Message string `json:"message"`
}

type Profile struct {
	ID        ID     `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

type Notification struct {
	ID        ID     `json:"id"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"createdAt"`
}

type NotificationSettings struct {
	EmailNotifications bool `json:"emailNotifications"`
	PushNotifications  bool `json:"pushNotifications"`
	Updates            bool `json:"updates"`
}

type PrivacySettings struct {
	ProfileVisibility string `json:"profileVisibility"`
	ActivityStatus    bool   `json:"activityStatus"`
}

type SoundSettings struct {
	EnableSound bool `json:"enableSound"`
	Volume      int  `json:"volume"`
}

type Settings struct {
	UserID ID `json:"userId,omitempty"`
	NotificationSettings
	PrivacySettings
	SoundSettings
}

type BusinessType struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

type Business struct {
	Name           string `json:"name"`
	BusinessTypeID ID     `json:"businessTypeId"`
	Address        string `json:"address"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty"`
}

type AddressValidation struct {
	Valid            bool   `json:"valid"`
	FormattedAddress string `json:"formattedAddress,omitempty"`
	Message          string `json:"message,omitempty"`
}

type Review struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
	Comment     string `json:"comment"`
	Rating      int    `json:"rating,omitempty"`
}
