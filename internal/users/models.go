package users

// User represents a single record returned by GET /users and GET /users/{id}.
// This matches the JSON structure served by jsonplaceholder-compatible APIs.
//
// ID is assigned by the remote service and never changes once created.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`

	Address Address `json:"address"`

	// Optional contact details
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`

	Company *Company `json:"company,omitempty"`
}

// Address is the postal address of a user. Suite and Geo are optional.
type Address struct {
	Street  string `json:"street"`
	Suite   string `json:"suite,omitempty"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode"`
	Geo     *Geo   `json:"geo,omitempty"`
}

// Geo holds coordinates as the remote encodes them (decimal strings).
type Geo struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

// Company is the optional employer block.
type Company struct {
	Name        string `json:"name"`
	CatchPhrase string `json:"catchPhrase"`
	BS          string `json:"bs"`
}

// Usable reports whether the record carries a remote-assigned identifier.
// A 2xx response that decodes to an empty object is not a usable record.
func (u *User) Usable() bool {
	return u != nil && u.ID > 0
}

// Without returns a copy of list with every record whose ID equals id removed.
// Order of the remaining records is preserved.
func Without(list []User, id int) []User {
	out := make([]User, 0, len(list))
	for _, u := range list {
		if u.ID != id {
			out = append(out, u)
		}
	}
	return out
}

// Find returns the record with the given ID, if present.
func Find(list []User, id int) (User, bool) {
	for _, u := range list {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}
