package users

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleUser() User {
	return User{
		ID:       1,
		Name:     "Leanne Graham",
		Username: "Bret",
		Email:    "Sincere@april.biz",
		Address: Address{
			Street:  "Kulas Light",
			Suite:   "Apt. 556",
			City:    "Gwenborough",
			Zipcode: "92998-3874",
			Geo:     &Geo{Lat: "-37.3159", Lng: "81.1496"},
		},
		Phone:   "1-770-736-8031 x56442",
		Company: &Company{Name: "Romaguera-Crona", CatchPhrase: "Multi-layered client-server neural-net", BS: "harness real-time e-markets"},
	}
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "Leanne Graham (@Bret) <Sincere@april.biz>", sampleUser().Summary())
	assert.Equal(t, "Solo", User{Name: "Solo"}.Summary())
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Leanne Graham", sampleUser().Label())
	assert.Equal(t, "#9", User{ID: 9}.Label())
}

func TestFormatDetailed(t *testing.T) {
	out := sampleUser().FormatDetailed()

	assert.Contains(t, out, "Name:")
	assert.Contains(t, out, "Kulas Light, Apt. 556 - Gwenborough - 92998-3874")
	assert.Contains(t, out, "-37.3159, 81.1496")
	assert.Contains(t, out, `"Multi-layered client-server neural-net"`)
	assert.NotContains(t, out, "Website:", "empty optional fields are skipped")
}

func TestFormatTable(t *testing.T) {
	list := []User{sampleUser(), {ID: 2, Name: "Ervin Howell", Username: "Antonette", Email: "Shanna@melissa.tv"}}

	out := FormatTable(list)

	assert.Contains(t, out, "USERNAME")
	assert.Contains(t, out, "Romaguera-Crona")
	assert.Less(t, strings.Index(out, "Leanne"), strings.Index(out, "Ervin"), "rows keep input order")
	assert.Equal(t, "No users.", FormatTable(nil))
}

func TestWithoutAndFind(t *testing.T) {
	list := []User{{ID: 1}, {ID: 2}, {ID: 3}}

	rest := Without(list, 2)
	assert.Equal(t, []User{{ID: 1}, {ID: 3}}, rest)
	assert.Len(t, list, 3, "input is not modified")

	_, ok := Find(rest, 2)
	assert.False(t, ok)
	u, ok := Find(rest, 3)
	assert.True(t, ok)
	assert.Equal(t, 3, u.ID)
}
