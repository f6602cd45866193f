package users

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Summary returns a one-line description: "Leanne Graham (@Bret) <Sincere@april.biz>"
func (u User) Summary() string {
	s := u.Name
	if u.Username != "" {
		s += " (@" + u.Username + ")"
	}
	if u.Email != "" {
		s += " <" + u.Email + ">"
	}
	return s
}

// Label is the text shown for a user in confirmations and notices.
func (u User) Label() string {
	if u.Name != "" {
		return u.Name
	}
	return "#" + strconv.Itoa(u.ID)
}

// FormatAddress joins the address parts that are present.
func (a Address) FormatAddress() string {
	parts := []string{}
	street := a.Street
	if a.Suite != "" {
		street = strings.TrimSpace(street + ", " + a.Suite)
	}
	for _, p := range []string{street, a.City, a.Zipcode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " - ")
}

// FormatDetailed returns the labelled multi-line rendering used by
// 'userdeck show' and the detail screen.
func (u User) FormatDetailed() string {
	var sb strings.Builder

	row := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&sb, "%-10s %s\n", label+":", value)
	}

	row("ID", strconv.Itoa(u.ID))
	row("Name", u.Name)
	row("Username", u.Username)
	row("Email", u.Email)
	row("Phone", u.Phone)
	row("Website", u.Website)
	row("Address", u.Address.FormatAddress())
	if g := u.Address.Geo; g != nil {
		row("Geo", g.Lat+", "+g.Lng)
	}
	if c := u.Company; c != nil {
		row("Company", c.Name)
		if c.CatchPhrase != "" {
			fmt.Fprintf(&sb, "%-10s %q\n", "", c.CatchPhrase)
		}
		if c.BS != "" {
			fmt.Fprintf(&sb, "%-10s %s\n", "", c.BS)
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// FormatTable renders users as a bordered table for 'userdeck list'.
func FormatTable(list []User) string {
	if len(list) == 0 {
		return "No users."
	}

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "USERNAME", "EMAIL", "COMPANY").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})

	for _, u := range list {
		company := ""
		if u.Company != nil {
			company = u.Company.Name
		}
		t.Row(strconv.Itoa(u.ID), u.Name, u.Username, u.Email, company)
	}

	return t.Render()
}
