package report

import (
	"fmt"
	"strings"
	"time"
)

// MinutesAssignee is one serving-team line of a minutes document.
type MinutesAssignee struct {
	RoleLabel  string
	MemberName string
}

// MinutesInput carries everything a minutes document mentions. The
// placeholder sections are left for the group to fill in by hand.
type MinutesInput struct {
	Date        string // YYYY-MM-DD
	SeriesTitle string
	Passage     string
	Theme       string
	Assignees   []MinutesAssignee
	Present     []string // member names
	Absent      []string // member names
	Discussion  []string // guide questions
	Reflection  []string // guide questions
	NextDate    string   // YYYY-MM-DD, empty when unknown
	NextPassage string
}

// BuildMinutes renders the markdown minutes document for one session.
func BuildMinutes(input MinutesInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# 📝 Bible Study Meeting Minutes\n*%s*\n\n", LongDate(input.Date))

	if input.SeriesTitle != "" {
		fmt.Fprintf(&b, "## 📖 %s\n", input.SeriesTitle)
	} else {
		b.WriteString("## 📖 Study Session\n")
	}
	if input.Passage != "" {
		fmt.Fprintf(&b, "*%s*  \n", input.Passage)
	}
	if input.Theme != "" {
		fmt.Fprintf(&b, "*Theme: %s*\n", input.Theme)
	}
	b.WriteString("\n---\n")

	if len(input.Assignees) > 0 {
		b.WriteString("\n## 🙌 Serving Team\n")
		for _, a := range input.Assignees {
			fmt.Fprintf(&b, "- **%s**: %s\n", a.RoleLabel, a.MemberName)
		}
	}

	if len(input.Present)+len(input.Absent) > 0 {
		b.WriteString("\n## ✅ Attendance\n")
		fmt.Fprintf(&b, "Present (%d): %s\n", len(input.Present), nameList(input.Present))
		if len(input.Absent) > 0 {
			fmt.Fprintf(&b, "Absent (%d): %s\n", len(input.Absent), nameList(input.Absent))
		}
	}

	b.WriteString(`
---

## 🎯 Discussion Summary
[Add a brief summary of the key points discussed]

---

## 💡 Key Insights
- [Insight 1]
- [Insight 2]
- [Insight 3]
`)

	if len(input.Discussion) > 0 {
		b.WriteString("\n## ❓ Discussion Questions\n")
		for i, q := range input.Discussion {
			fmt.Fprintf(&b, "%d. %s\n", i+1, q)
		}
	}

	if len(input.Reflection) > 0 {
		b.WriteString("\n## 🤔 Reflection Questions\n")
		for _, q := range input.Reflection {
			fmt.Fprintf(&b, "- %s\n", q)
		}
	}

	nextSession := "TBD"
	if input.NextDate != "" {
		nextSession = LongDate(input.NextDate)
		if input.NextPassage != "" {
			nextSession += " - " + input.NextPassage
		}
	}

	fmt.Fprintf(&b, `
---

## 🙏 Prayer Points
- [Prayer point 1]
- [Prayer point 2]

---

## 📅 Next Session
*%s*

---

*Thank you everyone for your participation and insights! See you next time!* 🙌
`, nextSession)

	return b.String()
}

// MinutesFileName returns the export file name for a session's minutes.
func MinutesFileName(date string) string {
	return fmt.Sprintf("meeting_minutes_%s.md", date)
}

// LongDate renders YYYY-MM-DD as "Monday, January 02, 2006". Dates that
// do not parse are returned as given.
func LongDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Monday, January 02, 2006")
}

func nameList(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}
