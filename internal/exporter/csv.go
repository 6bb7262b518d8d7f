package exporter

import (
	"strconv"
	"strings"
	"time"

	"github.com/example/sevahub/internal/models"
)

// BuildCSV renders a snapshot as the multi-section CSV the export files
// have always used. Section order and column headers are part of the file
// contract; downstream spreadsheets depend on them.
func BuildCSV(snap models.Snapshot) string {
	var b strings.Builder

	appData := snap.AppData
	if appData == nil {
		appData = &models.AppData{}
	}

	b.WriteString("REGISTERED USERS\n")
	b.WriteString("ID,Name,Email,Phone,City,Pincode,DOB,Blood Type,Role,Age,Created At\n")
	for _, u := range snap.Users {
		writeRow(&b,
			u.ID.String(), u.Name, u.Email, u.Phone, u.City, u.Pincode, u.DOB,
			u.BloodType, string(u.Role), strconv.Itoa(u.Age), stamp(u.CreatedAt))
	}
	b.WriteString("\n")

	b.WriteString("CURRENT LOGGED-IN USER\n")
	b.WriteString("ID,Name,Email,Phone,Age,Blood Type,Role\n")
	if u := snap.AuthUser; u != nil {
		writeRow(&b,
			u.ID.String(), u.Name, u.Email, u.Phone, strconv.Itoa(u.Age),
			u.BloodType, string(u.Role))
	}
	b.WriteString("\n")

	b.WriteString("SERVICE REQUESTS\n")
	b.WriteString("ID,Name,Service,Date,Place,Phone,Email,Status,Blood Type,Accepted By,Accepted By Needy,Rejected By Needy,Rejection Reason,Number of Acceptances\n")
	for _, r := range appData.ServiceRequests {
		acceptors := make([]string, 0, len(r.Acceptances))
		for _, a := range r.Acceptances {
			acceptors = append(acceptors, a.AcceptorID.String())
		}
		writeRow(&b,
			r.ID.String(), r.Name, string(r.Service), r.Date, r.Place, r.Phone, r.Email,
			string(r.Status), r.BloodType, strings.Join(acceptors, ";"),
			yesNo(r.AcceptedByNeedy), yesNo(r.RejectedByNeedy), r.RejectionReason,
			strconv.Itoa(len(r.Acceptances)))
	}
	b.WriteString("\n")

	b.WriteString("INCOMING ALERTS (BLOOD/ORGAN)\n")
	b.WriteString("ID,Blood Type,Units,Hospital,Urgency,Requester,Contact,Accepted By Needy,Rejected By Needy,Rejection Reason,Created At\n")
	for _, a := range appData.IncomingAlerts {
		writeRow(&b,
			a.ID.String(), a.BloodType, strconv.Itoa(a.Units), a.Hospital, a.Urgency,
			a.RequesterName, a.RequesterContact,
			yesNo(a.AcceptedByNeedy), yesNo(a.RejectedByNeedy), a.RejectionReason,
			stamp(a.CreatedAt))
	}
	b.WriteString("\n")

	b.WriteString("UPCOMING ALERTS (DONOR TASKS)\n")
	b.WriteString("ID,Blood Type,Units,Hospital,Urgency,Accepted By,Accepted At\n")
	for _, t := range appData.UpcomingAlerts {
		writeRow(&b,
			t.ID.String(), t.BloodType, strconv.Itoa(t.Units), t.Hospital, t.Urgency,
			t.AcceptedBy, stamp(t.AcceptedAt))
	}
	b.WriteString("\n")

	b.WriteString("COMPLETED ALERTS (DONOR TASKS)\n")
	b.WriteString("ID,Blood Type,Units,Hospital,Urgency,Status,Completed At\n")
	for _, t := range appData.CompletedAlerts {
		writeRow(&b,
			t.ID.String(), t.BloodType, strconv.Itoa(t.Units), t.Hospital, t.Urgency,
			string(t.Status), stampPtr(t.CompletedAt))
	}
	b.WriteString("\n")

	b.WriteString("VOLUNTEER UPCOMING TASKS\n")
	b.WriteString("ID,Service,Date,Place,Volunteer Name,Accepted By,Accepted At\n")
	for _, t := range appData.VolunteerUpcomingTasks {
		writeRow(&b,
			t.ID.String(), string(t.Service), t.Date, t.Place, t.VolunteerName,
			t.AcceptedBy, stamp(t.AcceptedAt))
	}
	b.WriteString("\n")

	b.WriteString("VOLUNTEER COMPLETED TASKS\n")
	b.WriteString("ID,Service,Date,Place,Volunteer Name,Status,Completed At\n")
	for _, t := range appData.VolunteerCompletedTasks {
		writeRow(&b,
			t.ID.String(), string(t.Service), t.Date, t.Place, t.VolunteerName,
			string(t.Status), stampPtr(t.CompletedAt))
	}

	return b.String()
}

func writeRow(b *strings.Builder, fields ...string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func stampPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return stamp(*t)
}
