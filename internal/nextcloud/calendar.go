package nextcloud

// In this file: CalDAV calendar and event listing.  Only the properties
// needed for the calendar tools are parsed; full iCalendar support is out of
// scope.

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"
)

// Calendar is a single CalDAV calendar collection.
type Calendar struct {
	ID          string `json:"id"` // last path element of the collection URL
	DisplayName string `json:"display_name"`
	Description string `json:"description,omitempty"`
}

// Event is a calendar event, reduced to the fields that matter for listing.
type Event struct {
	UID      string    `json:"uid"`
	Summary  string    `json:"summary"`
	Location string    `json:"location,omitempty"`
	Start    time.Time `json:"start,omitzero"`
	End      time.Time `json:"end,omitzero"`
	AllDay   bool      `json:"all_day,omitempty"`
}

func (c *Client) calendarsPath() string {
	return davPath + "/calendars/" + c.username + "/"
}

// Calendars lists the calendars of the authenticated user.
func (c *Client) Calendars(ctx context.Context) ([]Calendar, error) {
	davpath := c.calendarsPath()
	ms, err := c.propfind(ctx, davpath, "1")
	if err != nil {
		return nil, err
	}
	var cals []Calendar
	for _, r := range ms.Responses {
		if len(r.Propstat) == 0 {
			continue
		}
		prop := r.Propstat[0].Prop
		// the principal home itself and non-calendar collections (inbox,
		// outbox, trash) have no display name worth showing; skip entries
		// without one.
		if prop.DisplayName == "" {
			continue
		}
		cals = append(cals, Calendar{
			ID:          path.Base(strings.TrimRight(r.Href, "/")),
			DisplayName: prop.DisplayName,
		})
	}
	return cals, nil
}

// calendarQuery is the REPORT body for a time-range event query.
const calendarQuery = `<?xml version="1.0"?>
<c:calendar-query xmlns:d="DAV:" xmlns:c="urn:ietf:params:xml:ns:caldav">
  <d:prop><c:calendar-data/></d:prop>
  <c:filter>
    <c:comp-filter name="VCALENDAR">
      <c:comp-filter name="VEVENT">
        <c:time-range start="%s" end="%s"/>
      </c:comp-filter>
    </c:comp-filter>
  </c:filter>
</c:calendar-query>`

// Events returns the events of the named calendar that fall in [from, to).
func (c *Client) Events(ctx context.Context, calendar string, from, to time.Time) ([]Event, error) {
	davpath := c.calendarsPath() + calendar + "/"
	body := fmt.Sprintf(calendarQuery,
		from.UTC().Format("20060102T150405Z"),
		to.UTC().Format("20060102T150405Z"))

	hdr := make(http.Header)
	hdr.Set("Depth", "1")
	hdr.Set("Content-Type", "application/xml")
	resp, err := c.do(ctx, "REPORT", davpath, hdr, strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp, "REPORT "+davpath, http.StatusMultiStatus, http.StatusOK); err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var report reportMultistatus
	if err := decodeXML(resp.Body, &report); err != nil {
		return nil, fmt.Errorf("REPORT %s: decode: %w", davpath, err)
	}
	var events []Event
	for _, r := range report.Responses {
		for _, ps := range r.Propstat {
			if ps.Prop.CalendarData == "" {
				continue
			}
			events = append(events, parseEvents(ps.Prop.CalendarData)...)
		}
	}
	return events, nil
}

// parseEvents extracts VEVENT blocks from raw iCalendar data.  Line folding
// (continuation lines starting with a space) is unfolded first.
func parseEvents(ical string) []Event {
	lines := unfold(strings.Split(strings.ReplaceAll(ical, "\r\n", "\n"), "\n"))
	var (
		events []Event
		cur    *Event
	)
	for _, line := range lines {
		switch {
		case line == "BEGIN:VEVENT":
			cur = &Event{}
		case line == "END:VEVENT":
			if cur != nil {
				events = append(events, *cur)
				cur = nil
			}
		case cur == nil:
			continue
		default:
			name, params, value := splitICalLine(line)
			switch name {
			case "UID":
				cur.UID = value
			case "SUMMARY":
				cur.Summary = unescapeICal(value)
			case "LOCATION":
				cur.Location = unescapeICal(value)
			case "DTSTART":
				cur.Start, cur.AllDay = parseICalTime(value, params)
			case "DTEND":
				cur.End, _ = parseICalTime(value, params)
			}
		}
	}
	return events
}

func unfold(lines []string) []string {
	var out []string
	for _, l := range lines {
		if (strings.HasPrefix(l, " ") || strings.HasPrefix(l, "\t")) && len(out) > 0 {
			out[len(out)-1] += l[1:]
			continue
		}
		out = append(out, l)
	}
	return out
}

// splitICalLine splits "NAME;PARAM=X:value" into its parts.
func splitICalLine(line string) (name, params, value string) {
	name, value, ok := strings.Cut(line, ":")
	if !ok {
		return line, "", ""
	}
	name, params, _ = strings.Cut(name, ";")
	return name, params, value
}

func unescapeICal(s string) string {
	r := strings.NewReplacer(`\n`, "\n", `\,`, ",", `\;`, ";", `\\`, `\`)
	return r.Replace(s)
}

// parseICalTime parses an iCalendar date or date-time value.  A VALUE=DATE
// property (all day event) has no time component.
func parseICalTime(value, params string) (t time.Time, allDay bool) {
	if strings.Contains(params, "VALUE=DATE") || len(value) == 8 {
		t, _ = time.Parse("20060102", value)
		return t, true
	}
	if strings.HasSuffix(value, "Z") {
		t, _ = time.Parse("20060102T150405Z", value)
		return t, false
	}
	// floating or TZID qualified times are taken as local time.
	t, _ = time.ParseInLocation("20060102T150405", value, time.Local)
	return t, false
}
