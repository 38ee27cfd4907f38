package nextcloud

// In this file: shared pieces of the DAV REPORT response handling used by
// both the calendar and contacts clients.

import (
	"encoding/xml"
	"io"
)

// reportMultistatus is the multistatus envelope of a REPORT response.  Both
// calendar-data (CalDAV) and address-data (CardDAV) payloads are decoded by
// local element name, ignoring the namespace prefix the server chose.
type reportMultistatus struct {
	XMLName   xml.Name `xml:"multistatus"`
	Responses []struct {
		Href     string `xml:"href"`
		Propstat []struct {
			Status string     `xml:"status"`
			Prop   reportProp `xml:"prop"`
		} `xml:"propstat"`
	} `xml:"response"`
}

type reportProp struct {
	CalendarData string `xml:"calendar-data"`
	AddressData  string `xml:"address-data"`
}

func decodeXML(r io.Reader, v any) error {
	return xml.NewDecoder(r).Decode(v)
}
