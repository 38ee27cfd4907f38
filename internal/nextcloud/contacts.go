package nextcloud

// In this file: CardDAV address book and contact listing.

import (
	"context"
	"net/http"
	"path"
	"strings"
)

// AddressBook is a single CardDAV address book collection.
type AddressBook struct {
	ID          string `json:"id"` // last path element of the collection URL
	DisplayName string `json:"display_name"`
}

// Contact is a contact card, reduced to the commonly used vCard fields.
type Contact struct {
	UID      string   `json:"uid,omitempty"`
	FullName string   `json:"full_name"`
	Emails   []string `json:"emails,omitempty"`
	Phones   []string `json:"phones,omitempty"`
	Org      string   `json:"org,omitempty"`
}

func (c *Client) addressBooksPath() string {
	return davPath + "/addressbooks/users/" + c.username + "/"
}

// AddressBooks lists the address books of the authenticated user.
func (c *Client) AddressBooks(ctx context.Context) ([]AddressBook, error) {
	davpath := c.addressBooksPath()
	ms, err := c.propfind(ctx, davpath, "1")
	if err != nil {
		return nil, err
	}
	var books []AddressBook
	for _, r := range ms.Responses {
		if len(r.Propstat) == 0 {
			continue
		}
		prop := r.Propstat[0].Prop
		if prop.DisplayName == "" {
			continue
		}
		books = append(books, AddressBook{
			ID:          path.Base(strings.TrimRight(r.Href, "/")),
			DisplayName: prop.DisplayName,
		})
	}
	return books, nil
}

// addressbookQuery requests the address data of every card in the book.
const addressbookQuery = `<?xml version="1.0"?>
<card:addressbook-query xmlns:d="DAV:" xmlns:card="urn:ietf:params:xml:ns:carddav">
  <d:prop><card:address-data/></d:prop>
</card:addressbook-query>`

// Contacts returns the contacts of the named address book.
func (c *Client) Contacts(ctx context.Context, book string) ([]Contact, error) {
	davpath := c.addressBooksPath() + book + "/"
	hdr := make(http.Header)
	hdr.Set("Depth", "1")
	hdr.Set("Content-Type", "application/xml")
	resp, err := c.do(ctx, "REPORT", davpath, hdr, strings.NewReader(addressbookQuery))
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp, "REPORT "+davpath, http.StatusMultiStatus, http.StatusOK); err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var report reportMultistatus
	if err := decodeXML(resp.Body, &report); err != nil {
		return nil, err
	}
	var contacts []Contact
	for _, r := range report.Responses {
		for _, ps := range r.Propstat {
			if ps.Prop.AddressData == "" {
				continue
			}
			contacts = append(contacts, parseVCards(ps.Prop.AddressData)...)
		}
	}
	return contacts, nil
}

// parseVCards extracts contacts from raw vCard data, which may contain
// multiple cards.
func parseVCards(data string) []Contact {
	lines := unfold(strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n"))
	var (
		contacts []Contact
		cur      *Contact
	)
	for _, line := range lines {
		switch {
		case line == "BEGIN:VCARD":
			cur = &Contact{}
		case line == "END:VCARD":
			if cur != nil {
				contacts = append(contacts, *cur)
				cur = nil
			}
		case cur == nil:
			continue
		default:
			name, _, value := splitICalLine(line)
			switch name {
			case "UID":
				cur.UID = value
			case "FN":
				cur.FullName = unescapeICal(value)
			case "EMAIL":
				cur.Emails = append(cur.Emails, value)
			case "TEL":
				cur.Phones = append(cur.Phones, value)
			case "ORG":
				cur.Org = unescapeICal(value)
			}
		}
	}
	return contacts
}
