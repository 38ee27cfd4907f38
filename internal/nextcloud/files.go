package nextcloud

// In this file: WebDAV file storage operations.

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

// FileInfo describes a single entry of a WebDAV folder listing.
type FileInfo struct {
	Path        string    `json:"path"`
	Name        string    `json:"name"`
	IsDir       bool      `json:"is_dir"`
	Size        int64     `json:"size,omitempty"`
	ContentType string    `json:"content_type,omitempty"`
	Modified    time.Time `json:"modified,omitzero"`
	ETag        string    `json:"etag,omitempty"`
}

// multistatus mirrors the subset of the PROPFIND response that we care
// about.
type multistatus struct {
	XMLName   xml.Name  `xml:"multistatus"`
	Responses []davResp `xml:"response"`
}

type davResp struct {
	Href     string `xml:"href"`
	Propstat []struct {
		Status string  `xml:"status"`
		Prop   davProp `xml:"prop"`
	} `xml:"propstat"`
}

type davProp struct {
	DisplayName   string `xml:"displayname"`
	ContentLength int64  `xml:"getcontentlength"`
	ContentType   string `xml:"getcontenttype"`
	LastModified  string `xml:"getlastmodified"`
	ETag          string `xml:"getetag"`
	ResourceType  struct {
		Collection *struct{} `xml:"collection"`
	} `xml:"resourcetype"`
}

const propfindBody = `<?xml version="1.0"?>
<d:propfind xmlns:d="DAV:">
  <d:prop>
    <d:displayname/>
    <d:getcontentlength/>
    <d:getcontenttype/>
    <d:getlastmodified/>
    <d:getetag/>
    <d:resourcetype/>
  </d:prop>
</d:propfind>`

// filesPath returns the DAV path for the given user file path.
func (c *Client) filesPath(p string) string {
	return davPath + "/files/" + c.username + "/" + strings.TrimLeft(p, "/")
}

// propfind issues a PROPFIND with the given Depth and parses the
// multistatus response.
func (c *Client) propfind(ctx context.Context, davpath, depth string) (*multistatus, error) {
	hdr := make(http.Header)
	hdr.Set("Depth", depth)
	hdr.Set("Content-Type", "application/xml")
	resp, err := c.do(ctx, "PROPFIND", davpath, hdr, strings.NewReader(propfindBody))
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp, "PROPFIND "+davpath, http.StatusMultiStatus, http.StatusOK); err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var ms multistatus
	if err := xml.NewDecoder(resp.Body).Decode(&ms); err != nil {
		return nil, fmt.Errorf("PROPFIND %s: decode: %w", davpath, err)
	}
	return &ms, nil
}

// ListFolder returns the entries of the folder at p ("/" for the root).  The
// folder itself is not included in the listing.
func (c *Client) ListFolder(ctx context.Context, p string) ([]FileInfo, error) {
	davpath := c.filesPath(p)
	ms, err := c.propfind(ctx, davpath, "1")
	if err != nil {
		return nil, err
	}
	self := strings.TrimRight(davpath, "/")
	entries := make([]FileInfo, 0, len(ms.Responses))
	for _, r := range ms.Responses {
		href, err := url.PathUnescape(r.Href)
		if err != nil {
			href = r.Href
		}
		if strings.TrimRight(href, "/") == self {
			continue
		}
		if len(r.Propstat) == 0 {
			continue
		}
		prop := r.Propstat[0].Prop
		fi := FileInfo{
			Path:        strings.TrimPrefix(strings.TrimRight(href, "/"), davPath+"/files/"+c.username),
			Name:        path.Base(strings.TrimRight(href, "/")),
			IsDir:       prop.ResourceType.Collection != nil,
			Size:        prop.ContentLength,
			ContentType: prop.ContentType,
			ETag:        strings.Trim(prop.ETag, `"`),
		}
		if t, err := http.ParseTime(prop.LastModified); err == nil {
			fi.Modified = t
		}
		entries = append(entries, fi)
	}
	return entries, nil
}

// ReadFile returns the contents of the file at p.
func (c *Client) ReadFile(ctx context.Context, p string) ([]byte, error) {
	davpath := c.filesPath(p)
	resp, err := c.do(ctx, http.MethodGet, davpath, nil, nil)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp, "GET "+davpath, http.StatusOK); err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: read: %w", davpath, err)
	}
	return data, nil
}

// WriteFile creates or overwrites the file at p with data.
func (c *Client) WriteFile(ctx context.Context, p string, data []byte) error {
	davpath := c.filesPath(p)
	resp, err := c.do(ctx, http.MethodPut, davpath, nil, bytes.NewReader(data))
	if err != nil {
		return err
	}
	if err := checkStatus(resp, "PUT "+davpath, http.StatusOK, http.StatusCreated, http.StatusNoContent); err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// DeleteFile deletes the file or folder at p.  Returns ErrNotFound if it
// does not exist.
func (c *Client) DeleteFile(ctx context.Context, p string) error {
	davpath := c.filesPath(p)
	resp, err := c.do(ctx, http.MethodDelete, davpath, nil, nil)
	if err != nil {
		return err
	}
	if err := checkStatus(resp, "DELETE "+davpath, http.StatusOK, http.StatusNoContent); err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
