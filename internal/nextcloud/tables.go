package nextcloud

// In this file: Tables app REST API operations.

import (
	"context"
	"encoding/json"
	"fmt"
)

// Table describes a table of the Nextcloud Tables app.
type Table struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Emoji     string `json:"emoji,omitempty"`
	Ownership string `json:"ownership,omitempty"`
	RowCount  int    `json:"rowsCount,omitempty"`
}

// TableRow is a single row.  Data holds the cell values keyed by column id,
// in the shape the Tables API returns them.
type TableRow struct {
	ID   int64          `json:"id"`
	Data []TableRowCell `json:"data"`
}

// TableRowCell is one cell of a row.
type TableRowCell struct {
	ColumnID int64           `json:"columnId"`
	Value    json.RawMessage `json:"value"`
}

// Tables lists the tables the authenticated user can access.
func (c *Client) Tables(ctx context.Context) ([]Table, error) {
	var tt []Table
	if err := c.getJSON(ctx, tablesAPIPath+"/tables", &tt); err != nil {
		return nil, err
	}
	return tt, nil
}

// TableRows returns up to limit rows of the table with the given id.
func (c *Client) TableRows(ctx context.Context, id int64, limit int) ([]TableRow, error) {
	path := fmt.Sprintf("%s/tables/%d/rows?limit=%d", tablesAPIPath, id, limit)
	var rows []TableRow
	if err := c.getJSON(ctx, path, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
