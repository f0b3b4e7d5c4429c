// Package models defines the data records shared by the client and server:
// folders, file records and the nonce wire format.
package models

// Folder is a flat namespace entry for grouping files. Folders are
// immutable once created; there is no nesting and no rename/delete.
type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
