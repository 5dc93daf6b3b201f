package drivepath

import (
	"google.golang.org/api/drive/v3"
)

// findChild looks up a child of parentID by exact name, consuming result
// pages in order and stopping at the first match. The remote namespace does
// not enforce name uniqueness per folder; when duplicates exist the first
// page-order hit wins, which is arbitrary but deterministic per call.
func (d *Drive) findChild(parentID, name string, kind Kind) (file *drive.File, found bool, err error) {
	query := listFilter{
		nameEquals: name,
		parentID:   parentID,
		kind:       kind,
	}.build()

	pageToken := ""
	for {
		items, nextPageToken, err := d.store.ListChildren(query, listFields, pageToken)
		if err != nil {
			return nil, false, err
		}
		if len(items) > 0 {
			d.log.WithField("name", name).WithField("parent", parentID).Debug("found child")
			return items[0], true, nil
		}
		if nextPageToken == "" {
			return nil, false, nil
		}
		pageToken = nextPageToken
	}
}
