package drivepath

import "sort"

// Roots maps shared-drive labels to their remote root identifiers. The set of
// labels is closed: a path whose first segment is not a key here is
// unreachable no matter what the remote store itself would permit.
type Roots map[string]string

// Resolve returns the root identifier registered for label.
func (r Roots) Resolve(label string) (string, error) {
	id, ok := r[label]
	if !ok {
		return "", &NotAuthorizedError{Label: label}
	}
	return id, nil
}

// Labels returns the registered labels in sorted order.
func (r Roots) Labels() []string {
	labels := make([]string, 0, len(r))
	for label := range r {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
