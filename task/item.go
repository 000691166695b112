package task

import (
	"sort"
)

// Item represents a build item: an identity with named metadata
type Item struct {
	Identity string
	Metadata map[string]string
}

// NewItem creates an item
func NewItem(identity string, metadata map[string]string) *Item {
	item := &Item{Identity: identity, Metadata: make(map[string]string, len(metadata))}
	for k, v := range metadata {
		item.Metadata[k] = v
	}
	return item
}

// GetMetadata returns metadata value, ok is false when metadata is not defined
func (i *Item) GetMetadata(name string) (string, bool) {
	value, ok := i.Metadata[name]
	return value, ok
}

// SetMetadata sets metadata value
func (i *Item) SetMetadata(name, value string) {
	if i.Metadata == nil {
		i.Metadata = make(map[string]string)
	}
	i.Metadata[name] = value
}

// RemoveMetadata removes metadata
func (i *Item) RemoveMetadata(name string) {
	delete(i.Metadata, name)
}

// MetadataNames returns sorted metadata names
func (i *Item) MetadataNames() []string {
	names := make([]string, 0, len(i.Metadata))
	for name := range i.Metadata {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CopyMetadataTo copies all metadata to the destination item
func (i *Item) CopyMetadataTo(dest *Item) {
	for name, value := range i.Metadata {
		dest.SetMetadata(name, value)
	}
}
