package model

// OwnerID is the opaque authenticated identity that partitions all
// item and list collections.
type OwnerID string

// Collection names under an owner.
const (
	CollectionItems = "items"
	CollectionList  = "list"
)

// CollectionPath returns the namespaced path of one of an owner's collections,
// e.g. owner/4b1e.../items.
func CollectionPath(owner OwnerID, collection string) string {
	return "owner/" + string(owner) + "/" + collection
}

// ItemsPath returns the path of the owner's item collection.
func ItemsPath(owner OwnerID) string {
	return CollectionPath(owner, CollectionItems)
}

// ListPath returns the path of the owner's restock list.
func ListPath(owner OwnerID) string {
	return CollectionPath(owner, CollectionList)
}
