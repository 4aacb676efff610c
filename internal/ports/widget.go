package ports

import "coursecraft/internal/domain"

// TreeWidget is the rendering collaborator. After a structural change the
// core hands it already-sorted children; the widget owns its own display
// model and DOM-style diffing.
type TreeWidget interface {
	AddNodes(nodes []*domain.Node, parentKey string)
	RemoveNodes(keys []string)
	Refresh()
}
