package library

import "sort"

// GraphNode is the renderer-facing projection of a media item.
type GraphNode struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Type  MediaType `json:"type"`
}

// GraphLink is an undirected edge between two related items.
type GraphLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Graph is the read-only node/edge projection consumed by visualization
// layers. The store never accepts mutations through it.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Links []GraphLink `json:"links"`
}

// Graph projects the current items and their relatedMedia links.
// Symmetric duplicates (a→b and b→a) collapse into one link, and links
// to ids not present in the library are dropped.
func (s *Store) Graph() Graph {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g := Graph{Nodes: make([]GraphNode, 0, len(s.items)), Links: []GraphLink{}}
	exists := make(map[string]bool, len(s.items))
	for _, m := range s.items {
		g.Nodes = append(g.Nodes, GraphNode{ID: m.ID, Title: m.Title, Type: m.Type})
		exists[m.ID] = true
	}

	seen := make(map[[2]string]bool)
	for _, m := range s.items {
		for _, rid := range m.RelatedMedia {
			if !exists[rid] || rid == m.ID {
				continue
			}
			key := [2]string{m.ID, rid}
			if rid < m.ID {
				key = [2]string{rid, m.ID}
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			g.Links = append(g.Links, GraphLink{Source: m.ID, Target: rid})
		}
	}
	return g
}

// TimelineGroup is one year bucket of the timeline projection.
type TimelineGroup struct {
	Year  int          `json:"year"`
	Items []*MediaItem `json:"items"`
}

// Timeline groups all items by release year, oldest year first. Items
// within a year keep library order.
func (s *Store) Timeline() []TimelineGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byYear := map[int][]*MediaItem{}
	var years []int
	for _, m := range s.items {
		if _, ok := byYear[m.Year]; !ok {
			years = append(years, m.Year)
		}
		byYear[m.Year] = append(byYear[m.Year], m.Clone())
	}
	sort.Ints(years)

	out := make([]TimelineGroup, 0, len(years))
	for _, y := range years {
		out = append(out, TimelineGroup{Year: y, Items: byYear[y]})
	}
	return out
}
