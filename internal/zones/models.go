// Package zones classifies points of interest into urban zone categories
// using unsupervised clustering on their coordinates.
package zones

import "errors"

// ErrInsufficientData indicates too few points were supplied to cluster.
// Callers fall back to the unclustered point list.
var ErrInsufficientData = errors.New("at least 3 points are required for zone classification")

// ZoneType labels a classified zone.
type ZoneType string

const (
	ZoneBusy     ZoneType = "Busy Zone"
	ZoneModerate ZoneType = "Moderate Zone"
	ZoneCalm     ZoneType = "Calm Zone"
)

// zoneLabels is the ordered label list cycled through by cluster index.
var zoneLabels = []ZoneType{ZoneBusy, ZoneModerate, ZoneCalm}

// LocatedPoint is a named point of interest produced from a POI search.
// Immutable once created within a request.
type LocatedPoint struct {
	Lat      float64
	Lon      float64
	Name     string
	Category string
}

// ZoneAssignment annotates a LocatedPoint with its cluster and zone label.
//
// The label is the cluster index modulo len(zoneLabels). It cycles through
// cluster indices and is not a ranking of the cluster's actual density.
type ZoneAssignment struct {
	LocatedPoint
	Cluster  int
	ZoneType ZoneType
}

// labelFor returns the cyclic zone label for a cluster index.
func labelFor(cluster int) ZoneType {
	return zoneLabels[cluster%len(zoneLabels)]
}
