package weather

import "strings"

// SplashZone is the top edge of an on-page panel in viewport coordinates.
// Front-layer rain drops crossing Top between Left and Right splash.
type SplashZone struct {
	Top, Left, Right float64
}

// ProbeZones returns the top-edge spans of every panel in doc that rain can
// splash against. Panels are nodes carrying one of cfg.ZoneClasses, or a
// class containing one of cfg.ZoneClassContains. Panels narrower than
// cfg.ZoneMinWidth or shorter than cfg.ZoneMinHeight are skipped.
//
// ProbeZones never fails: a nil document yields no zones, and a panic while
// reading geometry is treated the same way.
func ProbeZones(doc *Document, cfg Config) (zones []SplashZone) {
	if doc == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			doc.logger.Debug("probe zones", "recovered", r)
			zones = nil
		}
	}()

	doc.root.Walk(func(n *Node) bool {
		if !n.Visible {
			return false
		}
		if !isZoneCandidate(n, cfg) {
			return true
		}
		b := n.Bounds()
		if b.Width < cfg.ZoneMinWidth || b.Height < cfg.ZoneMinHeight {
			return true
		}
		zones = append(zones, SplashZone{Top: b.Y, Left: b.X, Right: b.Right()})
		return true
	})
	return zones
}

func isZoneCandidate(n *Node, cfg Config) bool {
	for _, c := range n.classes {
		for _, want := range cfg.ZoneClasses {
			if c == want {
				return true
			}
		}
		for _, frag := range cfg.ZoneClassContains {
			if frag != "" && strings.Contains(c, frag) {
				return true
			}
		}
	}
	return false
}
