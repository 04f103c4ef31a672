package engine

// Vessel holds the vessel particulars the turbine transport
// calculation uses.
type Vessel struct {
	Name     string
	DeckArea float64 // m^2
	Payload  float64 // t
}

// fleet is the family of vessel parameters that depends on the selected
// substructure.
type fleet struct {
	primary Vessel
	feeder  Vessel
}

// Fleets by substructure type. Fixed substructures are installed from a
// jack-up vessel, optionally fed by barges. Spar turbines are carried to the
// assembly area by barge. Semi-submersibles are assembled at quay and towed
// out one at a time.
var (
	fixedFleet = fleet{
		primary: Vessel{Name: "jack-up vessel", DeckArea: 4000, Payload: 8000},
		feeder:  Vessel{Name: "feeder barge", DeckArea: 2000, Payload: 4000},
	}
	sparFleet = fleet{
		primary: Vessel{Name: "floating heavy-lift vessel", DeckArea: 3750, Payload: 5000},
		feeder:  Vessel{Name: "feeder barge", DeckArea: 2500, Payload: 3000},
	}
	semiFleet = fleet{
		primary: Vessel{Name: "tug", DeckArea: 0, Payload: 0},
		feeder:  Vessel{Name: "tug", DeckArea: 0, Payload: 0},
	}
)

// fleetFor returns the vessel defaults for a substructure ordinal.
// Unknown ordinals fall back to the fixed fleet; Compute rejects them.
func fleetFor(substructure int) fleet {
	switch substructure {
	case Spar:
		return sparFleet
	case SemiSubmersible:
		return semiFleet
	default:
		return fixedFleet
	}
}

// turbineVessel returns the vessel that carries turbines to site.
func (s *state) turbineVessel() Vessel {
	switch int(s.substructure) {
	case Monopile, Jacket:
		if int(s.strategy) == PrimaryVessel {
			return s.fleet.primary
		}
		return s.fleet.feeder
	case Spar:
		return s.fleet.feeder
	default:
		return s.fleet.primary
	}
}
