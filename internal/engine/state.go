package engine

// Ordinals as the engine understands them. Order must match the domain
// definitions callers encode labels with.
const (
	Monopile = iota
	Jacket
	Spar
	SemiSubmersible
)

const (
	DragEmbedment = iota
	SuctionPile
)

const (
	Individual = iota
	BunnyEars
	RotorAssembled
)

const (
	OnePiece = iota
	TwoPiece
)

const (
	PrimaryVessel = iota
	FeederBarge
)

// state is the structured form of the model.
type state struct {
	// inputs
	turbR        float64
	rotorD       float64
	hubH         float64
	waterD       float64
	nTurb        float64
	chord        float64
	inspectClear float64
	mpEmbedL     float64
	deaFixLeng   float64
	moorLines    float64
	substructure float64
	anchor       float64
	turbInstall  float64
	towerInstall float64
	strategy     float64

	// conditional defaults
	fleet fleet

	// outputs
	hubD              float64
	bladeL            float64
	nacelleW          float64
	nacelleL          float64
	rnaM              float64
	towerD            float64
	towerM            float64
	mpileL            float64
	moorLeng          float64
	sSteelM           float64
	subTotM           float64
	turbDeckArea      float64
	nTurbPerTrip      float64
	turbVesselDeck    float64
	turbVesselPayload float64
	floating          float64
}

type field struct {
	name string
	ptr  *float64
}

func (s *state) inputs() []field {
	return []field{
		{"turbR", &s.turbR},
		{"rotorD", &s.rotorD},
		{"hubH", &s.hubH},
		{"waterD", &s.waterD},
		{"nTurb", &s.nTurb},
		{"chord", &s.chord},
		{"inspectClear", &s.inspectClear},
		{"mpEmbedL", &s.mpEmbedL},
		{"deaFixLeng", &s.deaFixLeng},
		{"moorLines", &s.moorLines},
		{"substructure", &s.substructure},
		{"anchor", &s.anchor},
		{"turbInstallMethod", &s.turbInstall},
		{"towerInstallMethod", &s.towerInstall},
		{"installStrategy", &s.strategy},
	}
}

func (s *state) outputs() []field {
	return []field{
		{"hubD", &s.hubD},
		{"bladeL", &s.bladeL},
		{"nacelleW", &s.nacelleW},
		{"nacelleL", &s.nacelleL},
		{"rnaM", &s.rnaM},
		{"towerD", &s.towerD},
		{"towerM", &s.towerM},
		{"mpileL", &s.mpileL},
		{"moorLeng", &s.moorLeng},
		{"sSteelM", &s.sSteelM},
		{"subTotM", &s.subTotM},
		{"turbDeckArea", &s.turbDeckArea},
		{"nTurbPerTrip", &s.nTurbPerTrip},
		{"turbVesselDeck", &s.turbVesselDeck},
		{"turbVesselPayload", &s.turbVesselPayload},
		{"floating", &s.floating},
	}
}

// defaultState holds the engine's own defaults, used for any input the
// caller never sets.
func defaultState() state {
	return state{
		turbR:        5,
		rotorD:       120,
		hubH:         90,
		waterD:       30,
		nTurb:        20,
		chord:        5,
		inspectClear: 2,
		mpEmbedL:     30,
		deaFixLeng:   500,
		moorLines:    3,
		substructure: Monopile,
		anchor:       DragEmbedment,
		turbInstall:  Individual,
		towerInstall: OnePiece,
		strategy:     PrimaryVessel,
	}
}
