package engine

import "math"

// validate checks the committed inputs before any formula runs.
func (s *state) validate() error {
	positive := []field{
		{"turbR", &s.turbR},
		{"rotorD", &s.rotorD},
		{"hubH", &s.hubH},
		{"waterD", &s.waterD},
		{"nTurb", &s.nTurb},
	}
	for _, f := range positive {
		if !(*f.ptr > 0) {
			return invalid(f.name, *f.ptr, "must be positive")
		}
	}

	nonNegative := []field{
		{"chord", &s.chord},
		{"inspectClear", &s.inspectClear},
		{"mpEmbedL", &s.mpEmbedL},
		{"deaFixLeng", &s.deaFixLeng},
		{"moorLines", &s.moorLines},
	}
	for _, f := range nonNegative {
		if !(*f.ptr >= 0) {
			return invalid(f.name, *f.ptr, "must not be negative")
		}
	}

	ordinals := []struct {
		field
		n int
	}{
		{field{"substructure", &s.substructure}, 4},
		{field{"anchor", &s.anchor}, 2},
		{field{"turbInstallMethod", &s.turbInstall}, 3},
		{field{"towerInstallMethod", &s.towerInstall}, 2},
		{field{"installStrategy", &s.strategy}, 2},
	}
	for _, o := range ordinals {
		v := *o.ptr
		if math.IsNaN(v) || v < 0 || int(v) >= o.n {
			return invalid(o.name, v, "is not a known ordinal")
		}
	}
	return nil
}

// compute evaluates the model into a copy of s so that a failure leaves the
// previous results untouched.
func (s *state) compute() (state, error) {
	if err := s.validate(); err != nil {
		return *s, err
	}
	out := *s

	// general geometry
	out.hubD = out.turbR/4 + 2
	out.bladeL = (out.rotorD - out.hubD) / 2
	out.nacelleW = out.hubD + 1.5
	out.nacelleL = 2 * out.nacelleW
	out.rnaM = 2.082*math.Pow(out.turbR, 2) + 44.59*out.turbR + 22.48
	out.towerD = out.turbR/2 + 4
	out.towerM = (0.4*math.Pi*math.Pow(out.rotorD/2, 2)*out.hubH - 1500) / 1000

	out.substructureMass()
	out.mooringLength()

	out.turbDeckArea = out.minTurbDeckArea()
	out.nTurbPerTrip = out.turbsPerTrip()

	v := out.turbineVessel()
	out.turbVesselDeck = v.DeckArea
	out.turbVesselPayload = v.Payload

	sub := int(out.substructure)
	out.floating = 0
	if sub == Spar || sub == SemiSubmersible {
		out.floating = 1
	}

	for _, f := range out.outputs() {
		if math.IsNaN(*f.ptr) || math.IsInf(*f.ptr, 0) {
			return *s, invalid(f.name, *f.ptr, "is not finite")
		}
	}
	return out, nil
}

func (s *state) substructureMass() {
	r, d := s.turbR, s.waterD
	s.mpileL = 0

	switch int(s.substructure) {
	case Jacket:
		s.sSteelM = fixedSecondarySteel(r, d)
		lattice := math.Exp(3.71 + 0.00176*math.Pow(r, 2.5) + 0.645*math.Log(d))
		trans := 1 / (-0.0131 + 0.0381/math.Log(r) - 0.00000000227*math.Pow(d, 3))
		piles := 8 * math.Pow(lattice, 0.5574)
		s.subTotM = lattice + trans + piles + s.sSteelM
	case Spar:
		s.sSteelM = math.Exp(3.58 + 0.196*math.Sqrt(r)*math.Log(r) + 0.00001*d*math.Log(d))
		stiffened := 535.93 + 17.664*math.Pow(r, 2) + 0.02328*d*math.Log(d)
		tapered := 125.81*math.Log(r) + 58.712
		ballast := -16.536*math.Pow(r, 2) + 1261.8*r - 1554.6
		s.subTotM = tapered + stiffened + s.sSteelM + ballast
	case SemiSubmersible:
		s.sSteelM = -0.153*math.Pow(r, 2) + 6.54*r + 128.34
		stiffened := -0.9571*math.Pow(r, 2) + 40.89*r + 802.09
		truss := 2.7894*math.Pow(r, 2) + 15.591*r + 266.03
		heave := -0.4397*math.Pow(r, 2) + 21.545*r + 177.42
		s.subTotM = stiffened + heave + truss + s.sSteelM
	default:
		s.sSteelM = fixedSecondarySteel(r, d)
		s.mpileL = d + s.mpEmbedL + 5
		pile := (math.Pow(r*1000, 1.5) + math.Pow(s.hubH, 3.7)/10 + 2100*math.Pow(d, 2.25) + math.Pow(s.rnaM*1000, 1.13)) / 10000
		trans := math.Exp(2.77 + 1.04*math.Sqrt(r) + 0.00127*math.Pow(d, 1.5))
		s.subTotM = pile + trans + s.sSteelM
	}
}

func fixedSecondarySteel(turbR, waterD float64) float64 {
	if turbR <= 4 {
		return 35 + 0.8*(18+waterD)
	}
	return 40 + 0.8*(18+waterD)
}

// mooringLength is zero for fixed substructures.
func (s *state) mooringLength() {
	sub := int(s.substructure)
	if sub != Spar && sub != SemiSubmersible {
		s.moorLeng = 0
		return
	}
	d := s.waterD
	line := 0.0002*math.Pow(d, 2) + 1.264*d + 47.776
	if int(s.anchor) == DragEmbedment {
		line += s.deaFixLeng
	}
	s.moorLeng = s.moorLines * line
}

// minTurbDeckArea is the deck area one turbine and its tower occupy.
func (s *state) minTurbDeckArea() float64 {
	ic := s.inspectClear
	blade := (s.bladeL + ic) * (s.chord + ic)

	var area float64
	switch int(s.turbInstall) {
	case RotorAssembled:
		area = blade + math.Pi*math.Pow(s.hubD/2, 2)/2 + (s.nacelleL+ic)*(s.nacelleW+ic)
	case BunnyEars:
		area = blade + (s.nacelleL+ic)*(s.nacelleW/2+s.bladeL/2*1.73+ic)
	default:
		area = blade + (s.nacelleL+ic)*(s.nacelleW+ic)
	}

	tower := math.Pow(s.towerD+ic, 2)
	if int(s.towerInstall) == OnePiece {
		return area + tower
	}
	return area + 2*tower
}

// turbsPerTrip is limited by both deck area and payload. Semi-submersibles
// always travel one per trip.
func (s *state) turbsPerTrip() float64 {
	if int(s.substructure) == SemiSubmersible {
		return 1
	}
	v := s.turbineVessel()
	if s.turbDeckArea <= 0 || s.rnaM+s.towerM <= 0 {
		return 0
	}
	return math.Floor(math.Min(v.DeckArea/s.turbDeckArea, v.Payload/(s.rnaM+s.towerM)))
}
